/*
 * Copyright 2026 the Tiki2 Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// TCPProber measures TCP connect time to target host:port. Used for ping
// locations, the port sweep, and the bare-TCP protocol test.
type TCPProber struct {
	Timeout time.Duration
}

func (p *TCPProber) Probe(ctx context.Context, target models.Target) models.Sample {
	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()

	var dialer net.Dialer

	conn, err := dialer.DialContext(probeCtx, "tcp", net.JoinHostPort(target.Host, fmt.Sprint(target.Port)))
	elapsed := time.Since(start)

	if err != nil {
		if probeCtx.Err() != nil {
			err = probeCtx.Err()
		}

		return models.Sample{
			TargetID:  target.ID(),
			Timestamp: start,
			Err:       Classify(err),
		}
	}

	_ = conn.Close()

	return models.Sample{
		TargetID:  target.ID(),
		Timestamp: start,
		Latency:   elapsed,
		Success:   true,
	}
}
