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

// UDPProber sends a single datagram and waits briefly for any reply.
// UDP gives no delivery signal, so a successful send counts as reachable;
// a reply, when one arrives, tightens the latency figure.
type UDPProber struct {
	Timeout time.Duration
}

func (p *UDPProber) Probe(ctx context.Context, target models.Target) models.Sample {
	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()

	var dialer net.Dialer

	conn, err := dialer.DialContext(probeCtx, "udp", net.JoinHostPort(target.Host, fmt.Sprint(target.Port)))
	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}
	defer func() { _ = conn.Close() }()

	if _, err = conn.Write([]byte{0x00}); err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	latency := time.Since(start)

	// A reply is optional; an ICMP port-unreachable surfaces here as a
	// refused read and marks the attempt failed.
	_ = conn.SetReadDeadline(time.Now().Add(p.Timeout))

	buf := make([]byte, 512)

	if _, err = conn.Read(buf); err != nil {
		if Classify(err) == models.ErrRefused {
			return models.Sample{TargetID: target.ID(), Timestamp: start, Err: models.ErrRefused}
		}
	} else {
		latency = time.Since(start)
	}

	return models.Sample{
		TargetID:  target.ID(),
		Timestamp: start,
		Latency:   latency,
		Success:   true,
	}
}
