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
	"io"
	"net"
	"net/http"
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// CDNProber measures a CDN edge in two legs: TCP connect time to the edge
// and the fetch time of a small known object. The byte count feeds the
// throughput estimate.
type CDNProber struct {
	Timeout time.Duration
}

func (p *CDNProber) Probe(ctx context.Context, target models.Target) models.Sample {
	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()

	var dialer net.Dialer

	conn, err := dialer.DialContext(probeCtx, "tcp", net.JoinHostPort(target.Host, fmt.Sprint(target.Port)))
	if err != nil {
		if probeCtx.Err() != nil {
			err = probeCtx.Err()
		}

		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	connectLatency := time.Since(start)

	_ = conn.Close()

	client := &http.Client{Timeout: p.Timeout}

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, target.URL, http.NoBody)
	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	n, err := io.Copy(io.Discard, resp.Body)

	_ = resp.Body.Close()

	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	return models.Sample{
		TargetID:       target.ID(),
		Timestamp:      start,
		Latency:        time.Since(start),
		ConnectLatency: connectLatency,
		Bytes:          n,
		Success:        true,
	}
}
