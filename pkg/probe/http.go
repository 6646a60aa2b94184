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
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// HTTPProber times a GET of the target host's root document over http or
// https. Redirects are not followed; any HTTP response counts as success.
type HTTPProber struct {
	Timeout time.Duration
}

func (p *HTTPProber) Probe(ctx context.Context, target models.Target) models.Sample {
	scheme := target.Protocol
	if scheme != models.ProtoHTTP && scheme != models.ProtoHTTPS {
		return models.Sample{TargetID: target.ID(), Timestamp: time.Now(), Err: models.ErrProtocol}
	}

	client := &http.Client{
		Timeout: p.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, fmt.Sprintf("%s://%s/", scheme, target.Host), http.NoBody)
	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	_ = resp.Body.Close()

	return models.Sample{
		TargetID:  target.ID(),
		Timestamp: start,
		Latency:   time.Since(start),
		Success:   true,
	}
}

// TLSProber times a full TLS handshake against the target.
type TLSProber struct {
	Timeout time.Duration
}

func (p *TLSProber) Probe(ctx context.Context, target models.Target) models.Sample {
	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()

	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName: target.Host,
			MinVersion: tls.VersionTLS12,
		},
	}

	conn, err := dialer.DialContext(probeCtx, "tcp", net.JoinHostPort(target.Host, fmt.Sprint(target.Port)))
	if err != nil {
		if probeCtx.Err() != nil {
			err = probeCtx.Err()
		}

		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	_ = conn.Close()

	return models.Sample{
		TargetID:  target.ID(),
		Timestamp: start,
		Latency:   time.Since(start),
		Success:   true,
	}
}

// WebSocketProber performs a WebSocket handshake over TLS. A rejected
// upgrade with an HTTP response still proves the path carries WebSocket
// framing as far as the server.
type WebSocketProber struct {
	Timeout time.Duration
}

func (p *WebSocketProber) Probe(ctx context.Context, target models.Target) models.Sample {
	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	dialer := &websocket.Dialer{
		HandshakeTimeout: p.Timeout,
	}

	start := time.Now()

	conn, resp, err := dialer.DialContext(probeCtx, fmt.Sprintf("wss://%s/", target.Host), nil)
	elapsed := time.Since(start)

	if resp != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		// A bad-handshake error means the TLS+HTTP leg completed and the
		// server simply declined the upgrade.
		if err == websocket.ErrBadHandshake {
			return models.Sample{
				TargetID:  target.ID(),
				Timestamp: start,
				Latency:   elapsed,
				Success:   true,
			}
		}

		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	_ = conn.Close()

	return models.Sample{
		TargetID:  target.ID(),
		Timestamp: start,
		Latency:   elapsed,
		Success:   true,
	}
}
