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

// Package probe executes single network measurement attempts against
// catalog targets and collects repeated samples per target under a bounded
// worker pool.
package probe

import (
	"context"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// Prober performs exactly one measurement attempt against one target.
// Implementations never block past their configured timeout and never
// return an error: failures are encoded in the Sample's classification.
type Prober interface {
	Probe(ctx context.Context, target models.Target) models.Sample
}

// NATClassifier derives a coarse NAT classification for the local network.
type NATClassifier interface {
	Classify(ctx context.Context) models.NATClass
}

// ForTarget selects the prober implementation for a target. Dispatch is
// static on the target's kind and protocol.
func ForTarget(t models.Target, cfg *models.Config) Prober {
	switch t.Kind {
	case models.KindPing, models.KindPort:
		timeout := cfg.PingTimeout.Duration()
		if t.Kind == models.KindPort {
			timeout = cfg.PortTimeout.Duration()
		}

		return &TCPProber{Timeout: timeout}
	case models.KindDNS:
		return NewDNSProber(cfg.DNSTimeout.Duration(), cfg.DNSTestDomains)
	case models.KindCDN:
		return &CDNProber{Timeout: cfg.CDNTimeout.Duration()}
	case models.KindProtocol:
		switch t.Protocol {
		case models.ProtoHTTP, models.ProtoHTTPS:
			return &HTTPProber{Timeout: cfg.HTTPTimeout.Duration()}
		case models.ProtoUDP:
			return &UDPProber{Timeout: cfg.HTTPTimeout.Duration()}
		case models.ProtoTLS:
			return &TLSProber{Timeout: cfg.HTTPTimeout.Duration()}
		case models.ProtoWebSocket:
			return &WebSocketProber{Timeout: cfg.HTTPTimeout.Duration()}
		default:
			return &TCPProber{Timeout: cfg.HTTPTimeout.Duration()}
		}
	default:
		return &TCPProber{Timeout: cfg.PingTimeout.Duration()}
	}
}
