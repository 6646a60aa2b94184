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

// Package models defines the immutable records shared by the diagnostic
// pipeline stages.
package models

import "fmt"

// ProbeKind identifies the measurement technique used against a target.
type ProbeKind string

const (
	KindPing     ProbeKind = "ping"
	KindDNS      ProbeKind = "dns"
	KindCDN      ProbeKind = "cdn"
	KindProtocol ProbeKind = "protocol"
	KindPort     ProbeKind = "port"
)

// Protocol names used by protocol-endpoint targets.
const (
	ProtoHTTP      = "http"
	ProtoHTTPS     = "https"
	ProtoTCP       = "tcp"
	ProtoUDP       = "udp"
	ProtoTLS       = "tls"
	ProtoWebSocket = "websocket"
)

// Target is one probe destination drawn from a catalog. Targets are
// immutable; probes and aggregation reference them by ID.
type Target struct {
	Kind     ProbeKind `json:"kind"`
	Host     string    `json:"host"`
	Port     int       `json:"port,omitempty"`
	Protocol string    `json:"protocol,omitempty"`
	URL      string    `json:"url,omitempty"`
	Name     string    `json:"name,omitempty"`
	Service  string    `json:"service,omitempty"`
	Region   string    `json:"region,omitempty"`
	Country  string    `json:"country,omitempty"`
	City     string    `json:"city,omitempty"`
}

// ID returns a stable identifier used for keying results and as the final
// deterministic tie-break in ranking.
func (t Target) ID() string {
	if t.Protocol != "" {
		return fmt.Sprintf("%s/%s/%s:%d", t.Kind, t.Protocol, t.Host, t.Port)
	}

	return fmt.Sprintf("%s/%s:%d", t.Kind, t.Host, t.Port)
}

// Intrusive reports whether probing this target is excluded outright under
// restricted mode. Port sweeps against arbitrary services qualify; the
// reduced-footprint variant keeps only well-known web/DNS ports.
func (t Target) Intrusive() bool {
	if t.Kind != KindPort {
		return false
	}

	switch t.Port {
	case 53, 80, 443, 8080, 8443:
		return false
	default:
		return true
	}
}
