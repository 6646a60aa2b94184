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

package models

// NATClass is the coarse NAT behaviour classification derived from
// connectivity-test asymmetries.
type NATClass string

const (
	NATOpen     NATClass = "open"
	NATModerate NATClass = "moderate"
	NATStrict   NATClass = "strict"
	NATUnknown  NATClass = "unknown"
)

// Connection types, ordered roughly by preference under good conditions.
type ConnectionType string

const (
	ConnectionDirect      ConnectionType = "direct_single"
	ConnectionTunnel      ConnectionType = "direct_encrypted_tunnel"
	ConnectionMultiplexed ConnectionType = "multiplexed_redundant"
	ConnectionFronted     ConnectionType = "cdn_fronted"
)

type Transport string

const (
	TransportTCPTLS      Transport = "tcp_tls"
	TransportWebSocket   Transport = "websocket_tls"
	TransportUDPDatagram Transport = "udp_datagram"
	TransportFrontedTCP  Transport = "tcp_tls_fronted"
)

type Encryption string

const (
	EncryptionPlain         Encryption = "plain"
	EncryptionOpportunistic Encryption = "opportunistic_tls"
	EncryptionMandatory     Encryption = "mandatory_tls"
)

type TunnelCategory string

const (
	TunnelStream     TunnelCategory = "stream"
	TunnelDatagram   TunnelCategory = "datagram"
	TunnelHTTPWrap   TunnelCategory = "http_wrapped"
	TunnelCDNFronted TunnelCategory = "cdn_fronted"
)

// PortProtocol is one ordered (port, protocol) candidate.
type PortProtocol struct {
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	Service  string `json:"service,omitempty"`
}

// ArchitectureDecision is the derived connection architecture for one run.
// Fallbacks is an ordered chain of strictly less-preferred alternatives;
// entries in the chain carry no nested fallbacks of their own.
type ArchitectureDecision struct {
	ConnectionType ConnectionType         `json:"connection_type"`
	Transport      Transport              `json:"transport"`
	Encryption     Encryption             `json:"encryption"`
	TunnelCategory TunnelCategory         `json:"tunnel_category"`
	PortProtocols  []PortProtocol         `json:"port_protocols"`
	BasisScore     float64                `json:"basis_score"`
	Fallbacks      []ArchitectureDecision `json:"fallbacks,omitempty"`
}

// ConfigTemplate is the flat, software-agnostic tuning parameter map that
// is the run's terminal artifact. Keys are generic parameter names; values
// are JSON-serializable scalars.
type ConfigTemplate map[string]interface{}
