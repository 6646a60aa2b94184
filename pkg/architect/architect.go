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

// Package architect derives a connection architecture decision from the
// per-category recommendations, the NAT classification and the restricted
// flag. Pure functions of their inputs: no network I/O, no randomness.
package architect

import (
	"sort"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// stabilityHigh/stabilityLow band the location score for connection-type
// selection: above the high band a direct single connection suffices,
// below the low band the link needs multiplexed redundancy.
const (
	stabilityHigh = 80
	stabilityLow  = 40

	maxFallbacks  = 3
	maxPortCombos = 5
)

// portPreference orders port candidates ahead of pure latency ranking.
var portPreference = []int{443, 80, 8443, 8080, 2083, 2096}

// Build produces the architecture decision plus a fallback chain of one to
// three strictly less-preferred alternatives, each derived by re-running
// the same rules over the next-best recommendation set per category.
func Build(recs map[models.Category]models.Recommendation, nat models.NATClass, restricted bool) models.ArchitectureDecision {
	decision := decideAt(recs, 0, nat, restricted)

	fallbacks := make([]models.ArchitectureDecision, 0, maxFallbacks)

	for depth := 1; depth <= maxFallbacks; depth++ {
		if !hasDepth(recs, depth) {
			break
		}

		fallbacks = append(fallbacks, decideAt(recs, depth, nat, restricted))
	}

	if len(fallbacks) == 0 {
		fallbacks = append(fallbacks, lastResort())
	}

	decision.Fallbacks = fallbacks

	return decision
}

// decideAt applies the decision rules using each category's depth-th best
// reachable choice (0 = the selected recommendation).
func decideAt(recs map[models.Category]models.Recommendation, depth int, nat models.NATClass, restricted bool) models.ArchitectureDecision {
	protocols := protocolIndex(recs[models.CategoryProtocol])
	location := choiceAt(recs[models.CategoryLocation], depth)
	protoChoice := choiceAt(recs[models.CategoryProtocol], depth)
	portChoices := reachableOf(recs[models.CategoryPort])

	constrained := restricted || nat == models.NATStrict

	transport := recommendTransport(protocols, constrained)

	return models.ArchitectureDecision{
		ConnectionType: recommendConnectionType(location, protocols, constrained),
		Transport:      transport,
		Encryption:     recommendEncryption(protocols),
		TunnelCategory: recommendTunnel(protoChoice, portChoices, transport),
		PortProtocols:  recommendPortCombos(portChoices, depth),
		BasisScore:     basisScore(recs, depth),
	}
}

func recommendConnectionType(location *models.RankedTarget, protocols map[string]models.RankedTarget, constrained bool) models.ConnectionType {
	httpsEntry, httpsOK := protocols[models.ProtoHTTPS]

	if constrained {
		// Outbound-only tolerant choices only. When even HTTPS is shaky,
		// fronting through a CDN edge is the remaining option.
		if !httpsOK || httpsEntry.Summary.LossRate > 0.5 {
			return models.ConnectionFronted
		}

		return models.ConnectionTunnel
	}

	if location != nil {
		switch {
		case location.Score.Value > stabilityHigh:
			return models.ConnectionDirect
		case location.Score.Value < stabilityLow:
			return models.ConnectionMultiplexed
		}
	}

	if !httpsOK {
		return models.ConnectionFronted
	}

	return models.ConnectionTunnel
}

func recommendTransport(protocols map[string]models.RankedTarget, constrained bool) models.Transport {
	_, tcpOK := protocols[models.ProtoTCP]
	_, udpOK := protocols[models.ProtoUDP]
	_, wsOK := protocols[models.ProtoWebSocket]

	// Datagram transports assume the path forwards UDP both ways, which a
	// strict NAT or a restricted network cannot be trusted to do.
	if udpOK && !constrained && !tcpOK {
		return models.TransportUDPDatagram
	}

	switch {
	case wsOK && tcpOK:
		return models.TransportWebSocket
	case tcpOK:
		return models.TransportTCPTLS
	case udpOK && !constrained:
		return models.TransportUDPDatagram
	default:
		return models.TransportFrontedTCP
	}
}

// recommendEncryption escalates plain -> opportunistic -> mandatory as the
// measured reachability of encrypted protocol categories matches or beats
// the unencrypted ones. Encryption is never downgraded for latency.
func recommendEncryption(protocols map[string]models.RankedTarget) models.Encryption {
	encrypted := bestScoreOf(protocols, models.ProtoHTTPS, models.ProtoTLS, models.ProtoWebSocket)
	unencrypted := bestScoreOf(protocols, models.ProtoHTTP, models.ProtoTCP, models.ProtoUDP)

	switch {
	case encrypted == nil:
		return models.EncryptionPlain
	case unencrypted == nil || *encrypted >= *unencrypted:
		return models.EncryptionMandatory
	default:
		return models.EncryptionOpportunistic
	}
}

func recommendTunnel(protoChoice *models.RankedTarget, ports []models.RankedTarget, transport models.Transport) models.TunnelCategory {
	if len(ports) == 0 {
		return models.TunnelCDNFronted
	}

	if protoChoice != nil && protoChoice.Target.Protocol == models.ProtoUDP && transport == models.TransportUDPDatagram {
		return models.TunnelDatagram
	}

	has443 := false
	has80 := false

	for _, p := range ports {
		switch p.Target.Port {
		case 443:
			has443 = true
		case 80:
			has80 = true
		}
	}

	switch {
	case has443:
		return models.TunnelStream
	case has80:
		return models.TunnelHTTPWrap
	default:
		return models.TunnelStream
	}
}

// recommendPortCombos orders reachable ports by the preference list, then
// latency, and shifts by depth so fallback decisions lead with the next
// candidate port.
func recommendPortCombos(ports []models.RankedTarget, depth int) []models.PortProtocol {
	if len(ports) == 0 {
		return []models.PortProtocol{{Port: 443, Protocol: "tls/tcp"}}
	}

	ordered := make([]models.RankedTarget, len(ports))
	copy(ordered, ports)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := prefIndex(ordered[i].Target.Port), prefIndex(ordered[j].Target.Port)
		if pi != pj {
			return pi < pj
		}

		return ordered[i].Summary.MeanLatency < ordered[j].Summary.MeanLatency
	})

	if depth > 0 && depth < len(ordered) {
		ordered = ordered[depth:]
	}

	combos := make([]models.PortProtocol, 0, maxPortCombos)

	for _, p := range ordered {
		combos = append(combos, models.PortProtocol{
			Port:     p.Target.Port,
			Protocol: portTransport(p.Target.Port),
			Service:  p.Target.Service,
		})

		if len(combos) == maxPortCombos {
			break
		}
	}

	return combos
}

func portTransport(port int) string {
	switch port {
	case 443, 8443, 2083, 2096:
		return "tls/tcp"
	default:
		return "tcp"
	}
}

func prefIndex(port int) int {
	for i, p := range portPreference {
		if p == port {
			return i
		}
	}

	return len(portPreference)
}

// lastResort is the fallback of last resort when no runner-up choices
// exist in any category.
func lastResort() models.ArchitectureDecision {
	return models.ArchitectureDecision{
		ConnectionType: models.ConnectionFronted,
		Transport:      models.TransportFrontedTCP,
		Encryption:     models.EncryptionMandatory,
		TunnelCategory: models.TunnelCDNFronted,
		PortProtocols:  []models.PortProtocol{{Port: 443, Protocol: "tls/tcp"}},
		BasisScore:     0,
	}
}

// -- recommendation set helpers --------------------------------------------

// reachableOf lists a category's reachable entries best-first.
func reachableOf(rec models.Recommendation) []models.RankedTarget {
	if !rec.Available {
		return nil
	}

	entries := make([]models.RankedTarget, 0, 1+len(rec.RunnersUp))
	entries = append(entries, *rec.Selected)

	for _, r := range rec.RunnersUp {
		if r.Summary.Unreachable || r.Summary.NoData {
			continue
		}

		entries = append(entries, r)
	}

	return entries
}

// choiceAt returns the depth-th best reachable entry, clamped to the
// deepest available, or nil when the category has none.
func choiceAt(rec models.Recommendation, depth int) *models.RankedTarget {
	entries := reachableOf(rec)
	if len(entries) == 0 {
		return nil
	}

	if depth >= len(entries) {
		depth = len(entries) - 1
	}

	return &entries[depth]
}

// hasDepth reports whether any category still has an unused runner-up at
// the given depth.
func hasDepth(recs map[models.Category]models.Recommendation, depth int) bool {
	for _, rec := range recs {
		if len(reachableOf(rec)) > depth {
			return true
		}
	}

	return false
}

func protocolIndex(rec models.Recommendation) map[string]models.RankedTarget {
	index := make(map[string]models.RankedTarget)

	for _, e := range reachableOf(rec) {
		if _, ok := index[e.Target.Protocol]; !ok {
			index[e.Target.Protocol] = e
		}
	}

	return index
}

func bestScoreOf(protocols map[string]models.RankedTarget, names ...string) *float64 {
	var best *float64

	for _, name := range names {
		entry, ok := protocols[name]
		if !ok {
			continue
		}

		v := entry.Score.Value
		if best == nil || v > *best {
			best = &v
		}
	}

	return best
}

// basisScore is the mean score of the choices underpinning a decision at
// the given depth; deeper decisions never score higher than shallower ones.
func basisScore(recs map[models.Category]models.Recommendation, depth int) float64 {
	var total float64

	count := 0

	for _, c := range models.AllCategories() {
		choice := choiceAt(recs[c], depth)
		if choice == nil {
			continue
		}

		total += choice.Score.Value
		count++
	}

	if count == 0 {
		return 0
	}

	return total / float64(count)
}
