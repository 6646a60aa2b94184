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

// Package confgen converts an architecture decision and its supporting
// statistics into a flat, software-agnostic tuning parameter template.
// The generator never writes to storage; export is the caller's concern.
package confgen

import (
	"encoding/json"
	"math"
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

const (
	// mtuHeaderMargin covers IP + TCP headers on the observed payload size.
	mtuHeaderMargin = 28
	// mssMargin is subtracted from MTU for the MSS parameter.
	mssMargin = 40
	// safeDefaultMTU is used when discovery produced nothing.
	safeDefaultMTU = 1400

	// timeoutMultiple scales the chosen category's p95 latency into a
	// connect timeout.
	timeoutMultiple = 4
	minTimeout      = 5 * time.Second
	maxRetries      = 8
)

// Inputs bundles everything the generator reads. ObservedMTU of zero means
// MTU discovery failed and the safe default applies.
type Inputs struct {
	Decision        models.ArchitectureDecision
	Recommendations map[models.Category]models.Recommendation
	NAT             models.NATClass
	Restricted      bool
	ObservedMTU     int
}

// Generate builds the template. Parameters whose sole source category is
// unavailable are omitted rather than filled with defaults that could be
// mistaken for measurements.
func Generate(in Inputs) models.ConfigTemplate {
	tmpl := models.ConfigTemplate{}

	mtu := safeDefaultMTU
	if in.ObservedMTU > 0 {
		mtu = in.ObservedMTU - mtuHeaderMargin
	}

	tmpl["mtu"] = mtu
	tmpl["mss"] = mtu - mssMargin

	if mtu >= safeDefaultMTU {
		tmpl["fragment_strategy"] = "auto"
	} else {
		tmpl["fragment_strategy"] = "pre-fragment"
	}

	timeout := connectTimeout(in)
	tmpl["connect_timeout_s"] = int(timeout.Seconds())
	tmpl["read_timeout_s"] = int((2 * timeout).Seconds())

	keepalive := keepaliveInterval(in.NAT, in.Restricted)
	tmpl["keepalive_interval_s"] = int(keepalive.Seconds())
	tmpl["idle_timeout_s"] = int((3 * keepalive).Seconds())

	retries, strategy := retryPlan(in)
	tmpl["retry_max"] = retries
	tmpl["retry_strategy"] = strategy

	tmpl["transport"] = string(in.Decision.Transport)
	tmpl["multiplexing"] = supportsMultiplexing(in.Decision.Transport)
	tmpl["max_streams"] = 8
	tmpl["buffer_size_kb"] = 64
	tmpl["tcp_nodelay"] = true
	tmpl["tcp_fast_open"] = true

	if stability := in.Decision.BasisScore; stability > 50 {
		tmpl["health_check_interval_s"] = 30
	} else {
		tmpl["health_check_interval_s"] = 15
	}

	tmpl["failover_threshold"] = 3

	if len(in.Decision.PortProtocols) > 0 {
		tmpl["port"] = in.Decision.PortProtocols[0].Port
	}

	if dns, ok := in.Recommendations[models.CategoryDNS]; ok && dns.Available {
		tmpl["dns_primary"] = dns.Selected.Target.Host

		for _, r := range dns.RunnersUp {
			if !r.Summary.Unreachable && !r.Summary.NoData {
				tmpl["dns_secondary"] = r.Target.Host
				break
			}
		}
	}

	if loc, ok := in.Recommendations[models.CategoryLocation]; ok && loc.Available {
		tmpl["preferred_server_location"] = loc.Selected.Target.City + ", " + loc.Selected.Target.Country
	}

	if cdn, ok := in.Recommendations[models.CategoryCDN]; ok && cdn.Available {
		if kbps := cdn.Selected.Summary.ThroughputKbps; kbps > 0 {
			tmpl["estimated_throughput_kbps"] = math.Round(kbps)
		}
	}

	return tmpl
}

// ExportJSON serializes the template as an indented JSON document, the
// run's terminal artifact format.
func ExportJSON(tmpl models.ConfigTemplate) ([]byte, error) {
	return json.MarshalIndent(tmpl, "", "  ")
}

// connectTimeout is a multiple of the chosen category's p95 latency,
// floored at the minimum. The protocol category drives the figure; the
// location category substitutes when protocols produced no data.
func connectTimeout(in Inputs) time.Duration {
	p95 := time.Duration(0)

	for _, c := range []models.Category{models.CategoryProtocol, models.CategoryLocation} {
		if rec, ok := in.Recommendations[c]; ok && rec.Available {
			p95 = rec.Selected.Summary.P95Latency
			break
		}
	}

	timeout := timeoutMultiple * p95
	if timeout < minTimeout {
		timeout = minTimeout
	}

	return timeout.Round(time.Second)
}

// keepaliveInterval shrinks as NAT bindings get less durable.
func keepaliveInterval(nat models.NATClass, restricted bool) time.Duration {
	switch {
	case nat == models.NATStrict || restricted:
		return 15 * time.Second
	case nat == models.NATModerate || nat == models.NATUnknown:
		return 30 * time.Second
	default:
		return 60 * time.Second
	}
}

// retryPlan raises retries for moderate loss but caps them so retries do
// not amplify congestion on a badly lossy link.
func retryPlan(in Inputs) (int, string) {
	loss := 0.0

	if rec, ok := in.Recommendations[models.CategoryProtocol]; ok && rec.Available {
		loss = rec.Selected.Summary.LossRate
	}

	switch {
	case loss < 0.02:
		return 3, "linear"
	case loss < 0.10:
		return 5, "exponential"
	default:
		return maxRetries, "exponential_with_jitter"
	}
}

func supportsMultiplexing(t models.Transport) bool {
	switch t {
	case models.TransportWebSocket, models.TransportTCPTLS, models.TransportFrontedTCP:
		return true
	default:
		return false
	}
}
