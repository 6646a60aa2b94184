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
	"sync/atomic"
	"time"

	"github.com/miekg/dns"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// DNSProber issues one A-record query per attempt against the target
// resolver, rotating through the configured test domain set so repeated
// attempts measure more than the resolver's cache.
type DNSProber struct {
	client  *dns.Client
	domains []string
	next    atomic.Uint64
}

func NewDNSProber(timeout time.Duration, domains []string) *DNSProber {
	if len(domains) == 0 {
		domains = []string{"google.com."}
	}

	return &DNSProber{
		client: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
		domains: domains,
	}
}

func (p *DNSProber) Probe(ctx context.Context, target models.Target) models.Sample {
	domain := p.domains[p.next.Add(1)%uint64(len(p.domains))]

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	msg.RecursionDesired = true

	start := time.Now()

	resp, rtt, err := p.client.ExchangeContext(ctx, msg, net.JoinHostPort(target.Host, fmt.Sprint(target.Port)))
	if err != nil {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: Classify(err)}
	}

	// A malformed or servfail response is a protocol failure even though
	// the datagram round-tripped.
	if resp == nil || resp.Rcode == dns.RcodeServerFailure || resp.Rcode == dns.RcodeRefused {
		return models.Sample{TargetID: target.ID(), Timestamp: start, Err: models.ErrProtocol}
	}

	return models.Sample{
		TargetID:  target.ID(),
		Timestamp: start,
		Latency:   rtt,
		Success:   true,
	}
}
