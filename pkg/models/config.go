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

import (
	"encoding/json"
	"time"
)

// Duration wraps time.Duration so config files can use duration strings
// ("5s", "300ms") instead of nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string

	if err := json.Unmarshal(b, &s); err != nil {
		// Fall back to a bare number of nanoseconds.
		var n int64
		if err2 := json.Unmarshal(b, &n); err2 == nil {
			*d = Duration(n)
			return nil
		}

		return err
	}

	if s == "" {
		*d = Duration(0)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}

	*d = Duration(dur)

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

// ScoringConfig holds the numeric weights and thresholds of the stability
// scoring formula. All values have working defaults; they are configuration
// precisely so they never appear as unexplained magic numbers in the
// scoring code.
type ScoringConfig struct {
	// Relative weights of the three score components. Normalized at use.
	LatencyWeight float64 `json:"latency_weight"`
	LossWeight    float64 `json:"loss_weight"`
	JitterWeight  float64 `json:"jitter_weight"`

	// Latency at or below Excellent earns the full latency contribution;
	// at or beyond Poor the contribution floors at zero.
	ExcellentLatency Duration `json:"excellent_latency"`
	PoorLatency      Duration `json:"poor_latency"`

	// Loss at or below LossKnee is tolerated near-linearly; above it the
	// contribution collapses quadratically. Loss at or above LossDisqualify
	// zeroes the loss contribution entirely.
	LossKnee       float64 `json:"loss_knee"`
	LossDisqualify float64 `json:"loss_disqualify"`

	// Jitter at or beyond PoorJitter zeroes the jitter contribution.
	PoorJitter Duration `json:"poor_jitter"`

	// Confidence gates.
	MinSamples  int     `json:"min_samples"`
	CVThreshold float64 `json:"cv_threshold"`
}

// Normalize fills non-positive fields from the defaults so a partially
// specified scoring block can never zero the weight sum or a divisor.
func (s *ScoringConfig) Normalize() {
	d := DefaultScoringConfig()

	if s.LatencyWeight <= 0 {
		s.LatencyWeight = d.LatencyWeight
	}

	if s.LossWeight <= 0 {
		s.LossWeight = d.LossWeight
	}

	if s.JitterWeight <= 0 {
		s.JitterWeight = d.JitterWeight
	}

	if s.ExcellentLatency <= 0 {
		s.ExcellentLatency = d.ExcellentLatency
	}

	if s.PoorLatency <= s.ExcellentLatency {
		s.PoorLatency = d.PoorLatency

		// An unusually high excellent threshold still needs poor above it.
		if s.PoorLatency <= s.ExcellentLatency {
			s.PoorLatency = 2 * s.ExcellentLatency
		}
	}

	if s.LossKnee <= 0 {
		s.LossKnee = d.LossKnee
	}

	if s.LossDisqualify <= s.LossKnee {
		s.LossDisqualify = d.LossDisqualify

		if s.LossDisqualify <= s.LossKnee {
			s.LossDisqualify = 2 * s.LossKnee
		}
	}

	if s.PoorJitter <= 0 {
		s.PoorJitter = d.PoorJitter
	}

	if s.MinSamples <= 0 {
		s.MinSamples = d.MinSamples
	}

	if s.CVThreshold <= 0 {
		s.CVThreshold = d.CVThreshold
	}
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		LatencyWeight:    0.50,
		LossWeight:       0.35,
		JitterWeight:     0.15,
		ExcellentLatency: Duration(30 * time.Millisecond),
		PoorLatency:      Duration(800 * time.Millisecond),
		LossKnee:         0.02,
		LossDisqualify:   0.20,
		PoorJitter:       Duration(150 * time.Millisecond),
		MinSamples:       3,
		CVThreshold:      0.5,
	}
}

// Config is the per-run pipeline configuration. Loaded from JSON once,
// normalized, and then read-only for the life of the run.
type Config struct {
	// Concurrency caps the number of simultaneous probe attempts.
	Concurrency int `json:"concurrency"`
	// RestrictedConcurrency replaces Concurrency when restricted mode is on.
	RestrictedConcurrency int `json:"restricted_concurrency"`

	// Samples is the attempts issued per target.
	Samples int `json:"samples"`
	// RestrictedSamples replaces Samples when restricted mode is on.
	RestrictedSamples int `json:"restricted_samples"`

	// Spacing is the minimum gap between attempts against the same target.
	Spacing           Duration `json:"spacing"`
	RestrictedSpacing Duration `json:"restricted_spacing"`

	// Per-kind probe timeouts.
	PingTimeout Duration `json:"ping_timeout"`
	DNSTimeout  Duration `json:"dns_timeout"`
	HTTPTimeout Duration `json:"http_timeout"`
	CDNTimeout  Duration `json:"cdn_timeout"`
	PortTimeout Duration `json:"port_timeout"`

	// DNSTestDomains are resolved against every resolver target.
	DNSTestDomains []string `json:"dns_test_domains,omitempty"`

	// STUNServers used for NAT classification.
	STUNServers []string `json:"stun_servers,omitempty"`

	Scoring ScoringConfig `json:"scoring"`

	Logging *struct {
		Level string `json:"level"`
		Debug bool   `json:"debug"`
	} `json:"logging,omitempty"`
}

const (
	defaultConcurrency           = 16
	defaultRestrictedConcurrency = 4
	defaultSamples               = 5
	defaultRestrictedSamples     = 3
)

// Normalize fills zero fields with defaults. Safe to call repeatedly.
func (c *Config) Normalize() {
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}

	if c.RestrictedConcurrency <= 0 {
		c.RestrictedConcurrency = defaultRestrictedConcurrency
	}

	if c.Samples <= 0 {
		c.Samples = defaultSamples
	}

	if c.RestrictedSamples <= 0 {
		c.RestrictedSamples = defaultRestrictedSamples
	}

	if c.Spacing == 0 {
		c.Spacing = Duration(100 * time.Millisecond)
	}

	if c.RestrictedSpacing == 0 {
		c.RestrictedSpacing = Duration(500 * time.Millisecond)
	}

	if c.PingTimeout == 0 {
		c.PingTimeout = Duration(5 * time.Second)
	}

	if c.DNSTimeout == 0 {
		c.DNSTimeout = Duration(3 * time.Second)
	}

	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = Duration(5 * time.Second)
	}

	if c.CDNTimeout == 0 {
		c.CDNTimeout = Duration(10 * time.Second)
	}

	if c.PortTimeout == 0 {
		c.PortTimeout = Duration(3 * time.Second)
	}

	if len(c.DNSTestDomains) == 0 {
		c.DNSTestDomains = []string{
			"google.com.",
			"cloudflare.com.",
			"github.com.",
			"amazon.com.",
			"microsoft.com.",
		}
	}

	if len(c.STUNServers) == 0 {
		c.STUNServers = []string{
			"stun.l.google.com:19302",
			"stun.cloudflare.com:3478",
		}
	}

	c.Scoring.Normalize()
}
