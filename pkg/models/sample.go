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

import "time"

// ErrorClass is the typed classification of a failed probe attempt. Probe
// failures are data, not control flow: they degrade the target's summary
// but never abort a run.
type ErrorClass string

const (
	ErrNone           ErrorClass = ""
	ErrTimeout        ErrorClass = "timeout"
	ErrRefused        ErrorClass = "refused"
	ErrUnreachable    ErrorClass = "unreachable"
	ErrProtocol       ErrorClass = "protocol_error"
	ErrPolicyExcluded ErrorClass = "policy_excluded"
)

// Sample is one probe attempt's raw result. Never mutated after creation.
type Sample struct {
	TargetID  string        `json:"target_id"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency"`
	Success   bool          `json:"success"`
	Err       ErrorClass    `json:"error,omitempty"`
	// Bytes transferred for probe kinds that download a payload (CDN).
	Bytes int64 `json:"bytes,omitempty"`
	// ConnectLatency is the transport setup portion for probes that split
	// connect and transfer timing (CDN).
	ConnectLatency time.Duration `json:"connect_latency,omitempty"`
}

// MetricSummary aggregates all samples for one target in one run.
// A summary with NoData set carries no statistics at all; one with
// Unreachable set had attempts but zero successes. Neither may be
// confused with a slow-but-reachable target.
type MetricSummary struct {
	TargetID       string        `json:"target_id"`
	SampleCount    int           `json:"sample_count"`
	Successes      int           `json:"successes"`
	MeanLatency    time.Duration `json:"mean_latency"`
	MedianLatency  time.Duration `json:"median_latency"`
	MinLatency     time.Duration `json:"min_latency"`
	MaxLatency     time.Duration `json:"max_latency"`
	P95Latency     time.Duration `json:"p95_latency"`
	Jitter         time.Duration `json:"jitter"`
	LossRate       float64       `json:"loss_rate"`
	LatencyCV      float64       `json:"latency_cv"`
	ThroughputKbps float64       `json:"throughput_kbps,omitempty"`
	Unreachable    bool          `json:"unreachable"`
	NoData         bool          `json:"no_data"`
}

// Confidence qualifies how much a score should be trusted.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Less orders confidence low < medium < high.
func (c Confidence) Less(other Confidence) bool {
	return c.rank() < other.rank()
}

func (c Confidence) rank() int {
	switch c {
	case ConfidenceMedium:
		return 1
	case ConfidenceHigh:
		return 2
	default:
		return 0
	}
}

// Score is the normalized 0-100 stability value for one target.
type Score struct {
	TargetID   string     `json:"target_id"`
	Value      float64    `json:"value"`
	Confidence Confidence `json:"confidence"`
}
