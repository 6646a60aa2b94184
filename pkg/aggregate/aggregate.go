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

// Package aggregate turns the ordered sample set for one target into a
// MetricSummary. Pure functions, no I/O.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// Summarize computes the per-target aggregate for one run.
//
// Loss rate counts failed attempts over all attempts. Jitter is the mean
// absolute difference between consecutive successful latencies, which
// penalizes erratic targets harder than uniformly slow ones. A target with
// attempts but zero successes is marked unreachable; one with no attempts
// at all (policy-excluded, cancelled before start) is marked no-data.
// Neither carries statistics that could be misread as good performance.
func Summarize(targetID string, samples []models.Sample) models.MetricSummary {
	summary := models.MetricSummary{TargetID: targetID}

	attempts := 0
	latencies := make([]time.Duration, 0, len(samples))

	var bytes int64

	var transfer time.Duration

	for _, s := range samples {
		if s.Err == models.ErrPolicyExcluded {
			continue
		}

		attempts++

		if s.Success {
			latencies = append(latencies, s.Latency)

			if s.Bytes > 0 {
				bytes += s.Bytes
				transfer += s.Latency - s.ConnectLatency
			}
		}
	}

	summary.SampleCount = attempts
	summary.Successes = len(latencies)

	if attempts == 0 {
		summary.NoData = true
		return summary
	}

	summary.LossRate = float64(attempts-len(latencies)) / float64(attempts)

	if len(latencies) == 0 {
		summary.Unreachable = true
		return summary
	}

	summary.MeanLatency = mean(latencies)
	summary.Jitter = jitter(latencies)
	summary.LatencyCV = coefficientOfVariation(latencies, summary.MeanLatency)

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	summary.MinLatency = sorted[0]
	summary.MaxLatency = sorted[len(sorted)-1]
	summary.MedianLatency = percentile(sorted, 0.50)
	summary.P95Latency = percentile(sorted, 0.95)

	if bytes > 0 && transfer > 0 {
		summary.ThroughputKbps = float64(bytes*8) / transfer.Seconds() / 1000
	}

	return summary
}

func mean(values []time.Duration) time.Duration {
	var total time.Duration
	for _, v := range values {
		total += v
	}

	return total / time.Duration(len(values))
}

// jitter is the mean absolute difference of consecutive values, preserving
// sample order.
func jitter(latencies []time.Duration) time.Duration {
	if len(latencies) < 2 {
		return 0
	}

	var total time.Duration

	for i := 1; i < len(latencies); i++ {
		d := latencies[i] - latencies[i-1]
		if d < 0 {
			d = -d
		}

		total += d
	}

	return total / time.Duration(len(latencies)-1)
}

func coefficientOfVariation(latencies []time.Duration, meanLatency time.Duration) float64 {
	if len(latencies) < 2 || meanLatency == 0 {
		return 0
	}

	m := float64(meanLatency)

	var sumSq float64

	for _, l := range latencies {
		d := float64(l) - m
		sumSq += d * d
	}

	return math.Sqrt(sumSq/float64(len(latencies))) / m
}

// percentile expects sorted input and interpolates between neighbours.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))

	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)

	return sorted[lower] + time.Duration(frac*float64(sorted[upper]-sorted[lower]))
}
