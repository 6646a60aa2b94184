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

package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

func sample(latency time.Duration, success bool, errClass models.ErrorClass) models.Sample {
	return models.Sample{
		TargetID: "ping/host:80",
		Latency:  latency,
		Success:  success,
		Err:      errClass,
	}
}

func TestSummarizeBasicStats(t *testing.T) {
	samples := []models.Sample{
		sample(20*time.Millisecond, true, models.ErrNone),
		sample(30*time.Millisecond, true, models.ErrNone),
		sample(25*time.Millisecond, true, models.ErrNone),
		sample(0, false, models.ErrTimeout),
	}

	s := Summarize("ping/host:80", samples)

	assert.Equal(t, 4, s.SampleCount)
	assert.Equal(t, 3, s.Successes)
	assert.InDelta(t, 0.25, s.LossRate, 1e-9)
	assert.Equal(t, 25*time.Millisecond, s.MeanLatency)
	assert.Equal(t, 20*time.Millisecond, s.MinLatency)
	assert.Equal(t, 30*time.Millisecond, s.MaxLatency)
	assert.False(t, s.Unreachable)
	assert.False(t, s.NoData)
}

func TestSummarizeJitterIsConsecutiveDeviation(t *testing.T) {
	// 10 -> 50 -> 10: consecutive diffs 40, 40 -> jitter 40ms. The
	// variance of all pairs would be smaller; erratic sequences must be
	// penalized harder than uniformly slow ones.
	samples := []models.Sample{
		sample(10*time.Millisecond, true, models.ErrNone),
		sample(50*time.Millisecond, true, models.ErrNone),
		sample(10*time.Millisecond, true, models.ErrNone),
	}

	s := Summarize("ping/host:80", samples)

	assert.Equal(t, 40*time.Millisecond, s.Jitter)
}

func TestSummarizeJitterPreservesOrder(t *testing.T) {
	steady := []models.Sample{
		sample(10*time.Millisecond, true, models.ErrNone),
		sample(20*time.Millisecond, true, models.ErrNone),
		sample(30*time.Millisecond, true, models.ErrNone),
		sample(40*time.Millisecond, true, models.ErrNone),
	}

	erratic := []models.Sample{
		sample(40*time.Millisecond, true, models.ErrNone),
		sample(10*time.Millisecond, true, models.ErrNone),
		sample(30*time.Millisecond, true, models.ErrNone),
		sample(20*time.Millisecond, true, models.ErrNone),
	}

	sSteady := Summarize("t", steady)
	sErratic := Summarize("t", erratic)

	// Same value set, but the erratic ordering jitters more.
	assert.Greater(t, sErratic.Jitter, sSteady.Jitter)
}

func TestSummarizeUnreachable(t *testing.T) {
	samples := []models.Sample{
		sample(0, false, models.ErrTimeout),
		sample(0, false, models.ErrRefused),
	}

	s := Summarize("port/8.8.8.8:21", samples)

	require.True(t, s.Unreachable)
	assert.False(t, s.NoData)
	assert.InDelta(t, 1.0, s.LossRate, 1e-9)
	// No latency statistics may leak out of an unreachable summary.
	assert.Zero(t, s.MeanLatency)
	assert.Zero(t, s.Jitter)
}

func TestSummarizeNoData(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize("t", nil)
		assert.True(t, s.NoData)
		assert.False(t, s.Unreachable)
	})

	t.Run("policy excluded only", func(t *testing.T) {
		s := Summarize("t", []models.Sample{
			{TargetID: "t", Err: models.ErrPolicyExcluded},
		})
		assert.True(t, s.NoData)
		assert.Zero(t, s.SampleCount)
	})
}

func TestSummarizeLossRateBounds(t *testing.T) {
	cases := []struct {
		name      string
		successes int
		failures  int
	}{
		{"all good", 5, 0},
		{"mixed", 3, 2},
		{"all lost", 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var samples []models.Sample

			for i := 0; i < tc.successes; i++ {
				samples = append(samples, sample(10*time.Millisecond, true, models.ErrNone))
			}

			for i := 0; i < tc.failures; i++ {
				samples = append(samples, sample(0, false, models.ErrTimeout))
			}

			s := Summarize("t", samples)

			assert.GreaterOrEqual(t, s.LossRate, 0.0)
			assert.LessOrEqual(t, s.LossRate, 1.0)
		})
	}
}

func TestSummarizeP95(t *testing.T) {
	var samples []models.Sample

	for i := 1; i <= 20; i++ {
		samples = append(samples, sample(time.Duration(i)*time.Millisecond, true, models.ErrNone))
	}

	s := Summarize("t", samples)

	assert.InDelta(t, float64(19*time.Millisecond+50*time.Microsecond), float64(s.P95Latency), float64(time.Millisecond))
	assert.Equal(t, 20*time.Millisecond, s.MaxLatency)
}

func TestSummarizeThroughput(t *testing.T) {
	samples := []models.Sample{
		{
			TargetID:       "cdn/edge:443",
			Latency:        1100 * time.Millisecond,
			ConnectLatency: 100 * time.Millisecond,
			Bytes:          125_000, // 1 Mbit over 1s transfer
			Success:        true,
		},
	}

	s := Summarize("cdn/edge:443", samples)

	assert.InDelta(t, 1000, s.ThroughputKbps, 1)
}
