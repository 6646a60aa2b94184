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

package score

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

func testSummary(mean time.Duration, loss float64, jitter time.Duration, samples int) models.MetricSummary {
	return models.MetricSummary{
		TargetID:    "t",
		SampleCount: samples,
		Successes:   samples - int(loss*float64(samples)),
		MeanLatency: mean,
		Jitter:      jitter,
		LossRate:    loss,
	}
}

func newTestScorer() *Scorer {
	return NewScorer(models.DefaultScoringConfig(), models.ConfidenceHigh)
}

func TestScoreUnreachableIsZero(t *testing.T) {
	s := newTestScorer()

	score := s.Score(models.MetricSummary{TargetID: "t", SampleCount: 5, LossRate: 1, Unreachable: true}, models.KindPing)

	assert.Zero(t, score.Value)
	assert.Equal(t, models.ConfidenceLow, score.Confidence)
}

func TestScoreMonotonicInLoss(t *testing.T) {
	s := newTestScorer()

	prev := 101.0

	for _, loss := range []float64{0, 0.01, 0.02, 0.05, 0.10, 0.15, 0.20, 0.50} {
		score := s.Score(testSummary(20*time.Millisecond, loss, 2*time.Millisecond, 10), models.KindPing)
		assert.LessOrEqual(t, score.Value, prev, "loss %.2f must not score above lower loss", loss)
		prev = score.Value
	}
}

func TestScoreMonotonicInJitter(t *testing.T) {
	s := newTestScorer()

	prev := 101.0

	for _, j := range []time.Duration{0, 5 * time.Millisecond, 20 * time.Millisecond, 80 * time.Millisecond, 200 * time.Millisecond} {
		score := s.Score(testSummary(50*time.Millisecond, 0, j, 10), models.KindPing)
		assert.LessOrEqual(t, score.Value, prev)
		prev = score.Value
	}
}

func TestScoreLossCollapsesSharply(t *testing.T) {
	s := newTestScorer()

	atKnee := s.Score(testSummary(20*time.Millisecond, 0.02, 0, 10), models.KindPing)
	pastKnee := s.Score(testSummary(20*time.Millisecond, 0.10, 0, 10), models.KindPing)

	// The drop past the knee must be much steeper than the drop up to it.
	perfect := s.Score(testSummary(20*time.Millisecond, 0, 0, 10), models.KindPing)
	dropToKnee := perfect.Value - atKnee.Value
	dropPastKnee := atKnee.Value - pastKnee.Value

	assert.Greater(t, dropPastKnee, dropToKnee)
}

func TestScorePrefersZeroLossOverLossy(t *testing.T) {
	// Same 20ms latency, 10 samples: 0% loss must beat 15% loss.
	s := newTestScorer()

	a := s.Score(testSummary(20*time.Millisecond, 0, 0, 10), models.KindPing)
	b := s.Score(testSummary(20*time.Millisecond, 0.15, 0, 10), models.KindPing)

	assert.Greater(t, a.Value, b.Value)
}

func TestConfidenceGates(t *testing.T) {
	s := newTestScorer()

	t.Run("few samples caps at low", func(t *testing.T) {
		summary := testSummary(20*time.Millisecond, 0, 0, 2)
		score := s.Score(summary, models.KindPing)
		assert.Equal(t, models.ConfidenceLow, score.Confidence)
	})

	t.Run("high variability caps at medium", func(t *testing.T) {
		summary := testSummary(20*time.Millisecond, 0, 0, 10)
		summary.LatencyCV = 0.9
		score := s.Score(summary, models.KindPing)
		assert.Equal(t, models.ConfidenceMedium, score.Confidence)
	})

	t.Run("steady and well sampled is high", func(t *testing.T) {
		summary := testSummary(20*time.Millisecond, 0, 0, 10)
		summary.LatencyCV = 0.1
		score := s.Score(summary, models.KindPing)
		assert.Equal(t, models.ConfidenceHigh, score.Confidence)
	})

	t.Run("never high below minimum samples", func(t *testing.T) {
		for samples := 0; samples < models.DefaultScoringConfig().MinSamples; samples++ {
			summary := testSummary(20*time.Millisecond, 0, 0, samples)
			score := s.Score(summary, models.KindPing)
			assert.NotEqual(t, models.ConfidenceHigh, score.Confidence)
		}
	})
}

func TestRestrictedCeilingCapsConfidence(t *testing.T) {
	s := NewScorer(models.DefaultScoringConfig(), models.ConfidenceMedium)

	summary := testSummary(20*time.Millisecond, 0, 0, 10)
	summary.LatencyCV = 0.1

	score := s.Score(summary, models.KindPing)

	assert.Equal(t, models.ConfidenceMedium, score.Confidence)
}

func TestScoreRange(t *testing.T) {
	s := newTestScorer()

	cases := []models.MetricSummary{
		testSummary(1*time.Millisecond, 0, 0, 10),
		testSummary(5*time.Second, 0.19, 500*time.Millisecond, 10),
		testSummary(100*time.Millisecond, 0.5, 50*time.Millisecond, 10),
	}

	for _, c := range cases {
		score := s.Score(c, models.KindPing)
		assert.GreaterOrEqual(t, score.Value, 0.0)
		assert.LessOrEqual(t, score.Value, 100.0)
	}
}

func TestScoreWithPartialScoringConfig(t *testing.T) {
	// A config file that sets one scoring field must not zero the weight
	// sum or the jitter divisor.
	var cfg models.Config

	require.NoError(t, json.Unmarshal([]byte(`{"scoring":{"min_samples":5}}`), &cfg))
	cfg.Normalize()

	s := NewScorer(cfg.Scoring, models.ConfidenceHigh)
	score := s.Score(testSummary(20*time.Millisecond, 0, 2*time.Millisecond, 10), models.KindPing)

	require.False(t, math.IsNaN(score.Value))
	assert.GreaterOrEqual(t, score.Value, 0.0)
	assert.LessOrEqual(t, score.Value, 100.0)
	assert.Greater(t, score.Value, 50.0)
}

func TestLatencyScalePerKind(t *testing.T) {
	s := newTestScorer()

	// 500ms is poor for a DNS query but unremarkable for a CDN fetch.
	summary := testSummary(500*time.Millisecond, 0, 0, 10)

	dns := s.Score(summary, models.KindDNS)
	cdn := s.Score(summary, models.KindCDN)

	assert.Greater(t, cdn.Value, dns.Value)
}
