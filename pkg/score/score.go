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

// Package score normalizes heterogeneous per-target statistics onto a
// common 0-100 stability scale with a confidence label.
package score

import (
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// Scorer maps metric summaries to scores using configured weights. The
// ceiling caps confidence for runs executed under restricted mode, where
// fewer and slower samples are collected.
type Scorer struct {
	cfg     models.ScoringConfig
	ceiling models.Confidence
}

func NewScorer(cfg models.ScoringConfig, ceiling models.Confidence) *Scorer {
	if ceiling == "" {
		ceiling = models.ConfidenceHigh
	}

	return &Scorer{cfg: cfg, ceiling: ceiling}
}

// latencyScale widens the excellent/poor latency band for probe kinds
// whose latency includes more than connection setup.
func latencyScale(kind models.ProbeKind) float64 {
	switch kind {
	case models.KindCDN:
		return 3
	case models.KindDNS:
		return 0.5
	default:
		return 1
	}
}

// Score derives the stability score for one summary. Unreachable and
// no-data targets score zero with low confidence; they are excluded from
// ranking downstream.
//
// The score is monotonically non-increasing in loss rate and in jitter
// with latency held fixed.
func (s *Scorer) Score(summary models.MetricSummary, kind models.ProbeKind) models.Score {
	if summary.NoData || summary.Unreachable {
		return models.Score{TargetID: summary.TargetID, Value: 0, Confidence: models.ConfidenceLow}
	}

	scale := latencyScale(kind)
	excellent := time.Duration(float64(s.cfg.ExcellentLatency.Duration()) * scale)
	poor := time.Duration(float64(s.cfg.PoorLatency.Duration()) * scale)

	latencyPart := saturating(summary.MeanLatency, excellent, poor)
	lossPart := s.lossContribution(summary.LossRate)
	jitterPart := 1 - clamp01(float64(summary.Jitter)/float64(s.cfg.PoorJitter.Duration()))

	totalWeight := s.cfg.LatencyWeight + s.cfg.LossWeight + s.cfg.JitterWeight
	value := 100 * (s.cfg.LatencyWeight*latencyPart +
		s.cfg.LossWeight*lossPart +
		s.cfg.JitterWeight*jitterPart) / totalWeight

	return models.Score{
		TargetID:   summary.TargetID,
		Value:      value,
		Confidence: s.confidence(summary),
	}
}

// lossContribution tolerates occasional loss near-linearly up to the knee,
// then collapses quadratically: frequent loss is disqualifying, not merely
// proportionally worse.
func (s *Scorer) lossContribution(loss float64) float64 {
	const kneePenalty = 0.25

	switch {
	case loss <= 0:
		return 1
	case loss <= s.cfg.LossKnee:
		return 1 - kneePenalty*(loss/s.cfg.LossKnee)
	case loss >= s.cfg.LossDisqualify:
		return 0
	default:
		remaining := 1 - (loss-s.cfg.LossKnee)/(s.cfg.LossDisqualify-s.cfg.LossKnee)
		return (1 - kneePenalty) * remaining * remaining
	}
}

func (s *Scorer) confidence(summary models.MetricSummary) models.Confidence {
	c := models.ConfidenceHigh

	if summary.LatencyCV > s.cfg.CVThreshold {
		c = models.ConfidenceMedium
	}

	if summary.Successes < s.cfg.MinSamples {
		c = models.ConfidenceLow
	}

	if s.ceiling.Less(c) {
		c = s.ceiling
	}

	return c
}

// saturating maps latency into [0,1]: full credit at or below excellent,
// zero at or beyond poor, linear in between.
func saturating(latency, excellent, poor time.Duration) float64 {
	if latency <= excellent {
		return 1
	}

	if latency >= poor {
		return 0
	}

	return 1 - float64(latency-excellent)/float64(poor-excellent)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
