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

package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

func entry(host string, value float64, conf models.Confidence, mean time.Duration) models.RankedTarget {
	return models.RankedTarget{
		Target: models.Target{Kind: models.KindPing, Host: host, Port: 80},
		Summary: models.MetricSummary{
			TargetID:    "ping/" + host + ":80",
			SampleCount: 5,
			Successes:   5,
			MeanLatency: mean,
		},
		Score: models.Score{TargetID: "ping/" + host + ":80", Value: value, Confidence: conf},
	}
}

func unreachableEntry(host string) models.RankedTarget {
	e := entry(host, 0, models.ConfidenceLow, 0)
	e.Summary.Successes = 0
	e.Summary.Unreachable = true
	e.Summary.LossRate = 1

	return e
}

func TestRankSelectsHighestScore(t *testing.T) {
	rec := Rank(models.CategoryLocation, []models.RankedTarget{
		entry("b", 70, models.ConfidenceHigh, 30*time.Millisecond),
		entry("a", 90, models.ConfidenceHigh, 20*time.Millisecond),
		entry("c", 50, models.ConfidenceHigh, 40*time.Millisecond),
	})

	require.True(t, rec.Available)
	require.NotNil(t, rec.Selected)
	assert.Equal(t, "a", rec.Selected.Target.Host)
	assert.Len(t, rec.RunnersUp, 2)
	assert.Equal(t, "b", rec.RunnersUp[0].Target.Host)
}

func TestRankTieBreaks(t *testing.T) {
	t.Run("confidence breaks score tie", func(t *testing.T) {
		rec := Rank(models.CategoryDNS, []models.RankedTarget{
			entry("medium", 80, models.ConfidenceMedium, 10*time.Millisecond),
			entry("high", 80, models.ConfidenceHigh, 20*time.Millisecond),
		})

		assert.Equal(t, "high", rec.Selected.Target.Host)
	})

	t.Run("latency breaks confidence tie", func(t *testing.T) {
		rec := Rank(models.CategoryDNS, []models.RankedTarget{
			entry("slow", 80, models.ConfidenceHigh, 30*time.Millisecond),
			entry("fast", 80, models.ConfidenceHigh, 10*time.Millisecond),
		})

		assert.Equal(t, "fast", rec.Selected.Target.Host)
	})

	t.Run("target id is final tie break", func(t *testing.T) {
		rec := Rank(models.CategoryDNS, []models.RankedTarget{
			entry("bbb", 80, models.ConfidenceHigh, 10*time.Millisecond),
			entry("aaa", 80, models.ConfidenceHigh, 10*time.Millisecond),
		})

		assert.Equal(t, "aaa", rec.Selected.Target.Host)
	})
}

func TestRankDeterministic(t *testing.T) {
	entries := []models.RankedTarget{
		entry("c", 80, models.ConfidenceHigh, 10*time.Millisecond),
		entry("a", 90, models.ConfidenceMedium, 15*time.Millisecond),
		entry("b", 80, models.ConfidenceHigh, 10*time.Millisecond),
		unreachableEntry("d"),
	}

	first := Rank(models.CategoryLocation, entries)

	for i := 0; i < 10; i++ {
		again := Rank(models.CategoryLocation, entries)
		require.Equal(t, first, again)
	}
}

func TestRankNoneReachable(t *testing.T) {
	rec := Rank(models.CategoryPort, []models.RankedTarget{
		unreachableEntry("x"),
		unreachableEntry("y"),
	})

	assert.False(t, rec.Available)
	assert.Nil(t, rec.Selected)
	// Unreachable results are still reported, never promoted.
	assert.Len(t, rec.RunnersUp, 2)
}

func TestRankExcludesUnreachableFromSelection(t *testing.T) {
	rec := Rank(models.CategoryLocation, []models.RankedTarget{
		unreachableEntry("down"),
		entry("up", 5, models.ConfidenceLow, 900*time.Millisecond),
	})

	require.True(t, rec.Available)
	// A terrible but reachable target still beats an unreachable one.
	assert.Equal(t, "up", rec.Selected.Target.Host)
}

func TestRegionSummary(t *testing.T) {
	mk := func(host, region string, mean time.Duration) models.RankedTarget {
		e := entry(host, 80, models.ConfidenceHigh, mean)
		e.Target.Region = region

		return e
	}

	entries := []models.RankedTarget{
		mk("lon", "Europe", 40*time.Millisecond),
		mk("fra", "Europe", 60*time.Millisecond),
		mk("nyc", "North America", 120*time.Millisecond),
		unreachableEntry("syd"),
	}

	stats := RegionSummary(entries)

	require.Len(t, stats, 2)
	assert.Equal(t, "Europe", stats[0].Region)
	assert.Equal(t, 50*time.Millisecond, stats[0].MeanLatency)
	assert.Equal(t, 40*time.Millisecond, stats[0].BestLatency)
	assert.Equal(t, 2, stats[0].Endpoints)
	assert.Equal(t, "North America", stats[1].Region)
}
