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

// Package recommend ranks scored targets within each category and selects
// the per-category best choice.
package recommend

import (
	"sort"
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// Rank sorts the category's reachable targets by score and returns the
// recommendation. Ordering is fully deterministic: score descending, then
// confidence descending, then mean latency ascending, then target ID.
//
// Unreachable targets are excluded from selection. When nothing in the
// category is reachable the recommendation is explicitly unavailable with
// the unreachable results attached for reporting, never an arbitrary pick.
func Rank(category models.Category, entries []models.RankedTarget) models.Recommendation {
	reachable := make([]models.RankedTarget, 0, len(entries))
	unreachable := make([]models.RankedTarget, 0)

	for _, e := range entries {
		if e.Summary.Unreachable || e.Summary.NoData {
			unreachable = append(unreachable, e)
			continue
		}

		reachable = append(reachable, e)
	}

	sortRanked(reachable)
	sortRanked(unreachable)

	if len(reachable) == 0 {
		return models.Recommendation{
			Category:  category,
			Available: false,
			RunnersUp: unreachable,
		}
	}

	selected := reachable[0]
	runnersUp := append(reachable[1:], unreachable...)

	return models.Recommendation{
		Category:  category,
		Available: true,
		Selected:  &selected,
		RunnersUp: runnersUp,
	}
}

func sortRanked(entries []models.RankedTarget) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.Score.Value != b.Score.Value {
			return a.Score.Value > b.Score.Value
		}

		if a.Score.Confidence != b.Score.Confidence {
			return b.Score.Confidence.Less(a.Score.Confidence)
		}

		if a.Summary.MeanLatency != b.Summary.MeanLatency {
			return a.Summary.MeanLatency < b.Summary.MeanLatency
		}

		return a.Target.ID() < b.Target.ID()
	})
}

// RegionSummary aggregates reachable ping results per geographic region,
// ordered best region first.
func RegionSummary(entries []models.RankedTarget) []models.RegionStats {
	type regionAcc struct {
		total time.Duration
		best  time.Duration
		count int
	}

	regions := make(map[string]*regionAcc)

	for _, e := range entries {
		if e.Summary.Unreachable || e.Summary.NoData || e.Target.Region == "" {
			continue
		}

		acc, ok := regions[e.Target.Region]
		if !ok {
			acc = &regionAcc{best: e.Summary.MeanLatency}
			regions[e.Target.Region] = acc
		}

		acc.total += e.Summary.MeanLatency
		acc.count++

		if e.Summary.MeanLatency < acc.best {
			acc.best = e.Summary.MeanLatency
		}
	}

	stats := make([]models.RegionStats, 0, len(regions))

	for region, acc := range regions {
		stats = append(stats, models.RegionStats{
			Region:      region,
			MeanLatency: acc.total / time.Duration(acc.count),
			BestLatency: acc.best,
			Endpoints:   acc.count,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].MeanLatency != stats[j].MeanLatency {
			return stats[i].MeanLatency < stats[j].MeanLatency
		}

		return stats[i].Region < stats[j].Region
	})

	return stats
}
