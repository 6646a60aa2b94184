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

// Category tags group targets for ranking and recommendation.
type Category string

const (
	CategoryLocation Category = "location"
	CategoryDNS      Category = "dns"
	CategoryCDN      Category = "cdn"
	CategoryProtocol Category = "protocol"
	CategoryPort     Category = "port"
)

// AllCategories lists every category in presentation order.
func AllCategories() []Category {
	return []Category{
		CategoryLocation,
		CategoryDNS,
		CategoryCDN,
		CategoryProtocol,
		CategoryPort,
	}
}

// RankedTarget bundles one target with its run statistics and score.
type RankedTarget struct {
	Target  Target        `json:"target"`
	Summary MetricSummary `json:"summary"`
	Score   Score         `json:"score"`
}

// Recommendation is the per-category ranking outcome. When no target in
// the category is reachable, Available is false, Selected is nil and
// RunnersUp holds the unreachable results for reporting.
type Recommendation struct {
	Category  Category       `json:"category"`
	Available bool           `json:"available"`
	Selected  *RankedTarget  `json:"selected,omitempty"`
	RunnersUp []RankedTarget `json:"runners_up,omitempty"`
}

// RegionStats summarises ping latency per geographic region.
type RegionStats struct {
	Region      string        `json:"region"`
	MeanLatency time.Duration `json:"mean_latency"`
	BestLatency time.Duration `json:"best_latency"`
	Endpoints   int           `json:"endpoints"`
}
