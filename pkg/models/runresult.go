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

// RunResult is the terminal artifact of one diagnostic run. Categories that
// produced no reachable target still appear, marked unavailable, so partial
// results are always explicit rather than silently missing.
type RunResult struct {
	RunID           string                      `json:"run_id"`
	StartedAt       time.Time                   `json:"started_at"`
	CompletedAt     time.Time                   `json:"completed_at"`
	Restricted      bool                        `json:"restricted"`
	NAT             NATClass                    `json:"nat"`
	Recommendations map[Category]Recommendation `json:"recommendations"`
	RegionSummary   []RegionStats               `json:"region_summary,omitempty"`
	Architecture    ArchitectureDecision        `json:"architecture"`
	Template        ConfigTemplate              `json:"template"`
}
