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

package probe

import (
	"time"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// Policy is the restricted-mode gate resolved once at the start of a run.
// A run executes to completion against the policy it started with; the
// flag is never re-read mid-run.
type Policy struct {
	Restricted  bool
	Concurrency int
	Samples     int
	Spacing     time.Duration
	// ConfidenceCeiling caps the confidence the scorer may assign to
	// results gathered under this policy.
	ConfidenceCeiling models.Confidence
}

// ResolvePolicy derives the effective policy from config and the
// restricted-mode flag sampled at run start.
func ResolvePolicy(cfg *models.Config, restricted bool) Policy {
	if restricted {
		return Policy{
			Restricted:        true,
			Concurrency:       cfg.RestrictedConcurrency,
			Samples:           cfg.RestrictedSamples,
			Spacing:           cfg.RestrictedSpacing.Duration(),
			ConfidenceCeiling: models.ConfidenceMedium,
		}
	}

	return Policy{
		Concurrency:       cfg.Concurrency,
		Samples:           cfg.Samples,
		Spacing:           cfg.Spacing.Duration(),
		ConfidenceCeiling: models.ConfidenceHigh,
	}
}

// Filter splits targets into those the policy allows and those excluded as
// intrusive, so excluded targets surface in the run output instead of
// vanishing.
func (p Policy) Filter(targets []models.Target) (allowed, excluded []models.Target) {
	if !p.Restricted {
		return targets, nil
	}

	allowed = make([]models.Target, 0, len(targets))

	for _, t := range targets {
		if t.Intrusive() {
			excluded = append(excluded, t)
			continue
		}

		allowed = append(allowed, t)
	}

	return allowed, excluded
}

// Excluded builds the policy-excluded sample recorded for a skipped target.
func Excluded(t models.Target) models.Sample {
	return models.Sample{
		TargetID:  t.ID(),
		Timestamp: time.Now(),
		Err:       models.ErrPolicyExcluded,
	}
}
