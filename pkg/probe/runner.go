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
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/logger"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

const workQueueMultiplier = 2

// TargetSamples carries the complete sample set for one target. A target's
// samples are emitted only once every attempt has completed or timed out,
// so downstream aggregation never sees a partial set.
type TargetSamples struct {
	Target  models.Target
	Samples []models.Sample
}

// Runner samples many targets concurrently under the policy's worker cap
// and a process-wide attempt budget shared between concurrent runs.
type Runner struct {
	cfg    *models.Config
	policy Policy
	budget *semaphore.Weighted
	logger logger.Logger
}

func NewRunner(cfg *models.Config, policy Policy, budget *semaphore.Weighted, log logger.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		policy: policy,
		budget: budget,
		logger: log,
	}
}

// Run probes every target and streams per-target sample sets. The channel
// closes once all workers drain. Cancelling ctx stops new attempts from
// starting; attempts already in flight finish or time out on their own.
func (r *Runner) Run(ctx context.Context, targets []models.Target) <-chan TargetSamples {
	resultCh := make(chan TargetSamples, len(targets))

	if len(targets) == 0 {
		close(resultCh)
		return resultCh
	}

	workCh := make(chan models.Target, r.policy.Concurrency*workQueueMultiplier)

	var wg sync.WaitGroup

	for i := 0; i < r.policy.Concurrency; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			r.worker(ctx, workCh, resultCh)
		}()
	}

	go func() {
		defer close(workCh)

		for _, t := range targets {
			select {
			case <-ctx.Done():
				return
			case workCh <- t:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}

func (r *Runner) worker(ctx context.Context, workCh <-chan models.Target, resultCh chan<- TargetSamples) {
	for t := range workCh {
		samples := r.sampleTarget(ctx, t)
		if len(samples) == 0 {
			// Cancelled before the first attempt started.
			continue
		}

		select {
		case <-ctx.Done():
			// Still deliver what we have; partial runs report partial data.
			resultCh <- TargetSamples{Target: t, Samples: samples}

			return
		case resultCh <- TargetSamples{Target: t, Samples: samples}:
		}
	}
}

// sampleTarget issues the policy's attempt count sequentially against one
// target with the minimum inter-attempt spacing.
func (r *Runner) sampleTarget(ctx context.Context, t models.Target) []models.Sample {
	prober := ForTarget(t, r.cfg)
	limiter := rate.NewLimiter(rate.Every(r.policy.Spacing), 1)
	samples := make([]models.Sample, 0, r.policy.Samples)

	for i := 0; i < r.policy.Samples; i++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		if r.budget != nil {
			if err := r.budget.Acquire(ctx, 1); err != nil {
				break
			}
		}

		sample := prober.Probe(ctx, t)

		if r.budget != nil {
			r.budget.Release(1)
		}

		samples = append(samples, sample)

		if !sample.Success {
			r.logger.Debug().
				Str("target", t.ID()).
				Str("error", string(sample.Err)).
				Msg("probe attempt failed")
		}
	}

	return samples
}
