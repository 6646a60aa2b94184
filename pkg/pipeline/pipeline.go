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

// Package pipeline orchestrates a diagnostic run: probing the catalogs
// under the restricted-mode policy, aggregating, scoring, ranking and
// deriving the architecture decision and config template.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/aggregate"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/architect"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/catalog"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/confgen"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/logger"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/probe"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/recommend"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/score"
)

// mtuDiscoverer is satisfied by probe.MTUDiscoverer; tests substitute a
// fixed value.
type mtuDiscoverer interface {
	Discover(ctx context.Context) int
}

// Service runs diagnostics. Concurrent runs keep their data private but
// share the process-wide probe budget so simultaneous requests cannot
// overwhelm the local link.
type Service struct {
	cfg        *models.Config
	logger     logger.Logger
	restricted atomic.Bool
	budget     *semaphore.Weighted
	nat        probe.NATClassifier
	mtu        mtuDiscoverer
	catalogFor func(models.Category) []models.Target
}

func New(cfg *models.Config, log logger.Logger) *Service {
	cfg.Normalize()

	return &Service{
		cfg:    cfg,
		logger: log,
		budget: semaphore.NewWeighted(int64(cfg.Concurrency)),
		nat: probe.NewSTUNClassifier(
			cfg.STUNServers,
			cfg.PingTimeout.Duration(),
			log,
		),
		mtu:        &probe.MTUDiscoverer{},
		catalogFor: catalog.ForCategory,
	}
}

// RestrictedMode reports the current policy flag.
func (s *Service) RestrictedMode() bool { return s.restricted.Load() }

// SetRestrictedMode updates the policy flag. Takes effect on the next run;
// runs already in flight complete against the policy they started with.
func (s *Service) SetRestrictedMode(v bool) { s.restricted.Store(v) }

// Run executes one diagnostic run over the requested categories (nil means
// all). On cancellation the partial result is still built and returned
// alongside the context error; no probe failure ever aborts a run.
func (s *Service) Run(ctx context.Context, categories []models.Category) (*models.RunResult, error) {
	if len(categories) == 0 {
		categories = models.AllCategories()
	}

	restricted := s.restricted.Load()
	policy := probe.ResolvePolicy(s.cfg, restricted)

	result := &models.RunResult{
		RunID:           uuid.NewString(),
		StartedAt:       time.Now(),
		Restricted:      restricted,
		Recommendations: make(map[models.Category]models.Recommendation, len(categories)),
	}

	s.logger.Info().
		Str("run_id", result.RunID).
		Bool("restricted", restricted).
		Int("concurrency", policy.Concurrency).
		Msg("diagnostic run starting")

	// NAT classification and MTU discovery proceed alongside the probes.
	var (
		sideWG sync.WaitGroup
		nat    = models.NATUnknown
		mtu    int
	)

	sideWG.Add(2)

	go func() {
		defer sideWG.Done()

		nat = s.nat.Classify(ctx)
	}()

	go func() {
		defer sideWG.Done()

		mtu = s.mtu.Discover(ctx)
	}()

	targets := make([]models.Target, 0, 64)
	targetCategory := make(map[string]models.Category)
	excludedByCategory := make(map[models.Category][]models.Target)

	for _, c := range categories {
		allowed, excluded := policy.Filter(s.catalogFor(c))

		excludedByCategory[c] = excluded

		for _, t := range allowed {
			targetCategory[t.ID()] = c
			targets = append(targets, t)
		}
	}

	runner := probe.NewRunner(s.cfg, policy, s.budget, s.logger)
	collected := make(map[models.Category][]probe.TargetSamples)

	for ts := range runner.Run(ctx, targets) {
		c := targetCategory[ts.Target.ID()]
		collected[c] = append(collected[c], ts)
	}

	sideWG.Wait()

	result.NAT = nat

	scorer := score.NewScorer(s.cfg.Scoring, policy.ConfidenceCeiling)

	for _, c := range categories {
		entries := s.rankEntries(c, collected[c], excludedByCategory[c], scorer)
		result.Recommendations[c] = recommend.Rank(c, entries)

		if c == models.CategoryLocation {
			result.RegionSummary = recommend.RegionSummary(entries)
		}
	}

	result.Architecture = architect.Build(result.Recommendations, nat, restricted)
	result.Template = confgen.Generate(confgen.Inputs{
		Decision:        result.Architecture,
		Recommendations: result.Recommendations,
		NAT:             nat,
		Restricted:      restricted,
		ObservedMTU:     mtu,
	})
	result.CompletedAt = time.Now()

	s.logger.Info().
		Str("run_id", result.RunID).
		Str("nat", string(nat)).
		Dur("elapsed", result.CompletedAt.Sub(result.StartedAt)).
		Msg("diagnostic run complete")

	if err := ctx.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// rankEntries builds the scored entry list for one category. The protocol
// category is aggregated per protocol across its hosts; every other
// category aggregates per target. Policy-excluded targets surface as
// no-data entries instead of vanishing from the output.
func (s *Service) rankEntries(c models.Category, collected []probe.TargetSamples, excluded []models.Target, scorer *score.Scorer) []models.RankedTarget {
	var entries []models.RankedTarget

	if c == models.CategoryProtocol {
		entries = s.protocolEntries(collected, scorer)
	} else {
		entries = make([]models.RankedTarget, 0, len(collected)+len(excluded))

		for _, ts := range collected {
			summary := aggregate.Summarize(ts.Target.ID(), ts.Samples)
			entries = append(entries, models.RankedTarget{
				Target:  ts.Target,
				Summary: summary,
				Score:   scorer.Score(summary, ts.Target.Kind),
			})
		}
	}

	for _, t := range excluded {
		summary := aggregate.Summarize(t.ID(), []models.Sample{probe.Excluded(t)})
		entries = append(entries, models.RankedTarget{
			Target:  t,
			Summary: summary,
			Score:   scorer.Score(summary, t.Kind),
		})
	}

	return entries
}

// protocolEntries merges the per-host sample sets of each protocol into
// one synthetic per-protocol entry, mirroring how the protocol category is
// recommended as a protocol, not a host.
func (s *Service) protocolEntries(collected []probe.TargetSamples, scorer *score.Scorer) []models.RankedTarget {
	merged := make(map[string][]models.Sample)

	for _, ts := range collected {
		proto := ts.Target.Protocol
		merged[proto] = append(merged[proto], ts.Samples...)
	}

	entries := make([]models.RankedTarget, 0, len(merged))

	for _, proto := range []string{
		models.ProtoHTTP,
		models.ProtoHTTPS,
		models.ProtoTCP,
		models.ProtoUDP,
		models.ProtoTLS,
		models.ProtoWebSocket,
	} {
		samples, ok := merged[proto]
		if !ok {
			continue
		}

		target := protocolTarget(proto)
		summary := aggregate.Summarize(target.ID(), samples)

		entries = append(entries, models.RankedTarget{
			Target:  target,
			Summary: summary,
			Score:   scorer.Score(summary, models.KindProtocol),
		})
	}

	return entries
}

// protocolTarget is the synthetic target representing one protocol across
// all its test hosts.
func protocolTarget(proto string) models.Target {
	port := 80

	switch proto {
	case models.ProtoHTTPS, models.ProtoTLS, models.ProtoWebSocket:
		port = 443
	case models.ProtoUDP:
		port = 53
	}

	return models.Target{
		Kind:     models.KindProtocol,
		Protocol: proto,
		Port:     port,
		Name:     proto,
	}
}
