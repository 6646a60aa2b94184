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
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/logger"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// startListener runs a TCP accept loop until the test ends and returns a
// ping target pointing at it.
func startListener(t *testing.T) models.Target {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, acceptErr := ln.Accept()
			if acceptErr != nil {
				return
			}

			_ = conn.Close()
		}
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return models.Target{Kind: models.KindPing, Host: host, Port: port}
}

// closedTarget reserves a port and closes it so dialing it is refused.
func closedTarget(t *testing.T) models.Target {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return models.Target{Kind: models.KindPing, Host: host, Port: port}
}

func fastConfig() *models.Config {
	cfg := &models.Config{
		Concurrency: 4,
		Samples:     3,
		Spacing:     models.Duration(time.Millisecond),
		PingTimeout: models.Duration(time.Second),
	}
	cfg.Normalize()

	return cfg
}

func TestRunnerCollectsAllSamples(t *testing.T) {
	cfg := fastConfig()
	policy := ResolvePolicy(cfg, false)
	policy.Samples = 3
	policy.Spacing = time.Millisecond

	targets := []models.Target{
		startListener(t),
		startListener(t),
		startListener(t),
	}

	r := NewRunner(cfg, policy, nil, logger.NewTestLogger())

	got := map[string][]models.Sample{}
	for ts := range r.Run(context.Background(), targets) {
		got[ts.Target.ID()] = ts.Samples
	}

	require.Len(t, got, len(targets))

	for id, samples := range got {
		require.Len(t, samples, policy.Samples, "target %s", id)

		for _, s := range samples {
			assert.True(t, s.Success)
			assert.Equal(t, id, s.TargetID)
			assert.Positive(t, s.Latency)
		}
	}
}

func TestRunnerReportsRefusedTarget(t *testing.T) {
	cfg := fastConfig()
	policy := ResolvePolicy(cfg, false)
	policy.Samples = 2
	policy.Spacing = time.Millisecond

	r := NewRunner(cfg, policy, nil, logger.NewTestLogger())

	results := make([]TargetSamples, 0, 1)
	for ts := range r.Run(context.Background(), []models.Target{closedTarget(t)}) {
		results = append(results, ts)
	}

	require.Len(t, results, 1)
	require.Len(t, results[0].Samples, 2)

	for _, s := range results[0].Samples {
		assert.False(t, s.Success)
		assert.Equal(t, models.ErrRefused, s.Err)
	}
}

func TestRunnerEmptyTargets(t *testing.T) {
	cfg := fastConfig()
	r := NewRunner(cfg, ResolvePolicy(cfg, false), nil, logger.NewTestLogger())

	ch := r.Run(context.Background(), nil)

	_, open := <-ch
	assert.False(t, open)
}

func TestRunnerCancellation(t *testing.T) {
	cfg := fastConfig()
	policy := ResolvePolicy(cfg, false)
	policy.Concurrency = 1
	policy.Samples = 5
	policy.Spacing = 50 * time.Millisecond

	targets := make([]models.Target, 0, 8)
	for i := 0; i < 8; i++ {
		targets = append(targets, startListener(t))
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := NewRunner(cfg, policy, nil, logger.NewTestLogger())
	ch := r.Run(ctx, targets)

	cancel()

	count := 0
	deadline := time.After(5 * time.Second)

	for {
		select {
		case _, open := <-ch:
			if !open {
				// Channel must close promptly after cancellation, without
				// waiting for the remaining targets.
				assert.Less(t, count, len(targets))
				return
			}

			count++
		case <-deadline:
			t.Fatal("result channel did not close after cancellation")
		}
	}
}
