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

// Package config loads pipeline configuration from JSON files.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// LoadFile reads and unmarshals a JSON config file into dst.
func LoadFile(_ context.Context, path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// Load returns the normalized pipeline config. An empty path yields the
// defaults.
func Load(ctx context.Context, path string) (*models.Config, error) {
	cfg := &models.Config{}

	if path != "" {
		if err := LoadFile(ctx, path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Normalize()

	return cfg, nil
}
