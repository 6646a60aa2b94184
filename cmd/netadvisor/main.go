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

// netadvisor runs one diagnostic pass over the endpoint catalogs and
// prints the run result or the generated config template as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/confgen"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/config"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/logger"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to JSON config file")
	categories := flag.String("categories", "", "Comma-separated categories to run (default all)")
	restricted := flag.Bool("restricted", false, "Run with the restricted-mode policy")
	templateOnly := flag.Bool("template", false, "Print only the generated config template")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	if cfg.Logging != nil {
		logCfg.Level = cfg.Logging.Level
		logCfg.Debug = cfg.Logging.Debug
	}

	logCfg.Output = "stderr"

	appLogger, err := logger.New(logCfg)
	if err != nil {
		return err
	}

	svc := pipeline.New(cfg, appLogger)
	svc.SetRestrictedMode(*restricted)

	result, err := svc.Run(ctx, parseCategories(*categories))
	if err != nil && result == nil {
		return err
	}

	if *templateOnly {
		out, exportErr := confgen.ExportJSON(result.Template)
		if exportErr != nil {
			return exportErr
		}

		fmt.Println(string(out))

		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}

func parseCategories(s string) []models.Category {
	if s == "" {
		return nil
	}

	var categories []models.Category

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			categories = append(categories, models.Category(part))
		}
	}

	return categories
}
