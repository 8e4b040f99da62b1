// Copyright 2025 Vendisearch Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/vendisearch/vendisearch"
	"github.com/vendisearch/vendisearch/config"
	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/storage/csvsource"
)

func main() {
	app := &cli.App{
		Name:  "vendisearch",
		Usage: "Semantic search over flat vendor records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB database directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (defaults used when absent)",
				Value:   "vendisearch.yaml",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a semantic query against the corpus",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Exact-match filter as field=value (repeatable)",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Maximum number of results (0 uses the configured default)",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum score 0-1 (configured default when omitted)",
					},
				},
			},
			{
				Name:   "refresh",
				Usage:  "Rebuild the index if the corpus changed",
				Action: refreshCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rebuild even when the index is fresh",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import records from a CSV file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the CSV file (header row maps columns to schema fields)",
						Required: true,
					},
				},
			},
			{
				Name:   "fields",
				Usage:  "Show the configured record schema",
				Action: fieldsCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show corpus statistics",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*vendisearch.Engine, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	engine, err := vendisearch.Open(c.String("db"), cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return engine, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	threshold := float32(c.Float64("threshold"))
	if !c.IsSet("threshold") {
		_, threshold = engine.SearchDefaults()
	}

	results, err := engine.Search(context.Background(), query, filters, c.Int("top-k"), threshold)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	fields := engine.FieldDefinitions()
	for rank, result := range results {
		fmt.Printf("%d. score %.1f%% (similarity %.1f%%)\n", rank+1, result.Score*100, result.Similarity*100)
		for _, field := range fields {
			if !field.InCard {
				continue
			}
			if value := result.Record.Value(field.Index); value != "" {
				fmt.Printf("   %s: %s\n", field.Label, value)
			}
		}
		fmt.Println()
	}
	return nil
}

func refreshCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.RefreshIndex(context.Background(), c.Bool("force")); err != nil {
		return err
	}
	snap := engine.Index().Snapshot()
	if snap == nil {
		fmt.Println("Index is empty.")
		return nil
	}
	fmt.Printf("Index holds %d records (built %s).\n", len(snap.Entries), snap.BuiltAt.Format("2006-01-02 15:04:05"))
	return nil
}

func importCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	schema, err := cfg.CoreSchema()
	if err != nil {
		return err
	}
	source, err := csvsource.New(c.String("csv"), schema)
	if err != nil {
		return err
	}

	n, err := engine.ImportRecords(context.Background(), source)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d records.\n", n)
	return nil
}

func fieldsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Printf("%-4s %-18s %-20s %-8s %-10s %-6s %s\n", "IDX", "NAME", "LABEL", "TYPE", "SEARCH", "WEIGHT", "FILTER")
	for _, field := range engine.FieldDefinitions() {
		fmt.Printf("%-4d %-18s %-20s %-8s %-10v %-6d %v\n",
			field.Index, field.Name, field.Label, fieldTypeName(field.Type),
			field.Searchable, field.Weight, field.Filterable)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Total records: %d\n", stats.TotalRecords)

	names := make([]string, 0, len(stats.FieldValues))
	for name := range stats.FieldValues {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		counts := stats.FieldValues[name]
		values := make([]string, 0, len(counts))
		for value := range counts {
			values = append(values, value)
		}
		sort.Strings(values)

		fmt.Printf("\n%s:\n", name)
		for _, value := range values {
			fmt.Printf("  %s: %d\n", value, counts[value])
		}
	}
	return nil
}

func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid filter %q: expected field=value", pair)
		}
		filters[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return filters, nil
}

func fieldTypeName(t core.FieldType) string {
	switch t {
	case core.FieldTypeNumber:
		return "number"
	case core.FieldTypeBoolean:
		return "boolean"
	default:
		return "text"
	}
}

func setup(c *cli.Context) error {
	// Optional .env for embedder host overrides and the like.
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
