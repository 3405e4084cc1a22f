// Copyright 2025 Poiesic Systems
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/recall"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/reembed"
	"github.com/poiesic/recall/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "recall",
		Usage: "Retrieval-augmented search over personal notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a note and index it",
				ArgsUsage: "<note contents>",
				Action:    addCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Category name for the note (created if missing)",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Run one query against the note database",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(databaseFlags(),
					&cli.BoolFlag{
						Name:  "no-answer",
						Usage: "Skip answer synthesis and print ranked notes only",
					},
				),
			},
			{
				Name:   "query",
				Usage:  "Interactive query session reading lines from stdin",
				Action: queryCommand,
				Flags: append(databaseFlags(),
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "Delay before a typed query is executed",
						Value: search.DefaultDebounce,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Recompute embeddings for all notes",
				Action: reembedCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of notes to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N notes",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "categories",
				Usage:  "List categories",
				Action: categoriesCommand,
				Flags:  databaseFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags are shared by every command that opens the database.
func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "vocabulary",
			Aliases:  []string{"v"},
			Usage:    "Path to the word-vector vocabulary file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "model-host",
			Usage: "Chat model service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Chat model name for routing and synthesis",
			Value: "qwen2.5:3b",
		},
	}
}

// openDatabase builds a Database from the shared command flags.
func openDatabase(c *cli.Context) (*recall.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("model-host")),
		ai.WithModel(c.String("model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := recall.NewDatabase(c.String("db"), c.String("vocabulary"),
		recall.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func addCommand(c *cli.Context) error {
	contents := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if contents == "" {
		return fmt.Errorf("note contents are required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	note := &core.Note{Contents: contents}
	if name := c.String("category"); name != "" {
		category, err := db.CategoryRepository().GetOrCreateCategory(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		note.CategoryId = category.Id
	}

	pipeline, err := db.NewIndexingPipeline()
	if err != nil {
		return fmt.Errorf("failed to create indexing pipeline: %w", err)
	}
	defer pipeline.Release()

	added, err := pipeline.Index(ctx, note)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("Added note %d\n", added[0].Id)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []search.Option
	if c.Bool("no-answer") {
		opts = append(opts, search.WithSynthesizer(nil))
	}

	searcher, err := db.NewSearcher(opts...)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	result, err := searcher.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResult(query, result)
	return nil
}

func queryCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := db.NewQuerySession(printResult,
		search.WithDebounce(c.Duration("debounce")),
		search.WithErrorFunc(func(query string, err error) {
			fmt.Fprintf(os.Stderr, "query %q failed: %v\n", query, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create query session: %w", err)
	}
	defer session.Close()

	fmt.Fprintln(os.Stderr, "Type a query and press enter. An empty line clears, Ctrl-D exits.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		session.Flush(scanner.Text())
	}
	return scanner.Err()
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Vocabulary: %s\n", c.String("vocabulary"))
	fmt.Fprintln(os.Stderr)

	reembedder := db.NewReembedder(reembedConfig, os.Stderr)
	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func categoriesCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	categories, err := db.CategoryRepository().GetAllCategories(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, category := range categories {
		state := "active"
		if !category.Active {
			state = "inactive"
		}
		fmt.Printf("%d\t%s\t%s\n", category.Id, category.Name, state)
	}
	return nil
}

func printResult(query string, result *core.QueryResult) {
	if query == "" {
		return
	}

	fmt.Printf("Found %d hits for %q\n", len(result.Ranked), query)
	for i, hit := range result.Ranked {
		fmt.Printf("%d: '%s' (%d)[%0.3f]\n", i, hit.Note.Contents, hit.Note.Id, hit.Score)
	}
	if result.Answer != "" {
		fmt.Printf("\n%s\n", result.Answer)
	}
}

func setupLogger(c *cli.Context) error {
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
