package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/recall"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/indexing"
)

// Sample notes grouped by category. Category names double as routing
// targets, so they stay short and concrete.
var notes = map[string][]string{
	"Work": {
		"Standup moved to 9:30 starting next week.",
		"The staging deploy needs the new feature flag before Friday.",
		"Ask about headcount for the platform team in the next 1:1.",
		"Quarterly review slides are due by end of month.",
		"The retry queue backs up whenever the upstream API rate limits us.",
		"Pair with the new hire on the billing service walkthrough.",
		"Renew the conference room booking for sprint planning.",
		"The incident postmortem flagged missing alerts on disk usage.",
	},
	"Recipes": {
		"Brown the onions slowly before adding the garlic.",
		"The sourdough starter needs feeding every twelve hours in summer.",
		"Use cold butter for flakier pie crust.",
		"Two cups of arborio rice feeds four for risotto night.",
		"Toast the cumin seeds before grinding them.",
		"Grandma's soup secret is a parmesan rind in the broth.",
		"Rest the steak at least five minutes before slicing.",
	},
	"Travel": {
		"The night train to the coast leaves at 22:40 on weekdays.",
		"Book the mountain cabin before the holiday rush starts.",
		"The museum is free on the first Sunday of every month.",
		"Pack the rain shell even when the forecast looks clear.",
		"The ferry crossing takes about ninety minutes in good weather.",
		"Street food near the harbor is better than anything downtown.",
	},
	"Ideas": {
		"A kitchen timer that listens for the word 'done'.",
		"Weekly letters to my future self, reviewed once a year.",
		"A reading list sorted by how long each book has waited.",
		"Garden sensors that text me when the soil dries out.",
		"A tiny app that turns voice memos into grocery lists.",
	},
	"": {
		"Call the dentist about the crown on Tuesday.",
		"The library book is due back on the 14th.",
		"Winter tires go on before the first frost.",
		"The blue bin goes out on even weeks.",
	},
}

var (
	seedFileName = flag.String("src", "", "file of seed notes, one per line")
	dbPath       = flag.String("db", "./notes_db", "path to the note database")
	vocabPath    = flag.String("vocabulary", "./vocab.vec", "path to the word-vector file")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// indexBatched reads from a source iterator and indexes notes in batches.
func indexBatched(ctx context.Context, pipeline *indexing.Pipeline, source iter.Seq[string], categoryId core.ID, batchSize int) error {
	batch := make([]*core.Note, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := pipeline.Index(ctx, batch...); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for line := range source {
		batch = append(batch, &core.Note{Contents: line, CategoryId: categoryId})
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func main() {
	db, err := recall.NewDatabase(*dbPath, *vocabPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIndexingPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	if *seedFileName != "" {
		source, err := linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		if err := indexBatched(ctx, pipeline, source, 0, 5); err != nil {
			panic(err)
		}
		return
	}

	for categoryName, contents := range notes {
		var categoryId core.ID
		if categoryName != "" {
			category, err := db.CategoryRepository().GetOrCreateCategory(ctx, categoryName)
			if err != nil {
				panic(err)
			}
			categoryId = category.Id
		}

		source := func(yield func(string) bool) {
			for _, line := range contents {
				if !yield(line) {
					return
				}
			}
		}

		if err := indexBatched(ctx, pipeline, source, categoryId, 5); err != nil {
			panic(err)
		}
	}
}
