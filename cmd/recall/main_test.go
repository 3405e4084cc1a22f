package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func stringFlag(t *testing.T, flags []cli.Flag, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("no string flag named %q", name)
	return nil
}

func intFlag(t *testing.T, flags []cli.Flag, name string) *cli.IntFlag {
	t.Helper()
	for _, flag := range flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("no int flag named %q", name)
	return nil
}

func TestDatabaseFlags(t *testing.T) {
	flags := databaseFlags()

	t.Run("db is required", func(t *testing.T) {
		f := stringFlag(t, flags, "db")
		assert.True(t, f.Required)
		assert.Contains(t, f.Aliases, "d")
	})

	t.Run("vocabulary is required", func(t *testing.T) {
		f := stringFlag(t, flags, "vocabulary")
		assert.True(t, f.Required)
		assert.Contains(t, f.Aliases, "v")
	})

	t.Run("model-host has default value", func(t *testing.T) {
		f := stringFlag(t, flags, "model-host")
		assert.Equal(t, "http://localhost:11434/v1", f.Value)
		assert.False(t, f.Required)
	})

	t.Run("model has default value", func(t *testing.T) {
		f := stringFlag(t, flags, "model")
		assert.Equal(t, "qwen2.5:3b", f.Value)
	})
}

func TestReembedCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "recall",
		Commands: []*cli.Command{
			{
				Name:   "reembed",
				Action: reembedCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{Name: "batch-size", Value: 100},
					&cli.IntFlag{Name: "report-interval", Value: 100},
					&cli.IntFlag{Name: "max-retries", Value: 3},
				),
			},
		},
	}

	t.Run("missing db flag fails", func(t *testing.T) {
		err := app.Run([]string{"recall", "reembed", "--vocabulary", "/tmp/vocab.vec"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("missing vocabulary flag fails", func(t *testing.T) {
		err := app.Run([]string{"recall", "reembed", "--db", "/tmp/test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vocabulary")
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		f := intFlag(t, app.Commands[0].Flags, "batch-size")
		assert.Equal(t, 100, f.Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		f := intFlag(t, app.Commands[0].Flags, "max-retries")
		assert.Equal(t, 3, f.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
