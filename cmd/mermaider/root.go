package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	appctx "github.com/bassista/mermaider/internal/app"
	"github.com/bassista/mermaider/internal/config"
	"github.com/bassista/mermaider/internal/logger"
	"github.com/bassista/mermaider/internal/storage"
	"github.com/spf13/cobra"
)

// annotationNoStore marks commands that work without opening the store.
const annotationNoStore = "no-store"

var errUsage = errors.New("usage error")

// cli holds state shared by all subcommands of one invocation.
type cli struct {
	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serializes writes to out (watch prints from the watcher goroutine)

	configPath string
	backend    string

	app   *appctx.App
	flush func()
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "mermaider",
		Short: "Keep Mermaid and PlantUML snippets in a local store",
		Long: `mermaider saves diagram source snippets to a local key-value store.

Each saved snippet gets an id, a detected type (mermaid or plantuml) and a
title derived from the type and creation time.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "directory containing config.yaml (default $MERMAIDER_CONFIG_PATH or ./config)")
	root.PersistentFlags().StringVar(&c.backend, "backend", "", "storage backend: file, sqlite, memory or none (overrides config)")

	root.AddCommand(
		newSaveCmd(c),
		newListCmd(c),
		newGetCmd(c),
		newDeleteCmd(c),
		newClearCmd(c),
		newDetectCmd(c),
		newWatchCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Storage.Backend = strings.ToLower(c.backend)
	}

	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s', using 'info': %v", cfg.Misc.LogLevel, err)
	}
	c.flush = logger.EnableHoneybadger(cfg.Misc.HoneybadgerAPIKey, cfg.Misc.Env)

	store, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return fmt.Errorf("cannot init storage: %w", err)
	}

	a, err := appctx.New(cfg, store)
	if err != nil {
		if closer, ok := store.(io.Closer); ok {
			closer.Close()
		}
		return fmt.Errorf("cannot init app: %w", err)
	}
	c.app = a
	logger.WithComponent("main").Debugf("using %s storage backend", cfg.Storage.Backend)
	return nil
}

func (c *cli) teardown() {
	if c.app != nil {
		c.app.Shutdown()
		c.app = nil
	}
	if c.flush != nil {
		c.flush()
		c.flush = nil
	}
}

// readInput returns the contents of the file named by args[0], or of stdin
// when no file (or "-") is given.
func (c *cli) readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func (c *cli) printf(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}
