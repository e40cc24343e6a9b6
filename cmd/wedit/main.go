// Package main is the entry point for the wedit structured document editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wedit/internal/config"
	"github.com/dshills/wedit/internal/htmldoc"
	"github.com/dshills/wedit/internal/input/keymap"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/session"
	"github.com/dshills/wedit/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	check      bool
	path       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	logger, closeLog, err := newLogger(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log: %v\n", err)
		return 1
	}
	defer closeLog()

	tree, err := loadDocument(opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	s, err := session.New(tree, append(cfg.SessionOptions(), session.WithLogger(logger))...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", opts.path, err)
		return 1
	}

	if opts.check {
		if err := htmldoc.Render(os.Stdout, tree); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println()
		return 0
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	keys, err := keymap.NewDefaultRegistry(cfg.Keymap())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	editor, err := term.New(screen, s, cfg.DispatcherConfig(),
		term.WithTitle(opts.path),
		term.WithSaver(saverFor(opts.path)),
		term.WithKeymap(keys),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.configPath != "" {
		go watchConfig(ctx, opts, logger)
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
	}()

	editor.Run()

	if m := editor.Dispatcher().Metrics(); m != nil {
		snap := m.Snapshot()
		logger.Info("dispatched %d events, %d handled, %d errors", snap.TotalDispatches, snap.TotalHandled, snap.TotalErrors)
	}
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of discarding them")
	flag.BoolVar(&opts.check, "check", false, "Validate the document, print its markup and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wedit - structured document editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wedit [options] <document.html|document.yaml>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		for _, group := range keymap.GroupByCategory(keymap.DefaultKeymap().Bindings) {
			for _, b := range group.Bindings {
				fmt.Fprintf(os.Stderr, "  %-8s %s\n", b.Keys, b.Description)
			}
		}
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("wedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return opts, false
	}
	opts.path = flag.Arg(0)

	return opts, true
}

// newLogger builds the logger. The terminal owns stderr while the editor
// runs, so interactive sessions log to a file or nowhere.
func newLogger(cfg *config.Config, opts options) (*logging.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeFn := func() {}

	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case opts.check:
		out = os.Stderr
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Prefix: "wedit",
	})
	return logger, closeFn, nil
}

// watchConfig applies settings that can change while the editor runs. Only
// the log level qualifies; a -log-level flag pins it.
func watchConfig(ctx context.Context, opts options, logger *logging.Logger) {
	if opts.logLevel != "" {
		return
	}
	log := logger.WithComponent("config")

	w, err := config.NewWatcher(opts.configPath)
	if err != nil {
		log.Warn("live reload disabled: %v", err)
		return
	}
	defer w.Close()

	err = w.Run(ctx, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn("reload %s: %v", w.Path(), err)
			return
		}
		logger.SetLevel(cfg.LogLevel())
		log.Info("reloaded %s, level %s", w.Path(), cfg.LogLevel())
	})
	if err != nil && ctx.Err() == nil {
		log.Error("watch %s: %v", w.Path(), err)
	}
}
