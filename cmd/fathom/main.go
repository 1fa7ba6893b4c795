// Package main is the entry point for the fathom editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/fathomedit/fathom/internal/app"
	"github.com/fathomedit/fathom/internal/config"
	"github.com/fathomedit/fathom/internal/syntax"
	fterm "github.com/fathomedit/fathom/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	dir      string
	logLevel string
	files    []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: fathom needs an interactive terminal")
		return 1
	}

	cfg, cfgPath, cfgErr := config.LoadDefault()

	logger, closeLog := app.NewLogger(opts.logLevel)
	defer closeLog()
	if cfgErr != nil {
		logger.Warn("config unreadable, using defaults", "path", cfgPath, "err", cfgErr)
	}

	theme := syntax.DefaultTheme()
	screen, err := fterm.New(tcell.StyleDefault.
		Foreground(theme.Foreground).
		Background(theme.Background))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	// The screen must be restored on every exit path or the shell is
	// left in raw mode.
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
		os.Exit(1)
	}()

	application, err := app.New(screen, cfg, logger, opts.dir)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	logger.Info("starting", "version", version, "dir", opts.dir)
	if err := application.Run(opts.files); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.dir, "dir", "", "Directory to browse (defaults to the working directory)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fathom - terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fathom [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("fathom %s (%s)\n", version, commit)
		os.Exit(0)
	}

	opts.files = flag.Args()

	if opts.dir == "" {
		if len(opts.files) > 0 {
			if abs, err := filepath.Abs(opts.files[0]); err == nil {
				opts.dir = filepath.Dir(abs)
			}
		}
		if opts.dir == "" {
			opts.dir = "."
		}
	}
	return opts
}
