// Bossrush is the hub for a roguelite boss-rush: start runs, fight bosses,
// spend souls on gear, and unlock talents between runs.
// Usage: bossrush [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--content <dir>]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nathoo/bossrush/cli"
	"github.com/nathoo/bossrush/config"
	"github.com/nathoo/bossrush/engine"
	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/progress"
	"github.com/nathoo/bossrush/engine/storage"
	"github.com/nathoo/bossrush/loader"
	"github.com/nathoo/bossrush/logging"
	"github.com/nathoo/bossrush/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: bossrush [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--content <dir>]\n"

func main() {
	plain := false
	trace := false
	var scriptFile, configFile, contentDir string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("bossrush %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config", "--content":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			i++
			switch args[i-1] {
			case "--script":
				scriptFile = args[i]
			case "--config":
				configFile = args[i]
			default:
				contentDir = args[i]
			}
		case "-h", "--help":
			fmt.Print(usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n%s", args[i], usage)
			os.Exit(1)
		}
	}

	if configFile == "" {
		configFile = config.DefaultPath()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}

	log, closeLog, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	defs, err := loadContent(cfg.ContentDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	store := progress.New(storage.NewFile(cfg.SaveDir),
		progress.WithTalents(defs.Talents),
		progress.WithLogger(log))
	eng := engine.New(defs, store,
		engine.WithLogger(log),
		engine.WithSeed(time.Now().UnixNano()))
	log.Info("hub ready", "version", version, "save_dir", cfg.SaveDir, "content", contentName(cfg.ContentDir))

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLog builds the process logger. With no log file configured,
// logging is discarded so it never draws over the hub.
func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = f
	return logging.New(w, cfg.LogLevel, cfg.LogFormat), func() { f.Close() }, nil
}

func loadContent(dir string, log *slog.Logger) (*catalog.Defs, error) {
	if dir == "" {
		return loader.LoadDefault(loader.WithLogger(log))
	}
	return loader.Load(dir, loader.WithLogger(log))
}

func contentName(dir string) string {
	if dir == "" {
		return "built-in"
	}
	return dir
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
