// Animtrace replays a YAML input scenario through the animation
// controller and prints the blended channel weights for each frame.
// A scenario without a names map uses the content catalog's Clips hints.
// Usage: animtrace [--plain] [--config <file>] [--content <dir>] <scenario.yaml>
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/bossrush/config"
	"github.com/nathoo/bossrush/engine/anim"
	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/loader"
)

func main() {
	plain := false
	var configFile, contentDir, path string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--plain":
			plain = true
		case "--config", "--content":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			i++
			if args[i-1] == "--config" {
				configFile = args[i]
			} else {
				contentDir = args[i]
			}
		default:
			if path != "" {
				fmt.Fprintf(os.Stderr, "unexpected argument %q\n", args[i])
				os.Exit(1)
			}
			path = args[i]
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: animtrace [--plain] [--config <file>] [--content <dir>] <scenario.yaml>")
		os.Exit(1)
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

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sc, err := parseScenario(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(sc.Names) == 0 {
		defs, err := loadContent(cfg.ContentDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
			os.Exit(1)
		}
		sc.Names = defs.Clips
	}

	tun := anim.Tuning{CrossFade: cfg.Animation.CrossFade, DampingRate: cfg.Animation.DampingRate}
	printRows(os.Stdout, runScenario(sc, tun), plain || !isTerminal())
}

func loadContent(dir string) (*catalog.Defs, error) {
	if dir == "" {
		return loader.LoadDefault()
	}
	return loader.Load(dir)
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
