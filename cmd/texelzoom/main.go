// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelzoom/main.go
// Summary: Entry point for the texelzoom pan/zoom viewer.
// Usage: texelzoom view FILE | texelzoom run -- CMD ARGS | texelzoom export FILE --out view.png

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelzoom/config"
	"github.com/framegrace/texelzoom/viewport"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// globalFlags override the viewport section of texelzoom.json.
type globalFlags struct {
	wheel    string
	zoomMode string
	minZoom  float64
	maxZoom  float64
	notch    int
	logFile  string
	verbose  bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "texelzoom",
		Short: "Pan and zoom around text in the terminal",
		Long: `texelzoom hosts a file or the output of a command inside a zoomable
viewport. Drag to pan, Ctrl+wheel to pinch, the wheel to scroll or zoom.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.wheel, "wheel", "", "wheel behaviour: vertical_pan, horizontal_pan or zoom")
	pf.StringVar(&g.zoomMode, "zoom-mode", "", "zoom mode: enabled or disabled")
	pf.Float64Var(&g.minZoom, "min-zoom", 0, "minimum zoom factor")
	pf.Float64Var(&g.maxZoom, "max-zoom", 0, "maximum zoom factor")
	pf.IntVar(&g.notch, "notch", 0, "wheel delta per wheel step")
	pf.StringVar(&g.logFile, "log-file", "", "log destination (default: texelzoom.log in the config directory)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log to stderr when it is redirected")

	root.AddCommand(newViewCommand(g))
	root.AddCommand(newRunCommand(g))
	root.AddCommand(newExportCommand(g))
	root.AddCommand(newConfigCommand())
	return root
}

// viewportOptions resolves options from cfg with the command-line overrides applied.
func (g *globalFlags) viewportOptions(cfg config.Config) (viewport.Options, int, error) {
	opts, err := config.ViewportOptions(cfg)
	if err != nil {
		return opts, 0, err
	}
	if g.wheel != "" {
		if opts.WheelBehaviour, err = viewport.ParseWheelBehaviour(g.wheel); err != nil {
			return opts, 0, err
		}
	}
	if g.zoomMode != "" {
		if opts.ZoomMode, err = viewport.ParseZoomMode(g.zoomMode); err != nil {
			return opts, 0, err
		}
	}
	if g.minZoom > 0 {
		opts.MinZoomFactor = g.minZoom
	}
	if g.maxZoom > 0 {
		opts.MaxZoomFactor = g.maxZoom
	}
	if err := opts.Validate(); err != nil {
		return opts, 0, err
	}
	notch := config.WheelNotch(cfg)
	if g.notch > 0 {
		notch = g.notch
	}
	return opts, notch, nil
}

// setupLogging points the standard logger at the log file while the
// terminal is owned by the viewer. The returned func restores stderr.
func (g *globalFlags) setupLogging() (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if g.verbose && !term.IsTerminal(int(os.Stderr.Fd())) {
		log.SetOutput(os.Stderr)
		return func() {}, nil
	}
	path := g.logFile
	if path == "" {
		p, err := config.LogPath()
		if err != nil {
			log.SetOutput(io.Discard)
			return func() { log.SetOutput(os.Stderr) }, nil
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
