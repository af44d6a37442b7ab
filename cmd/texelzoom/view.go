// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelzoom/view.go
// Summary: view and run subcommands.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelzoom/config"
	"github.com/framegrace/texelzoom/content"
	"github.com/framegrace/texelzoom/input"
	"github.com/framegrace/texelzoom/state"
)

// errNotTerminal is returned when the viewer is started without a tty.
var errNotTerminal = errors.New("texelzoom: stdin is not a terminal")

// requireTTY lets tests replace the terminal check.
var requireTTY = func() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}
	return nil
}

func newViewCommand(g *globalFlags) *cobra.Command {
	var (
		language   string
		plain      bool
		scriptPath string
		noState    bool
	)
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "View a file (or stdin) in a zoomable viewport",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			opts := textOptions(cfg)
			opts.Language = language
			opts.Plain = plain

			var (
				surface *content.Surface
				doc     string
				err     error
			)
			if len(args) == 0 || args[0] == "-" {
				data, rerr := io.ReadAll(cmd.InOrStdin())
				if rerr != nil {
					return fmt.Errorf("read stdin: %w", rerr)
				}
				surface, err = content.FromText("stdin", data, opts)
			} else {
				doc, _ = filepath.Abs(args[0])
				surface, err = content.LoadFile(args[0], opts)
			}
			if err != nil {
				return err
			}
			if noState {
				doc = ""
			}
			return runSession(cmd.Context(), g, cfg, surface, doc, scriptPath)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "force a syntax highlighting language")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")
	cmd.Flags().StringVar(&scriptPath, "script", "", "replay a gesture script after opening")
	cmd.Flags().BoolVar(&noState, "no-state", false, "do not restore or remember the view")
	return cmd
}

func newRunCommand(g *globalFlags) *cobra.Command {
	var (
		cols, rows int
		scriptPath string
	)
	cmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Capture a command's terminal output and view it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if cols <= 0 {
					cols = w
				}
				if rows <= 0 {
					rows = h
				}
			}
			surface, err := content.FromCommand(cmd.Context(), args, content.CommandOptions{
				Cols:     cols,
				Rows:     rows,
				TabWidth: cfg.GetInt("content", "tab_width", 4),
			})
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), g, cfg, surface, "", scriptPath)
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 0, "pseudo-terminal width (default: current terminal)")
	cmd.Flags().IntVar(&rows, "rows", 0, "pseudo-terminal height (default: current terminal)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "replay a gesture script after opening")
	return cmd
}

// runSession wires config, logging and the view store around one session.
func runSession(ctx context.Context, g *globalFlags, cfg config.Config, surface *content.Surface, doc, scriptPath string) error {
	if err := requireTTY(); err != nil {
		return err
	}
	opts, notch, err := g.viewportOptions(cfg)
	if err != nil {
		return err
	}
	script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	restoreLog, err := g.setupLogging()
	if err != nil {
		return err
	}
	defer restoreLog()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	s := &session{
		surface: surface,
		title:   " " + surface.Name + " ",
		opts:    opts,
		notch:   notch,
		doc:     doc,
		script:  script,
		flags:   g,
	}
	if p, err := config.Path(); err == nil {
		s.watchPath = p
	}
	if doc != "" && cfg.GetBool("state", "enabled", true) {
		if path, err := config.StatePath(cfg); err == nil {
			store, err := state.Open(path)
			if err != nil {
				log.Printf("Viewer: view store unavailable: %v", err)
			} else {
				defer store.Close()
				s.store = store
			}
		}
	}
	log.Printf("Viewer: opening %s (%dx%d cells)", surface.Name, surface.Width(), surface.Height())
	return s.run(ctx)
}

// loadConfig returns the current configuration, logging load errors.
func loadConfig() config.Config {
	if err := config.Err(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}
	return config.Current()
}

func textOptions(cfg config.Config) content.TextOptions {
	return content.TextOptions{
		Style:    cfg.GetString("content", "style", "monokai"),
		TabWidth: cfg.GetInt("content", "tab_width", 4),
	}
}

func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	script, err := input.ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}
