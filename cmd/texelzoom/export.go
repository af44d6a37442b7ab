// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelzoom/export.go
// Summary: export subcommand rendering a view to PNG without a terminal.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelzoom/config"
	"github.com/framegrace/texelzoom/content"
	"github.com/framegrace/texelzoom/render"
	"github.com/framegrace/texelzoom/scroll"
	"github.com/framegrace/texelzoom/state"
	"github.com/framegrace/texelzoom/viewport"
)

type exportFlags struct {
	out        string
	cols, rows int
	zoom       float64
	hOffset    int
	vOffset    int
	scriptPath string
	restore    bool
	minimap    bool
	cellWidth  float64
	cellHeight float64
}

func newExportCommand(g *globalFlags) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export file",
		Short: "Render a view of a file to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), g, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.out, "out", "o", "view.png", "output PNG path")
	fl.IntVar(&f.cols, "cols", 80, "viewport width in cells")
	fl.IntVar(&f.rows, "rows", 24, "viewport height in cells")
	fl.Float64Var(&f.zoom, "zoom", 0, "zoom factor (default: keep)")
	fl.IntVar(&f.hOffset, "h-offset", 0, "horizontal offset")
	fl.IntVar(&f.vOffset, "v-offset", 0, "vertical offset")
	fl.StringVar(&f.scriptPath, "script", "", "gesture script applied before rendering")
	fl.BoolVar(&f.restore, "restore", false, "start from the remembered view of the file")
	fl.BoolVar(&f.minimap, "minimap", false, "draw cells as bars instead of glyphs")
	fl.Float64Var(&f.cellWidth, "cell-width", 8, "pixels per cell column at zoom 1")
	fl.Float64Var(&f.cellHeight, "cell-height", 16, "pixels per cell row at zoom 1")
	return cmd
}

func runExport(ctx context.Context, g *globalFlags, f *exportFlags, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadConfig()
	opts, _, err := g.viewportOptions(cfg)
	if err != nil {
		return err
	}
	surface, err := content.LoadFile(path, textOptions(cfg))
	if err != nil {
		return err
	}
	script, err := loadScript(f.scriptPath)
	if err != nil {
		return err
	}

	c, err := viewport.NewContainer(opts)
	if err != nil {
		return err
	}
	vp := viewport.Size{Width: float64(f.cols), Height: float64(f.rows)}
	c.SetContent(surface)
	c.Measure(vp)
	if err := c.Arrange(vp); err != nil {
		return err
	}
	visual := viewport.NewMemoryVisual()
	if script != nil {
		c.Attach(visual, script)
	} else {
		c.Attach(visual)
	}
	defer c.Detach()

	if f.restore {
		if err := restoreForExport(ctx, cfg, c, path); err != nil {
			return err
		}
	}
	vc := viewport.ViewChange{}
	if f.zoom > 0 {
		vc.ZoomFactor = viewport.Ptr(f.zoom)
	}
	if f.hOffset != 0 {
		vc.HorizontalOffset = viewport.Ptr(float64(f.hOffset))
	}
	if f.vOffset != 0 {
		vc.VerticalOffset = viewport.Ptr(float64(f.vOffset))
	}
	c.ChangeView(vc)
	if script != nil {
		script.Play()
	}

	ropts := render.DefaultOptions()
	ropts.Glyphs = !f.minimap
	ropts.CellWidth, ropts.CellHeight = f.cellWidth, f.cellHeight
	if err := render.ExportPNG(f.out, surface, visual, vp, ropts); err != nil {
		return err
	}
	fmt.Printf("%s: zoom %s, offset %d,%d\n", f.out, scroll.ZoomLabel(c.ZoomFactor()), c.HorizontalOffset(), c.VerticalOffset())
	return nil
}

func restoreForExport(ctx context.Context, cfg config.Config, c *viewport.Container, path string) error {
	dbPath, err := config.StatePath(cfg)
	if err != nil {
		return err
	}
	store, err := state.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	doc, _ := filepath.Abs(path)
	v, ok, err := store.Load(ctx, doc)
	if err != nil {
		return err
	}
	if ok {
		v.Apply(c)
	}
	return nil
}
