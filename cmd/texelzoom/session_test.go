// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelzoom/config"
	"github.com/framegrace/texelzoom/content"
	"github.com/framegrace/texelzoom/input"
	"github.com/framegrace/texelzoom/state"
	"github.com/framegrace/texelzoom/viewport"
)

func numberedText(n int) []byte {
	var b bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %03d %s\n", i, strings.Repeat("=", 100))
	}
	return b.Bytes()
}

func startSession(t *testing.T, s *session) (tcell.SimulationScreen, chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screenFactory = func() (tcell.Screen, error) { return screen, nil }
	t.Cleanup(func() { screenFactory = tcell.NewScreen })

	s.ready = make(chan struct{})
	errCh := make(chan error, 1)
	go func() { errCh <- s.run(context.Background()) }()
	select {
	case <-s.ready:
	case err := <-errCh:
		t.Fatalf("session ended early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("session did not start")
	}
	return screen, errCh
}

func waitExit(t *testing.T, errCh chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("session did not exit")
	}
}

func testOptions() viewport.Options {
	opts := viewport.DefaultOptions()
	opts.ZoomMode = viewport.ZoomEnabled
	return opts
}

func TestSessionRemembersViewOnExit(t *testing.T) {
	surface, err := content.FromText("doc.txt", numberedText(200), content.TextOptions{Plain: true})
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	store, err := state.Open(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	defer store.Close()

	s := &session{surface: surface, title: "doc", opts: testOptions(), notch: 3, doc: "/doc.txt", store: store}
	screen, errCh := startSession(t, s)

	screen.PostEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	waitExit(t, errCh)

	v, ok, err := store.Load(context.Background(), "/doc.txt")
	if err != nil || !ok {
		t.Fatalf("view not stored: ok %v err %v", ok, err)
	}
	if v.VerticalOffset <= 0 {
		t.Fatalf("VerticalOffset = %d, want > 0 after PgDn", v.VerticalOffset)
	}
	if v.ZoomFactor != viewport.WheelZoomStep {
		t.Fatalf("ZoomFactor = %v, want %v", v.ZoomFactor, viewport.WheelZoomStep)
	}
}

func TestSessionRestoresAndReplaysScript(t *testing.T) {
	surface, _ := content.FromText("doc.txt", numberedText(200), content.TextOptions{Plain: true})
	store, err := state.Open(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	if err := store.Save(ctx, "/doc.txt", state.View{ZoomFactor: 0.5, VerticalOffset: 40}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	script, _ := input.ParseScript(strings.NewReader("wheel 1 1 -10\n"))
	s := &session{surface: surface, opts: testOptions(), notch: 3, doc: "/doc.txt", store: store, script: script}
	screen, errCh := startSession(t, s)
	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone))
	waitExit(t, errCh)

	v, _, _ := store.Load(ctx, "/doc.txt")
	if v.ZoomFactor != 0.5 || v.VerticalOffset != 50 {
		t.Fatalf("stored view = %+v, want zoom 0.5 offset 50", v)
	}
}

func TestSessionAppliesConfigUpdates(t *testing.T) {
	surface, _ := content.FromText("doc.txt", numberedText(10), content.TextOptions{Plain: true})
	s := &session{surface: surface, opts: testOptions(), notch: 3}
	screen, errCh := startSession(t, s)

	cfg := config.Config{}
	cfg.Set("viewport", "wheel_behaviour", "zoom")
	cfg.Set("viewport", "wheel_notch", float64(5))
	screen.PostEvent(tcell.NewEventInterrupt(configUpdate{cfg: cfg}))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	waitExit(t, errCh)

	if s.opts.WheelBehaviour != viewport.WheelZoom {
		t.Fatalf("WheelBehaviour = %v, want zoom", s.opts.WheelBehaviour)
	}
}

func TestViewportOptionsFlagOverrides(t *testing.T) {
	g := &globalFlags{wheel: "horizontal", zoomMode: "disabled", maxZoom: 3, notch: 7}
	opts, notch, err := g.viewportOptions(config.Config{})
	if err != nil {
		t.Fatalf("viewportOptions: %v", err)
	}
	if opts.WheelBehaviour != viewport.WheelHorizontalPan || opts.ZoomMode != viewport.ZoomDisabled {
		t.Fatalf("opts = %+v", opts)
	}
	if opts.MaxZoomFactor != 3 || notch != 7 {
		t.Fatalf("max %v notch %d", opts.MaxZoomFactor, notch)
	}

	g = &globalFlags{minZoom: 2, maxZoom: 1}
	if _, _, err := g.viewportOptions(config.Config{}); err == nil {
		t.Fatalf("inverted bounds accepted")
	}
}
