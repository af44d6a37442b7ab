// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelzoom/session.go
// Summary: Interactive tcell loop hosting one surface in a ZoomPane.

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelzoom/config"
	"github.com/framegrace/texelzoom/content"
	"github.com/framegrace/texelzoom/input"
	"github.com/framegrace/texelzoom/scroll"
	"github.com/framegrace/texelzoom/state"
	"github.com/framegrace/texelzoom/ui"
	"github.com/framegrace/texelzoom/viewport"
)

var screenFactory = tcell.NewScreen

// configUpdate is posted to the event loop when texelzoom.json changes.
type configUpdate struct{ cfg config.Config }

// session is one interactive viewing of a surface.
type session struct {
	surface *content.Surface
	title   string
	opts    viewport.Options
	notch   int

	// doc keys the remembered view; empty or a nil store disables it.
	doc   string
	store *state.Store

	// script, when set, is replayed once after the view is restored.
	script *input.Script

	// watchPath enables live reload of the viewport section.
	watchPath string
	flags     *globalFlags

	// ready is closed once the first frame is shown.
	ready chan struct{}
}

func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()

	w, h := screen.Size()
	mgr := ui.NewUIManager(tcell.StyleDefault)
	mgr.Resize(w, h)

	frame := ui.NewFrame(0, 0, w, h, tcell.StyleDefault)
	frame.Title = s.title
	pane, err := scroll.NewZoomPane(0, 0, 0, 0, tcell.StyleDefault, s.opts, s.notch)
	if err != nil {
		return err
	}
	defer pane.Close()
	frame.SetChild(pane)
	mgr.AddWidget(frame)
	mgr.Focus(pane)

	var extra []viewport.InputSource
	if s.script != nil {
		extra = append(extra, s.script)
	}
	pane.SetContent(s.surface, extra...)
	s.restore(ctx, pane)

	updateStatus := func() {
		frame.SetStatus(statusLine(s.surface, pane))
	}
	pane.OnViewChanged(func(viewport.ViewChangedEvent) { updateStatus() })
	updateStatus()

	if s.script != nil {
		s.script.Play()
	}

	refreshCh := make(chan bool, 1)
	mgr.SetRefreshNotifier(refreshCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-refreshCh:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	if s.watchPath != "" {
		go func() {
			err := config.Watch(ctx, s.watchPath, func(cfg config.Config) {
				screen.PostEvent(tcell.NewEventInterrupt(configUpdate{cfg: cfg}))
			})
			if err != nil {
				log.Printf("Viewer: config watch stopped: %v", err)
			}
		}()
	}

	mgr.Show(screen)
	defer s.remember(pane)
	if s.ready != nil {
		close(s.ready)
	}

	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if upd, ok := tev.Data().(configUpdate); ok {
				s.reconfigure(pane, upd.cfg)
			}
			mgr.Show(screen)
		case *tcell.EventResize:
			w, h := tev.Size()
			mgr.Resize(w, h)
			frame.Resize(w, h)
			screen.Sync()
			mgr.Show(screen)
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC || tev.Key() == tcell.KeyEscape ||
				(tev.Key() == tcell.KeyRune && tev.Rune() == 'q') {
				return nil
			}
			mgr.HandleKey(tev)
			mgr.Show(screen)
		case *tcell.EventMouse:
			if mgr.HandleMouse(tev) {
				mgr.Show(screen)
			}
		}
	}
}

// restore applies the remembered view of the document, if any.
func (s *session) restore(ctx context.Context, pane *scroll.ZoomPane) {
	if s.store == nil || s.doc == "" {
		return
	}
	v, ok, err := s.store.Load(ctx, s.doc)
	if err != nil {
		log.Printf("Viewer: restore %s: %v", s.doc, err)
		return
	}
	if ok {
		v.Apply(pane.Container())
		log.Printf("Viewer: restored %s at zoom %.3f (%d,%d)", s.doc, v.ZoomFactor, v.HorizontalOffset, v.VerticalOffset)
	}
}

// remember stores the final view. It runs after the loop has exited, so it
// uses a fresh context.
func (s *session) remember(pane *scroll.ZoomPane) {
	if s.store == nil || s.doc == "" {
		return
	}
	if err := s.store.Save(context.Background(), s.doc, state.Capture(pane.Container())); err != nil {
		log.Printf("Viewer: remember %s: %v", s.doc, err)
	}
}

func (s *session) reconfigure(pane *scroll.ZoomPane, cfg config.Config) {
	flags := s.flags
	if flags == nil {
		flags = &globalFlags{}
	}
	opts, notch, err := flags.viewportOptions(cfg)
	if err != nil {
		log.Printf("Viewer: ignoring config update: %v", err)
		return
	}
	if err := pane.Configure(opts); err != nil {
		log.Printf("Viewer: ignoring config update: %v", err)
		return
	}
	pane.Router().Notch = notch
	s.opts = opts
	log.Printf("Viewer: applied config (wheel %s, zoom %s, %.2f..%.2f)",
		opts.WheelBehaviour, opts.ZoomMode, opts.MinZoomFactor, opts.MaxZoomFactor)
}

func statusLine(src *content.Surface, pane *scroll.ZoomPane) string {
	lang := src.Language
	if lang == "" {
		lang = "text"
	}
	return fmt.Sprintf(" %s  %s  %d,%d ", lang, scroll.ZoomLabel(pane.ZoomFactor()),
		pane.HorizontalOffset(), pane.VerticalOffset())
}
