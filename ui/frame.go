// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/frame.go
// Summary: Border with a title and a status caption around one child.

package ui

import "github.com/gdamore/tcell/v2"

// Frame draws a border around its Rect with a title on the top edge and a
// status caption on the bottom edge. The child fills the client area.
type Frame struct {
	BaseWidget
	Style   tcell.Style
	Charset [6]rune // h, v, tl, tr, bl, br
	Title   string
	Status  string
	Child   Widget
	inv     func(Rect)
}

func NewFrame(x, y, w, h int, style tcell.Style) *Frame {
	f := &Frame{Style: style}
	f.Charset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}
	f.SetPosition(x, y)
	f.Resize(w, h)
	return f
}

func (f *Frame) ClientRect() Rect {
	r := f.Rect
	if r.W < 2 || r.H < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

func (f *Frame) SetChild(w Widget) {
	f.Child = w
	f.layoutChild()
}

// SetStatus replaces the bottom caption and invalidates the frame edge.
func (f *Frame) SetStatus(s string) {
	if s == f.Status {
		return
	}
	f.Status = s
	if f.inv != nil {
		f.inv(Rect{X: f.Rect.X, Y: f.Rect.Y + f.Rect.H - 1, W: f.Rect.W, H: 1})
	}
}

func (f *Frame) SetPosition(x, y int) {
	f.BaseWidget.SetPosition(x, y)
	f.layoutChild()
}

func (f *Frame) Resize(w, h int) {
	f.BaseWidget.Resize(w, h)
	f.layoutChild()
}

func (f *Frame) layoutChild() {
	if f.Child == nil {
		return
	}
	cr := f.ClientRect()
	f.Child.SetPosition(cr.X, cr.Y)
	f.Child.Resize(cr.W, cr.H)
}

func (f *Frame) SetInvalidator(fn func(Rect)) { f.inv = fn }

func (f *Frame) VisitChildren(fn func(Widget)) {
	if f.Child != nil {
		fn(f.Child)
	}
}

func (f *Frame) Draw(p *Painter) {
	p.DrawBorder(f.Rect, f.Style, f.Charset)
	edge := p.WithClip(Rect{X: f.Rect.X + 1, Y: f.Rect.Y, W: f.Rect.W - 2, H: f.Rect.H})
	if f.Title != "" {
		edge.DrawText(f.Rect.X+2, f.Rect.Y, " "+f.Title+" ", f.Style)
	}
	if f.Status != "" {
		s := " " + f.Status + " "
		edge.DrawText(f.Rect.X+f.Rect.W-2-len([]rune(s)), f.Rect.Y+f.Rect.H-1, s, f.Style)
	}
	if f.Child != nil {
		f.Child.Draw(p.WithClip(f.ClientRect()))
	}
}
