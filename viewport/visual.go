// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/visual.go
// Summary: Compositor transform capability consumed by the engine.

package viewport

// Visual is the compositor-side transform applied to the content surface.
// The engine reads and writes it but does not own it.
type Visual interface {
	Scale() Vec2
	SetScale(Vec2)
	Offset() Vec2
	SetOffset(Vec2)
}

// MemoryVisual is a Visual that only stores its transform.
// Headless hosts and tests use it; renderers read it back when drawing.
type MemoryVisual struct {
	scale  Vec2
	offset Vec2
}

// NewMemoryVisual returns an identity transform.
func NewMemoryVisual() *MemoryVisual {
	return &MemoryVisual{scale: Vec2{X: 1, Y: 1}}
}

func (v *MemoryVisual) Scale() Vec2      { return v.scale }
func (v *MemoryVisual) SetScale(s Vec2)  { v.scale = s }
func (v *MemoryVisual) Offset() Vec2     { return v.offset }
func (v *MemoryVisual) SetOffset(o Vec2) { v.offset = o }

// ContentToScreen maps a content-local point through the transform.
func (v *MemoryVisual) ContentToScreen(p Vec2) Vec2 {
	return Vec2{X: p.X*v.scale.X + v.offset.X, Y: p.Y*v.scale.Y + v.offset.Y}
}

// ScreenToContent is the inverse of ContentToScreen. A zero scale maps to the origin.
func (v *MemoryVisual) ScreenToContent(p Vec2) Vec2 {
	var out Vec2
	if v.scale.X != 0 {
		out.X = (p.X - v.offset.X) / v.scale.X
	}
	if v.scale.Y != 0 {
		out.Y = (p.Y - v.offset.Y) / v.scale.Y
	}
	return out
}
