// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/state.go
// Summary: Scroll/zoom state with explicit setters and a change hook.
// Usage: Owned by Container; setters recompute derived fields and report the
// changed property so the owner can update the visual and notify observers.

package viewport

// Property identifies a State field reported through the change hook.
type Property int

const (
	PropZoomFactor Property = iota
	PropZoomBounds
	PropHorizontalOffset
	PropVerticalOffset
	PropContentSize
	PropViewportSize
	PropZoomMode
	PropWheelBehaviour
)

func (p Property) String() string {
	switch p {
	case PropZoomFactor:
		return "ZoomFactor"
	case PropZoomBounds:
		return "ZoomBounds"
	case PropHorizontalOffset:
		return "HorizontalOffset"
	case PropVerticalOffset:
		return "VerticalOffset"
	case PropContentSize:
		return "ContentSize"
	case PropViewportSize:
		return "ViewportSize"
	case PropZoomMode:
		return "ZoomMode"
	case PropWheelBehaviour:
		return "WheelBehaviour"
	}
	return "Unknown"
}

// State holds zoom, offsets and bounds. It has no behaviour beyond keeping
// its derived fields (scrollable extents, clamped zoom) consistent.
// Writes that store the value already held are dropped without notification.
type State struct {
	zoomFactor    float64
	minZoomFactor float64
	maxZoomFactor float64

	horizontalOffset int
	verticalOffset   int
	scrollableWidth  int
	scrollableHeight int

	contentSize  Size
	viewportSize Size

	zoomMode       ZoomMode
	wheelBehaviour WheelBehaviour

	onChange func(Property)
}

// NewState builds a state from validated options with zoom factor 1 clamped
// into the configured bounds.
func NewState(opts Options) (*State, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		minZoomFactor:  opts.MinZoomFactor,
		maxZoomFactor:  opts.MaxZoomFactor,
		zoomMode:       opts.ZoomMode,
		wheelBehaviour: opts.WheelBehaviour,
	}
	s.zoomFactor = ClampScale(1, s.minZoomFactor, s.maxZoomFactor)
	return s, nil
}

// SetChangeHook registers the single callback invoked after every effective write.
func (s *State) SetChangeHook(fn func(Property)) { s.onChange = fn }

func (s *State) changed(p Property) {
	if s.onChange != nil {
		s.onChange(p)
	}
}

func (s *State) ZoomFactor() float64            { return s.zoomFactor }
func (s *State) MinZoomFactor() float64         { return s.minZoomFactor }
func (s *State) MaxZoomFactor() float64         { return s.maxZoomFactor }
func (s *State) HorizontalOffset() int          { return s.horizontalOffset }
func (s *State) VerticalOffset() int            { return s.verticalOffset }
func (s *State) ScrollableWidth() int           { return s.scrollableWidth }
func (s *State) ScrollableHeight() int          { return s.scrollableHeight }
func (s *State) ContentSize() Size              { return s.contentSize }
func (s *State) ViewportSize() Size             { return s.viewportSize }
func (s *State) ZoomMode() ZoomMode             { return s.zoomMode }
func (s *State) WheelBehaviour() WheelBehaviour { return s.wheelBehaviour }

// ScaledContentSize is the content size at the current zoom factor.
func (s *State) ScaledContentSize() Size { return s.contentSize.Scale(s.zoomFactor) }

// SetZoomFactor stores f clamped into [min, max] and recomputes the
// scrollable extents. It reports whether the stored value changed.
func (s *State) SetZoomFactor(f float64) bool {
	f = ClampScale(f, s.minZoomFactor, s.maxZoomFactor)
	if f == s.zoomFactor {
		return false
	}
	s.zoomFactor = f
	s.recomputeScrollable()
	s.changed(PropZoomFactor)
	return true
}

// SetZoomBounds replaces the zoom range and re-clamps the zoom factor.
func (s *State) SetZoomBounds(min, max float64) error {
	if err := validateZoomBounds(min, max); err != nil {
		return err
	}
	if min == s.minZoomFactor && max == s.maxZoomFactor {
		return nil
	}
	s.minZoomFactor, s.maxZoomFactor = min, max
	s.changed(PropZoomBounds)
	s.SetZoomFactor(s.zoomFactor)
	return nil
}

// SetHorizontalOffset stores the logical horizontal scroll position.
func (s *State) SetHorizontalOffset(x int) bool {
	if x == s.horizontalOffset {
		return false
	}
	s.horizontalOffset = x
	s.changed(PropHorizontalOffset)
	return true
}

// SetVerticalOffset stores the logical vertical scroll position.
func (s *State) SetVerticalOffset(y int) bool {
	if y == s.verticalOffset {
		return false
	}
	s.verticalOffset = y
	s.changed(PropVerticalOffset)
	return true
}

// SetContentSize records the content's natural size and recomputes the
// scrollable extents.
func (s *State) SetContentSize(size Size) error {
	if err := validateSize(size); err != nil {
		return err
	}
	if size == s.contentSize {
		return nil
	}
	s.contentSize = size
	s.recomputeScrollable()
	s.changed(PropContentSize)
	return nil
}

// SetViewportSize records the visible viewport size.
func (s *State) SetViewportSize(size Size) error {
	if err := validateSize(size); err != nil {
		return err
	}
	if size == s.viewportSize {
		return nil
	}
	s.viewportSize = size
	s.changed(PropViewportSize)
	return nil
}

func (s *State) SetZoomMode(m ZoomMode) {
	if m == s.zoomMode {
		return
	}
	s.zoomMode = m
	s.changed(PropZoomMode)
}

func (s *State) SetWheelBehaviour(b WheelBehaviour) {
	if b == s.wheelBehaviour {
		return
	}
	s.wheelBehaviour = b
	s.changed(PropWheelBehaviour)
}

func (s *State) recomputeScrollable() {
	scaled := s.ScaledContentSize()
	s.scrollableWidth = int(scaled.Width)
	s.scrollableHeight = int(scaled.Height)
}
