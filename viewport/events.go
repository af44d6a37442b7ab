// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/events.go
// Summary: ViewChanged notification and the inbound input contract.

package viewport

// ChangeCause tells observers which operation produced a ViewChanged.
type ChangeCause int

const (
	CauseChangeView ChangeCause = iota
	CauseGesture
	CauseWheel
	CauseLayout
	CauseConfig
)

func (c ChangeCause) String() string {
	switch c {
	case CauseChangeView:
		return "change-view"
	case CauseGesture:
		return "gesture"
	case CauseWheel:
		return "wheel"
	case CauseLayout:
		return "layout"
	case CauseConfig:
		return "config"
	}
	return "unknown"
}

// ViewChangedEvent is delivered once per state-changing operation.
// The view fields are a snapshot taken after the operation completed.
type ViewChangedEvent struct {
	Cause            ChangeCause
	ZoomFactor       float64
	HorizontalOffset int
	VerticalOffset   int
}

// ViewChangedFunc observes view changes.
type ViewChangedFunc func(ViewChangedEvent)

type observer struct {
	id int
	fn ViewChangedFunc
}

// observers is an ordered subscriber list.
type observers struct {
	nextID int
	list   []observer
}

func (o *observers) add(fn ViewChangedFunc) int {
	o.nextID++
	o.list = append(o.list, observer{id: o.nextID, fn: fn})
	return o.nextID
}

func (o *observers) remove(id int) {
	for i, ob := range o.list {
		if ob.id == id {
			o.list = append(o.list[:i], o.list[i+1:]...)
			return
		}
	}
}

func (o *observers) broadcast(ev ViewChangedEvent) {
	// Copy so handlers may unsubscribe while being called.
	list := make([]observer, len(o.list))
	copy(list, o.list)
	for _, ob := range list {
		ob.fn(ev)
	}
}

// ManipulationDelta is one incremental step of a continuous gesture.
// Scale is multiplicative (1 = no change); Translation is additive.
type ManipulationDelta struct {
	Scale       float64
	Translation Vec2
}

// WheelEvent is a discrete wheel notch. Delta is signed host wheel units,
// positive meaning "forward/up".
type WheelEvent struct {
	Position Vec2
	Delta    int
}

// InputHandler receives host input. Container implements it.
type InputHandler interface {
	ManipulationStarted(position Vec2)
	ManipulationDelta(delta ManipulationDelta)
	ManipulationCompleted()
	WheelChanged(ev WheelEvent)
}

// InputSource delivers host input to subscribed handlers. Subscribe returns
// the function that releases the subscription.
type InputSource interface {
	Subscribe(h InputHandler) (unsubscribe func())
}
