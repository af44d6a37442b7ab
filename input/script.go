// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/script.go
// Summary: Textual gesture scripts replayed as viewport input.

package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/framegrace/texelzoom/viewport"
)

// StepKind identifies a scripted input event.
type StepKind int

const (
	StepStart StepKind = iota
	StepDelta
	StepEnd
	StepWheel
)

func (k StepKind) String() string {
	switch k {
	case StepStart:
		return "start"
	case StepDelta:
		return "delta"
	case StepEnd:
		return "end"
	case StepWheel:
		return "wheel"
	}
	return "unknown"
}

// Step is one scripted event. Position is used by start and wheel, Scale
// and Translation by delta, Delta by wheel.
type Step struct {
	Kind        StepKind
	Position    viewport.Vec2
	Scale       float64
	Translation viewport.Vec2
	Delta       int
}

// Script is an ordered list of input steps. It is an input source: Play
// delivers the steps to every subscriber.
//
// The text form has one step per line; blank lines and '#' comments are
// ignored:
//
//	start X Y
//	delta SCALE DX DY
//	end
//	wheel X Y DELTA
type Script struct {
	subscribers
	Steps []Step
}

// ParseScript reads the text form.
func ParseScript(r io.Reader) (*Script, error) {
	s := &Script{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s.Steps = append(s.Steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseStep(fields []string) (Step, error) {
	verb, args := strings.ToLower(fields[0]), fields[1:]
	nums := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Step{}, fmt.Errorf("%s: bad number %q", verb, a)
		}
		nums[i] = f
	}
	want := map[string]int{"start": 2, "delta": 3, "end": 0, "wheel": 3}
	n, ok := want[verb]
	if !ok {
		return Step{}, fmt.Errorf("unknown step %q", verb)
	}
	if len(nums) != n {
		return Step{}, fmt.Errorf("%s takes %d arguments, got %d", verb, n, len(nums))
	}

	switch verb {
	case "start":
		return Step{Kind: StepStart, Position: viewport.Vec2{X: nums[0], Y: nums[1]}}, nil
	case "delta":
		return Step{Kind: StepDelta, Scale: nums[0], Translation: viewport.Vec2{X: nums[1], Y: nums[2]}}, nil
	case "wheel":
		return Step{Kind: StepWheel, Position: viewport.Vec2{X: nums[0], Y: nums[1]}, Delta: int(nums[2])}, nil
	}
	return Step{Kind: StepEnd}, nil
}

// Play delivers every step to the subscribers, in order.
func (s *Script) Play() {
	for _, step := range s.Steps {
		s.each(func(h viewport.InputHandler) { deliver(h, step) })
	}
}

func deliver(h viewport.InputHandler, step Step) {
	switch step.Kind {
	case StepStart:
		h.ManipulationStarted(step.Position)
	case StepDelta:
		h.ManipulationDelta(viewport.ManipulationDelta{Scale: step.Scale, Translation: step.Translation})
	case StepEnd:
		h.ManipulationCompleted()
	case StepWheel:
		h.WheelChanged(viewport.WheelEvent{Position: step.Position, Delta: step.Delta})
	}
}

// String renders the script in its text form.
func (s *Script) String() string {
	var b strings.Builder
	for _, st := range s.Steps {
		switch st.Kind {
		case StepStart:
			fmt.Fprintf(&b, "start %g %g\n", st.Position.X, st.Position.Y)
		case StepDelta:
			fmt.Fprintf(&b, "delta %g %g %g\n", st.Scale, st.Translation.X, st.Translation.Y)
		case StepEnd:
			b.WriteString("end\n")
		case StepWheel:
			fmt.Fprintf(&b, "wheel %g %g %d\n", st.Position.X, st.Position.Y, st.Delta)
		}
	}
	return b.String()
}
