package ui

import (
	"image"
	"math"
	"strconv"
	"strings"

	"gridwalk/internal/core"
)

// controlState tracks one HUD control between frames.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controlSet is the input side of the HUD: current values, the keyboard
// selection and the setters that apply changes. It does not draw.
type controlSet struct {
	states   []controlState
	selected int

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

func newControlSet(sim core.Sim) controlSet {
	var c controlSet
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			c.states = append(c.states, controlState{control: ctrl, value: "--"})
		}
	}
	c.intSetter, _ = sim.(core.IntParameterSetter)
	c.floatSetter, _ = sim.(core.FloatParameterSetter)
	return c
}

// refresh reloads every control value from snap.
func (c *controlSet) refresh(snap core.ParameterSnapshot) {
	for i := range c.states {
		s := &c.states[i]
		s.hasValue = false
		s.value = "--"
		param, ok := snap.Lookup(s.control.Key)
		if !ok {
			continue
		}
		switch s.control.Type {
		case core.ParamTypeInt:
			if v, err := strconv.Atoi(param.Value); err == nil {
				s.intValue, s.floatValue = v, float64(v)
				s.value = strconv.Itoa(v)
				s.hasValue = true
			}
		case core.ParamTypeFloat:
			if v, err := strconv.ParseFloat(param.Value, 64); err == nil {
				s.floatValue = v
				s.value = formatFloat(s.control, v)
				s.hasValue = true
			}
		}
	}
}

// move shifts the keyboard selection by delta, wrapping around.
func (c *controlSet) move(delta int) {
	n := len(c.states)
	if n == 0 {
		return
	}
	c.selected = ((c.selected+delta)%n + n) % n
}

// next returns the value one step from control i in direction dir, or false
// when the control cannot move that way.
func (c *controlSet) next(i, dir int) (float64, bool) {
	if i < 0 || i >= len(c.states) || dir == 0 {
		return 0, false
	}
	s := &c.states[i]
	if !s.hasValue {
		return 0, false
	}
	ctrl := s.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return 0, false
		}
		step := max(int(math.Round(ctrl.Step)), 1)
		target := s.intValue + dir*step
		if ctrl.HasMin {
			target = max(target, int(math.Round(ctrl.Min)))
		}
		if ctrl.HasMax {
			target = min(target, int(math.Round(ctrl.Max)))
		}
		return float64(target), target != s.intValue
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return 0, false
		}
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target := s.floatValue + float64(dir)*step
		if ctrl.HasMin && target < ctrl.Min {
			target = ctrl.Min
		}
		if ctrl.HasMax && target > ctrl.Max {
			target = ctrl.Max
		}
		return target, math.Abs(target-s.floatValue) >= 1e-9
	}
	return 0, false
}

// adjust steps control i and pushes the value to the sim. It reports whether
// the sim accepted the change.
func (c *controlSet) adjust(i, dir int) bool {
	target, ok := c.next(i, dir)
	if !ok {
		return false
	}
	s := &c.states[i]
	switch s.control.Type {
	case core.ParamTypeInt:
		v := int(target)
		if !c.intSetter.SetIntParameter(s.control.Key, v) {
			return false
		}
		s.intValue, s.floatValue = v, target
		s.value = strconv.Itoa(v)
	case core.ParamTypeFloat:
		if !c.floatSetter.SetFloatParameter(s.control.Key, target) {
			return false
		}
		s.floatValue = target
		s.value = formatFloat(s.control, target)
	}
	return true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func panelTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}
