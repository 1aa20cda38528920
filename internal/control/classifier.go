// internal/control/classifier.go
package control

import (
	"errors"
	"math"
)

// Command is the single discrete drive command the vehicle accepts.
// Exactly one command is active at any instant; diagonal intents
// collapse onto whichever axis dominates.
type Command int

const (
	Center Command = iota
	Up
	Down
	Lefty
	Righty
)

func (c Command) String() string {
	switch c {
	case Center:
		return "center"
	case Up:
		return "up"
	case Down:
		return "down"
	case Lefty:
		return "lefty"
	case Righty:
		return "righty"
	default:
		return "unknown"
	}
}

// Offset is the pointer displacement from the control's resting center,
// in pixels. Y grows downward (screen coordinates).
type Offset struct {
	X float64
	Y float64
}

// Classifier maps joystick displacement to a Command.
// Geometry is immutable after New.
type Classifier struct {
	radius       float64
	deadZone     float64
	axisPriority float64
}

// New validates geometry once so Classify can stay total.
func New(radius, deadZone, axisPriority float64) (*Classifier, error) {
	if radius <= 0 {
		return nil, errors.New("classifier: radius must be > 0")
	}
	if deadZone < 0 || deadZone >= radius {
		return nil, errors.New("classifier: dead zone must satisfy 0 <= dead_zone < radius")
	}
	if axisPriority <= 0 || axisPriority > 1 {
		return nil, errors.New("classifier: axis priority must satisfy 0 < axis_priority <= 1")
	}
	return &Classifier{
		radius:       radius,
		deadZone:     deadZone,
		axisPriority: axisPriority,
	}, nil
}

// Classify returns the command for a raw displacement.
// The offset may exceed the radius; clamping the visual knob is the
// caller's concern and does not affect classification.
func (c *Classifier) Classify(off Offset) Command {
	nx := off.X / c.radius
	ny := off.Y / c.radius

	if math.Sqrt(nx*nx+ny*ny) < c.deadZone/c.radius {
		return Center
	}

	// Axis-dominant tie-break. At axis priority 0.5 the horizontal axis
	// wins unless the vertical magnitude is more than twice the
	// horizontal. The split is asymmetric on purpose.
	if math.Abs(nx) > math.Abs(ny)*c.axisPriority {
		if nx > 0 {
			return Righty
		}
		return Lefty
	}
	if ny > 0 {
		return Down
	}
	return Up
}
