// Package mode runs the ghosts' shared Scatter/Chase schedule and the
// Frightened overlay that a power pellet lays over it.
package mode

import (
	"fmt"

	"candychase/internal/config"
)

type Mode int

const (
	Scatter Mode = iota
	Chase
	Frightened
)

func (m Mode) String() string {
	switch m {
	case Scatter:
		return "scatter"
	case Chase:
		return "chase"
	case Frightened:
		return "frightened"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	for v := Scatter; v <= Frightened; v++ {
		if v.String() == string(b) {
			*m = v
			return nil
		}
	}
	return fmt.Errorf("mode: unknown mode %q", b)
}

// Events reports what changed during one Tick.
type Events struct {
	PhaseChanged    bool
	FrightenedEnded bool
}

// Controller alternates Scatter and Chase on a tick countdown. Frightened
// is an overlay with its own countdown; it never touches the phase or the
// phase countdown, so when it ends the schedule is exactly where it would
// have been without it.
type Controller struct {
	scatterTicks int
	chaseTicks   int
	frightTicks  int

	phase      Mode
	phaseLeft  int
	frightLeft int
}

func New(t config.Tuning) *Controller {
	c := &Controller{
		scatterTicks: t.ScatterTicks,
		chaseTicks:   t.ChaseTicks,
		frightTicks:  t.FrightenedTicks,
	}
	c.Reset()
	return c
}

// Reset returns to the start of the schedule: Scatter, full countdown,
// no overlay.
func (c *Controller) Reset() {
	c.phase = Scatter
	c.phaseLeft = c.scatterTicks
	c.frightLeft = 0
}

func (c *Controller) Tick() Events {
	var ev Events
	if c.frightLeft > 0 {
		c.frightLeft--
		if c.frightLeft == 0 {
			ev.FrightenedEnded = true
		}
	}
	c.phaseLeft--
	if c.phaseLeft <= 0 {
		if c.phase == Scatter {
			c.phase = Chase
			c.phaseLeft = c.chaseTicks
		} else {
			c.phase = Scatter
			c.phaseLeft = c.scatterTicks
		}
		ev.PhaseChanged = true
	}
	return ev
}

// Frighten starts the overlay, or restarts its countdown if it is running.
func (c *Controller) Frighten() {
	c.frightLeft = c.frightTicks
}

// ClearFrightened drops the overlay without reporting an end event.
func (c *Controller) ClearFrightened() {
	c.frightLeft = 0
}

// Phase is the underlying Scatter or Chase phase.
func (c *Controller) Phase() Mode { return c.phase }

func (c *Controller) PhaseRemaining() int { return c.phaseLeft }

func (c *Controller) Frightened() bool { return c.frightLeft > 0 }

func (c *Controller) FrightenedRemaining() int { return c.frightLeft }

// Current is Frightened while the overlay runs and the phase otherwise.
func (c *Controller) Current() Mode {
	if c.Frightened() {
		return Frightened
	}
	return c.phase
}
