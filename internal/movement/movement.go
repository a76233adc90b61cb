// Package movement advances entities through the maze one tick at a time.
//
// Motion is traced from tile center to tile center, so a mover never skips
// past a center without being offered a turn there. Turns only happen at
// centers, an entity facing a blocked tile is parked exactly on its center,
// and horizontal motion on tunnel rows wraps around the maze edges.
package movement

import (
	"math"

	"candychase/internal/config"
	"candychase/internal/entities"
	tm "candychase/internal/tilemap"
)

const eps = 1e-9

// Decider picks the heading to leave tile (tx, ty) with. It is called with
// the mover sitting exactly on the tile center.
type Decider func(tx, ty int, current entities.Direction) entities.Direction

type Options struct {
	Speed float64
	// Tolerance lets a mover that falls short of a center by at most this
	// many pixels snap onto it.
	Tolerance  float64
	AllowHouse bool
	Decide     Decider
}

type Result struct {
	// Stopped is set when the mover ended the tick parked on a center.
	Stopped bool
}

// Step moves e by opt.Speed pixels along its heading.
func Step(m *tm.TileMap, e entities.Mover, opt Options) Result {
	x, y := e.Pos()
	d := e.Heading()
	remaining := opt.Speed
	ts := float64(m.TileSize)
	res := Result{}

	maxSegments := 4 + 2*int(opt.Speed/ts)
	for i := 0; remaining > eps && i < maxSegments; i++ {
		tx, ty := m.TileAt(x, y)
		cx, cy := m.Center(tx, ty)
		ahead := aheadOf(d, x, y, cx, cy)

		var dist float64
		if ahead >= -eps {
			if ahead-remaining > opt.Tolerance {
				x, y = advance(m, x, y, d, remaining)
				remaining = 0
				break
			}
			remaining = math.Max(0, remaining-ahead)
			x, y = cx, cy
			if opt.Decide != nil {
				d = opt.Decide(tx, ty, d)
			}
			if d == entities.DirNone || blocked(m, tx, ty, d, opt.AllowHouse) {
				res.Stopped = true
				break
			}
			dist = ts
		} else {
			dist = ahead + ts
		}

		if dist-remaining > opt.Tolerance {
			x, y = advance(m, x, y, d, remaining)
			remaining = 0
			break
		}
		dx, dy := entities.DirDelta(d)
		nx, ny := m.Neighbor(tx, ty, dx, dy)
		x, y = m.Center(nx, ny)
		remaining = math.Max(0, remaining-dist)
	}

	e.SetPos(x, y)
	e.SetHeading(d)
	return res
}

// CanEnter reports whether the tile next to (tx, ty) in direction d is
// passable.
func CanEnter(m *tm.TileMap, tx, ty int, d entities.Direction, allowHouse bool) bool {
	if d == entities.DirNone {
		return false
	}
	return !blocked(m, tx, ty, d, allowHouse)
}

// AtCenter reports whether e sits within tol pixels of its tile center.
func AtCenter(m *tm.TileMap, e entities.Mover, tol float64) bool {
	x, y := e.Pos()
	cx, cy := m.Center(m.TileAt(x, y))
	return math.Abs(x-cx) <= tol && math.Abs(y-cy) <= tol
}

// Snap parks e on its tile center.
func Snap(m *tm.TileMap, e entities.Mover) {
	x, y := e.Pos()
	e.SetPos(m.Center(m.TileAt(x, y)))
}

// aheadOf is the signed distance from (x, y) to the center along d.
// Negative means the center is already behind.
func aheadOf(d entities.Direction, x, y, cx, cy float64) float64 {
	switch d {
	case entities.DirLeft:
		return x - cx
	case entities.DirRight:
		return cx - x
	case entities.DirUp:
		return y - cy
	case entities.DirDown:
		return cy - y
	default:
		return 0
	}
}

func advance(m *tm.TileMap, x, y float64, d entities.Direction, s float64) (float64, float64) {
	dx, dy := entities.DirDelta(d)
	x += float64(dx) * s
	y += float64(dy) * s
	_, ty := m.TileAt(x, y)
	if m.IsTunnelRow(ty) {
		w := m.PixelWidth()
		if x < 0 {
			x += w
		} else if x >= w {
			x -= w
		}
	}
	return x, y
}

func blocked(m *tm.TileMap, tx, ty int, d entities.Direction, allowHouse bool) bool {
	dx, dy := entities.DirDelta(d)
	nx, ny := m.Neighbor(tx, ty, dx, dy)
	return m.Blocked(nx, ny, allowHouse)
}

// PlayerSpeed is the player's per-tick speed.
func PlayerSpeed(t config.Tuning) float64 {
	return t.PlayerSpeed
}

// GhostSpeed is a ghost's per-tick speed: eaten ghosts hurry home, scared
// ones crawl, and everyone but eaten ghosts slows down inside tunnels.
func GhostSpeed(t config.Tuning, g *entities.Ghost, inTunnel bool) float64 {
	if g.Eaten {
		return t.GhostSpeed * t.EatenSpeedFactor
	}
	s := t.GhostSpeed
	if g.Scared {
		s = t.GhostScaredSpeed
	}
	if inTunnel {
		s *= t.TunnelSpeedFactor
	}
	return s
}

// QueuedTurn honors desired at the first center where it leads somewhere
// passable and otherwise keeps the current heading.
func QueuedTurn(m *tm.TileMap, desired entities.Direction, allowHouse bool) Decider {
	return func(tx, ty int, current entities.Direction) entities.Direction {
		if desired != entities.DirNone && CanEnter(m, tx, ty, desired, allowHouse) {
			return desired
		}
		return current
	}
}
