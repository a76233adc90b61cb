// Package ai decides where ghosts want to go and which way they turn to
// get there.
package ai

import (
	"math"

	"candychase/internal/config"
	"candychase/internal/entities"
	"candychase/internal/mode"
	"candychase/internal/movement"
	tm "candychase/internal/tilemap"
)

type Point struct {
	X, Y int
}

// World is the read-only view of the maze a ghost targets against. Sibling
// state a heuristic needs is copied in here rather than reached for.
type World struct {
	Width, Height int
	Player        Point
	PlayerDir     entities.Direction
	// Chaser is the Chaser-personality ghost's tile; HasChaser is false when
	// the maze has no such ghost.
	Chaser    Point
	HasChaser bool
}

// Rand is the random source scared ghosts flee with. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Selector struct {
	lookahead int
	radius    float64
	spread    int
	rng       Rand
}

func NewSelector(t config.Tuning, rng Rand) *Selector {
	return &Selector{
		lookahead: t.AmbushLookahead,
		radius:    t.OpportunistRadius,
		spread:    t.FleeSpread,
		rng:       rng,
	}
}

// Target picks the tile ghost g, standing on (gx, gy), steers toward.
// phase is the underlying Scatter/Chase phase; a scared ghost ignores it.
func (s *Selector) Target(g *entities.Ghost, gx, gy int, phase mode.Mode, w World) Point {
	if g.Scared {
		return s.flee(gx, gy)
	}
	if phase != mode.Chase {
		return ScatterCorner(g.Personality, w.Width, w.Height)
	}
	switch g.Personality {
	case entities.Ambusher:
		dx, dy := entities.DirDelta(w.PlayerDir)
		return Point{w.Player.X + dx*s.lookahead, w.Player.Y + dy*s.lookahead}
	case entities.Flanker:
		if !w.HasChaser {
			return w.Player
		}
		return Point{2*w.Player.X - w.Chaser.X, 2*w.Player.Y - w.Chaser.Y}
	case entities.Opportunist:
		if dist(Point{gx, gy}, w.Player) > s.radius {
			return w.Player
		}
		return ScatterCorner(g.Personality, w.Width, w.Height)
	default:
		return w.Player
	}
}

// flee aims at a far tile in a random diagonal.
func (s *Selector) flee(gx, gy int) Point {
	sign := func() int {
		if s.rng.Intn(2) == 0 {
			return -1
		}
		return 1
	}
	return Point{gx + sign()*s.spread, gy + sign()*s.spread}
}

// ScatterCorner is each personality's home corner.
func ScatterCorner(p entities.Personality, w, h int) Point {
	switch p {
	case entities.Ambusher:
		return Point{0, 0}
	case entities.Flanker:
		return Point{w - 1, h - 1}
	case entities.Opportunist:
		return Point{0, h - 1}
	default:
		return Point{w - 1, 0}
	}
}

// ChooseDirection picks the heading out of (tx, ty) whose next tile lies
// closest to target. Candidates are tried Up, Down, Left, Right and only a
// strictly closer one replaces the current best, so ties go to the earlier
// heading. Reversing is ruled out unless nothing else is open; if even the
// reverse is blocked the result is DirNone.
func ChooseDirection(m *tm.TileMap, tx, ty int, current entities.Direction, target Point, allowHouse bool) entities.Direction {
	best := entities.DirNone
	bestDist := math.MaxInt
	for _, d := range entities.Cardinals {
		if entities.IsReverse(current, d) {
			continue
		}
		if !movement.CanEnter(m, tx, ty, d, allowHouse) {
			continue
		}
		dx, dy := entities.DirDelta(d)
		nx, ny := m.Neighbor(tx, ty, dx, dy)
		if dd := distSq(Point{nx, ny}, target); dd < bestDist {
			best, bestDist = d, dd
		}
	}
	if best != entities.DirNone {
		return best
	}
	if rev := entities.Reverse(current); movement.CanEnter(m, tx, ty, rev, allowHouse) {
		return rev
	}
	return entities.DirNone
}

func distSq(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func dist(a, b Point) float64 {
	return math.Sqrt(float64(distSq(a, b)))
}
