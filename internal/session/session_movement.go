package session

import (
	"candychase/internal/ai"
	"candychase/internal/entities"
	"candychase/internal/movement"
)

// resetActors puts the player on its start tile and every ghost back in
// its house slot with a staggered release timer.
func (s *Session) resetActors() {
	p := s.player
	p.X, p.Y = s.grid.Center(s.layout.PlayerStart.X, s.layout.PlayerStart.Y)
	p.CurrentDir = entities.DirNone
	p.DesiredDir = entities.DirNone

	for i, g := range s.ghosts {
		s.confine(g, s.tuning.HouseReleaseTicks*(i+1))
	}
}

func (s *Session) confine(g *entities.Ghost, ticks int) {
	g.X, g.Y = s.grid.Center(g.HomeX, g.HomeY)
	g.CurrentDir = entities.DirUp
	g.Scared = false
	g.Eaten = false
	g.InHouse = true
	g.HouseTimer = ticks
}

func (s *Session) updateHouse() {
	for i, g := range s.ghosts {
		if !g.InHouse {
			continue
		}
		g.HouseTimer--
		if g.HouseTimer > 0 {
			continue
		}
		g.InHouse = false
		g.HouseTimer = 0
		g.X, g.Y = s.grid.Center(s.layout.HouseExit.X, s.layout.HouseExit.Y)
		g.CurrentDir = entities.DirUp
		s.emit(Event{Kind: EventGhostReleased, X: s.layout.HouseExit.X, Y: s.layout.HouseExit.Y, Ghost: i})
	}
}

func (s *Session) movePlayer() {
	p := s.player
	// Reversing is allowed anywhere; every other turn waits for a center.
	if entities.IsReverse(p.CurrentDir, p.DesiredDir) {
		p.CurrentDir = p.DesiredDir
	}
	movement.Step(s.grid, p, movement.Options{
		Speed:     movement.PlayerSpeed(s.tuning),
		Tolerance: s.tuning.AlignTolerance,
		Decide:    movement.QueuedTurn(s.grid, p.DesiredDir, false),
	})
}

// world is what the ghosts see this tick. It is taken once, after the
// player moved and before any ghost does. The Chaser's tile is reported
// wherever it is, house included.
func (s *Session) world() ai.World {
	px, py := s.grid.TileAt(s.player.X, s.player.Y)
	w := ai.World{
		Width:     s.grid.Width,
		Height:    s.grid.Height,
		Player:    ai.Point{X: px, Y: py},
		PlayerDir: s.player.CurrentDir,
	}
	for _, g := range s.ghosts {
		if g.Personality == entities.Chaser {
			cx, cy := s.grid.TileAt(g.X, g.Y)
			w.Chaser = ai.Point{X: cx, Y: cy}
			w.HasChaser = true
			break
		}
	}
	return w
}

func (s *Session) moveGhosts() {
	w := s.world()
	phase := s.modes.Phase()
	for _, g := range s.ghosts {
		if g.InHouse {
			continue
		}
		tx, ty := s.grid.TileAt(g.X, g.Y)
		decide := func(cx, cy int, current entities.Direction) entities.Direction {
			if g.Eaten {
				return s.home.Direction(s.grid, cx, cy)
			}
			target := s.selector.Target(g, cx, cy, phase, w)
			return ai.ChooseDirection(s.grid, cx, cy, current, target, false)
		}
		movement.Step(s.grid, g, movement.Options{
			Speed:      movement.GhostSpeed(s.tuning, g, s.grid.IsTunnel(tx, ty)),
			Tolerance:  s.tuning.AlignTolerance,
			AllowHouse: g.Eaten,
			Decide:     decide,
		})
		if g.Eaten {
			s.checkHome(g)
		}
	}
}

// checkHome re-confines an eaten ghost once it reaches the house center.
func (s *Session) checkHome(g *entities.Ghost) {
	tx, ty := s.grid.TileAt(g.X, g.Y)
	h := s.home.Home()
	if tx != h.X || ty != h.Y || !movement.AtCenter(s.grid, g, s.tuning.AlignTolerance) {
		return
	}
	s.confine(g, s.tuning.HouseReturnTicks)
	s.emit(Event{Kind: EventGhostHome, X: tx, Y: ty, Ghost: g.Index})
}
