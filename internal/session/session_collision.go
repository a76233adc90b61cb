package session

import (
	"math"

	"candychase/internal/entities"
	tm "candychase/internal/tilemap"
)

func (s *Session) consumeAtPlayer() {
	tx, ty := s.grid.TileAt(s.player.X, s.player.Y)
	switch s.grid.ConsumeAt(tx, ty) {
	case tm.ConsumedDot:
		s.score += s.tuning.DotScore
		s.emit(Event{Kind: EventDot, X: tx, Y: ty, Ghost: -1, Points: s.tuning.DotScore})
	case tm.ConsumedPellet:
		s.score += s.tuning.PelletScore
		s.emit(Event{Kind: EventPellet, X: tx, Y: ty, Ghost: -1, Points: s.tuning.PelletScore})
		s.frighten()
	default:
		return
	}
	if s.grid.Remaining() == 0 {
		s.levelCleared()
	}
}

// frighten starts or restarts the frightened window. Ghosts that become
// scared turn around on the spot.
func (s *Session) frighten() {
	s.modes.Frighten()
	for _, g := range s.ghosts {
		if !g.Active() {
			continue
		}
		if !g.Scared {
			g.CurrentDir = entities.Reverse(g.CurrentDir)
		}
		g.Scared = true
	}
}

func (s *Session) resolveCollisions() {
	radius := s.tuning.CollisionRadius * float64(s.tuning.TileSize)
	for _, g := range s.ghosts {
		if !g.Active() {
			continue
		}
		if s.distance(g.X, g.Y) >= radius {
			continue
		}
		tx, ty := s.grid.TileAt(g.X, g.Y)
		if g.Scared {
			g.Scared = false
			g.Eaten = true
			s.score += s.tuning.GhostScore
			s.emit(Event{Kind: EventGhostEaten, X: tx, Y: ty, Ghost: g.Index, Points: s.tuning.GhostScore})
			continue
		}
		s.loseLife(tx, ty, g.Index)
		return
	}
}

// distance measures from the player to (x, y). On tunnel rows the
// horizontal gap is taken the short way round the seam.
func (s *Session) distance(x, y float64) float64 {
	dx, dy := x-s.player.X, y-s.player.Y
	_, py := s.grid.TileAt(s.player.X, s.player.Y)
	if s.grid.IsTunnelRow(py) {
		w := s.grid.PixelWidth()
		if dx > w/2 {
			dx -= w
		} else if dx < -w/2 {
			dx += w
		}
	}
	return math.Hypot(dx, dy)
}

func (s *Session) loseLife(x, y, ghost int) {
	s.lives--
	s.emit(Event{Kind: EventLifeLost, X: x, Y: y, Ghost: ghost})
	if s.lives <= 0 {
		s.lives = 0
		s.state = GameOver
		s.emit(Event{Kind: EventGameOver, X: x, Y: y, Ghost: -1})
		return
	}
	// The phase schedule carries on; only the frightened window is dropped.
	s.modes.ClearFrightened()
	s.resetActors()
}

func (s *Session) levelCleared() {
	s.emit(Event{Kind: EventLevelCleared, Ghost: -1})
	if s.tuning.MaxLevel > 0 && s.level >= s.tuning.MaxLevel {
		s.state = Won
		s.emit(Event{Kind: EventWon, Ghost: -1})
		return
	}
	s.level++
	s.state = LevelComplete
	s.levelTimer = s.tuning.LevelPauseTicks
	if s.levelTimer <= 0 {
		s.startLevel()
	}
}

// startLevel refills the maze and sends everyone back to their start tiles.
// Score, lives and level carry over.
func (s *Session) startLevel() {
	s.levelTimer = 0
	s.grid.Reset()
	s.modes.Reset()
	s.resetActors()
	s.state = Playing
}
