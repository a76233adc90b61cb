// Package session owns one game: the maze working copy, the player, the
// ghosts, the mode schedule and the counters. Hosts call Tick once per
// frame and read Snapshot to draw.
package session

import (
	"fmt"
	"math/rand"

	"candychase/internal/ai"
	"candychase/internal/config"
	"candychase/internal/entities"
	"candychase/internal/mode"
	tm "candychase/internal/tilemap"
)

// Layout pins the fixed spots of a maze in tile coordinates.
type Layout struct {
	PlayerStart ai.Point
	HouseExit   ai.Point
	House       ai.Point
	GhostSlots  [4]ai.Point
}

func DefaultLayout() Layout {
	l := Layout{
		PlayerStart: ai.Point{X: tm.PlayerStartX, Y: tm.PlayerStartY},
		HouseExit:   ai.Point{X: tm.HouseExitX, Y: tm.HouseExitY},
		House:       ai.Point{X: tm.HouseX, Y: tm.HouseY},
	}
	for i, s := range tm.GhostSlots {
		l.GhostSlots[i] = ai.Point{X: s[0], Y: s[1]}
	}
	return l
}

type Session struct {
	tuning   config.Tuning
	layout   Layout
	grid     *tm.TileMap
	player   *entities.Player
	ghosts   []*entities.Ghost
	modes    *mode.Controller
	selector *ai.Selector
	home     *ai.HomeField

	score      int
	lives      int
	level      int
	state      State
	levelTimer int
	tick       int
	events     []Event
}

// New starts a session on the built-in maze.
func New(t config.Tuning) (*Session, error) {
	return NewWithMaze(t, tm.DefaultTemplate(), DefaultLayout())
}

// NewWithMaze starts a session on an arbitrary template.
func NewWithMaze(t config.Tuning, tpl *tm.Template, layout Layout) (*Session, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: nil template", tm.ErrInvalidMaze)
	}
	grid := tm.NewTileMap(tpl, t.TileSize)
	if grid.Blocked(layout.PlayerStart.X, layout.PlayerStart.Y, false) {
		return nil, fmt.Errorf("%w: player start %v is blocked", tm.ErrInvalidMaze, layout.PlayerStart)
	}
	if grid.Blocked(layout.HouseExit.X, layout.HouseExit.Y, false) {
		return nil, fmt.Errorf("%w: house exit %v is blocked", tm.ErrInvalidMaze, layout.HouseExit)
	}
	s := &Session{
		tuning: t,
		layout: layout,
		grid:   grid,
		player: &entities.Player{},
		modes:  mode.New(t),
		home:   ai.NewHomeField(grid, layout.House.X, layout.House.Y),
	}
	for i, p := range entities.Personalities {
		s.ghosts = append(s.ghosts, &entities.Ghost{
			Personality: p,
			Index:       i,
			HomeX:       layout.GhostSlots[i].X,
			HomeY:       layout.GhostSlots[i].Y,
		})
	}
	s.Restart()
	return s, nil
}

// Restart throws the current game away: fresh maze, fresh counters, and the
// random source reseeded so a restarted game replays identically.
func (s *Session) Restart() {
	s.selector = ai.NewSelector(s.tuning, rand.New(rand.NewSource(s.tuning.Seed)))
	s.score = 0
	s.lives = s.tuning.StartingLives
	s.level = 1
	s.tick = 0
	s.levelTimer = 0
	s.events = s.events[:0]
	s.grid.Reset()
	s.modes.Reset()
	s.resetActors()
	s.state = Playing
}

// SetDirection queues the player's next heading. It is honored at the next
// tile center where it leads somewhere open, or replaced by a later call.
func (s *Session) SetDirection(d entities.Direction) {
	s.player.DesiredDir = d
}

func (s *Session) Pause() {
	if s.state == Playing {
		s.state = Paused
	}
}

func (s *Session) Resume() {
	if s.state == Paused {
		s.state = Playing
	}
}

func (s *Session) TogglePause() {
	if s.state == Paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Tick advances the simulation by one step. Nothing moves while paused or
// after the game has ended; between levels only the pause countdown runs.
func (s *Session) Tick() {
	s.events = s.events[:0]
	switch s.state {
	case Paused, GameOver, Won:
		return
	case LevelComplete:
		s.levelTimer--
		if s.levelTimer <= 0 {
			s.startLevel()
		}
		return
	}

	s.tick++
	if ev := s.modes.Tick(); ev.FrightenedEnded {
		for _, g := range s.ghosts {
			g.Scared = false
		}
	}
	s.updateHouse()
	s.movePlayer()
	s.consumeAtPlayer()
	if s.state != Playing {
		return
	}
	s.moveGhosts()
	s.resolveCollisions()
}

func (s *Session) State() State { return s.state }
func (s *Session) Score() int { return s.score }
func (s *Session) Lives() int { return s.lives }
func (s *Session) Level() int { return s.level }
func (s *Session) Ticks() int { return s.tick }
func (s *Session) Tuning() config.Tuning { return s.tuning }

// Events lists what happened during the most recent Tick.
func (s *Session) Events() []Event {
	return append([]Event(nil), s.events...)
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
