package session

import (
	"candychase/internal/entities"
	"candychase/internal/mode"
	tm "candychase/internal/tilemap"
)

type ActorView struct {
	X     float64            `json:"x"`
	Y     float64            `json:"y"`
	TileX int                `json:"tile_x"`
	TileY int                `json:"tile_y"`
	Dir   entities.Direction `json:"dir"`
}

type GhostView struct {
	ActorView
	Index       int                  `json:"index"`
	Personality entities.Personality `json:"personality"`
	Scared      bool                 `json:"scared"`
	Eaten       bool                 `json:"eaten"`
	InHouse     bool                 `json:"in_house"`
}

// Snapshot is a self-contained copy of the session for renderers. Nothing
// in it aliases session state.
type Snapshot struct {
	Tick            int         `json:"tick"`
	State           State       `json:"state"`
	Mode            mode.Mode   `json:"mode"`
	Phase           mode.Mode   `json:"phase"`
	FrightenedTicks int         `json:"frightened_ticks"`
	Score           int         `json:"score"`
	Lives           int         `json:"lives"`
	Level           int         `json:"level"`
	Remaining       int         `json:"remaining"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	TileSize        int         `json:"tile_size"`
	Tiles           [][]tm.Tile `json:"tiles"`
	Player          ActorView   `json:"player"`
	Ghosts          []GhostView `json:"ghosts"`
	Events          []Event     `json:"events"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:            s.tick,
		State:           s.state,
		Mode:            s.modes.Current(),
		Phase:           s.modes.Phase(),
		FrightenedTicks: s.modes.FrightenedRemaining(),
		Score:           s.score,
		Lives:           s.lives,
		Level:           s.level,
		Remaining:       s.grid.Remaining(),
		Width:           s.grid.Width,
		Height:          s.grid.Height,
		TileSize:        s.grid.TileSize,
		Tiles:           s.grid.Snapshot(),
		Player:          s.actorView(&s.player.Body),
		Ghosts:          make([]GhostView, 0, len(s.ghosts)),
		Events:          s.Events(),
	}
	for _, g := range s.ghosts {
		snap.Ghosts = append(snap.Ghosts, GhostView{
			ActorView:   s.actorView(&g.Body),
			Index:       g.Index,
			Personality: g.Personality,
			Scared:      g.Scared,
			Eaten:       g.Eaten,
			InHouse:     g.InHouse,
		})
	}
	return snap
}

func (s *Session) actorView(b *entities.Body) ActorView {
	tx, ty := s.grid.TileAt(b.X, b.Y)
	return ActorView{X: b.X, Y: b.Y, TileX: tx, TileY: ty, Dir: b.CurrentDir}
}
