package session

import "fmt"

type State int

const (
	Playing State = iota
	Paused
	GameOver
	LevelComplete
	Won
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	case LevelComplete:
		return "level_complete"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for v := Playing; v <= Won; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("session: unknown state %q", b)
}

// Terminal reports whether only Restart can bring the session back.
func (s State) Terminal() bool {
	return s == GameOver || s == Won
}

type EventKind int

const (
	EventDot EventKind = iota
	EventPellet
	EventGhostEaten
	EventGhostReleased
	EventGhostHome
	EventLifeLost
	EventLevelCleared
	EventGameOver
	EventWon
)

func (k EventKind) String() string {
	switch k {
	case EventDot:
		return "dot"
	case EventPellet:
		return "pellet"
	case EventGhostEaten:
		return "ghost_eaten"
	case EventGhostReleased:
		return "ghost_released"
	case EventGhostHome:
		return "ghost_home"
	case EventLifeLost:
		return "life_lost"
	case EventLevelCleared:
		return "level_cleared"
	case EventGameOver:
		return "game_over"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	for v := EventDot; v <= EventWon; v++ {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("session: unknown event kind %q", b)
}

// Event is one thing that happened during a tick. Ghost is the ghost's
// index, or -1. Points is what the event added to the score.
type Event struct {
	Kind   EventKind `json:"kind"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Ghost  int       `json:"ghost"`
	Points int       `json:"points,omitempty"`
}
