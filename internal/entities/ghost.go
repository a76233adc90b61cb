package entities

import "fmt"

// Personality selects a ghost's targeting heuristic.
type Personality int

const (
	Chaser Personality = iota
	Ambusher
	Flanker
	Opportunist
)

// Personalities lists the four variants in spawn order.
var Personalities = [4]Personality{Chaser, Ambusher, Flanker, Opportunist}

func (p Personality) String() string {
	switch p {
	case Chaser:
		return "chaser"
	case Ambusher:
		return "ambusher"
	case Flanker:
		return "flanker"
	case Opportunist:
		return "opportunist"
	default:
		return "unknown"
	}
}

func (p Personality) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Personality) UnmarshalText(b []byte) error {
	for _, v := range Personalities {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("entities: unknown personality %q", b)
}

type Ghost struct {
	Body
	Personality Personality
	// Index is the ghost's spawn slot; it staggers house release.
	Index int
	// HomeX, HomeY is the house tile the ghost waits on.
	HomeX, HomeY int

	Scared     bool
	Eaten      bool
	InHouse    bool
	HouseTimer int
}

// Active reports whether the ghost is roaming the maze and can collide.
func (g *Ghost) Active() bool {
	return !g.InHouse && !g.Eaten
}
