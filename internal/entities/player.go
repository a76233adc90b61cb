package entities

// Mover is anything the movement kernel can step: a continuous position
// and a current heading. The tile an entity occupies is always derived from
// its position and never stored.
type Mover interface {
	Pos() (x, y float64)
	SetPos(x, y float64)
	Heading() Direction
	SetHeading(d Direction)
}

// Body is the shared positional state of the player and the ghosts.
// X and Y address the entity's center in pixels.
type Body struct {
	X, Y       float64
	CurrentDir Direction
}

func (b *Body) Pos() (float64, float64) { return b.X, b.Y }

func (b *Body) SetPos(x, y float64) { b.X, b.Y = x, y }

func (b *Body) Heading() Direction { return b.CurrentDir }

func (b *Body) SetHeading(d Direction) { b.CurrentDir = d }

type Player struct {
	Body
	// DesiredDir is the queued input. It stays queued until a tile center
	// lets it be honored or a newer input replaces it.
	DesiredDir Direction
}
