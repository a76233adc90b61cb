package tilemap

import "math"

type Tile int

const (
	TileOpen Tile = iota
	TileWall
	TileDot
	TilePower
	TileHouse
)

func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileDot:
		return "dot"
	case TilePower:
		return "power"
	case TileHouse:
		return "house"
	default:
		return "open"
	}
}

// Consumed is what ConsumeAt found on a tile.
type Consumed int

const (
	ConsumedNone Consumed = iota
	ConsumedDot
	ConsumedPellet
)

// TileMap is the per-session working copy of a Template. Consumed items are
// turned into TileOpen here; the template is left untouched.
type TileMap struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile

	template  *Template
	remaining int
}

func NewTileMap(t *Template, tileSize int) *TileMap {
	m := &TileMap{
		Width:    t.width,
		Height:   t.height,
		TileSize: tileSize,
		template: t,
	}
	m.Reset()
	return m
}

func NewDefaultMap(tileSize int) *TileMap {
	return NewTileMap(DefaultTemplate(), tileSize)
}

// Reset discards the working copy and copies the template again.
func (m *TileMap) Reset() {
	m.Tiles = make([][]Tile, m.Height)
	for y := range m.Tiles {
		m.Tiles[y] = append([]Tile(nil), m.template.tiles[y]...)
	}
	m.remaining = m.template.consumables
}

func (m *TileMap) Template() *Template { return m.template }

// IsTunnelRow reports whether row y wraps horizontally.
func (m *TileMap) IsTunnelRow(y int) bool {
	return y >= 0 && y < m.Height && m.template.tunnelRows[y]
}

// IsTunnel reports whether (x, y) is part of a tunnel stretch.
// Columns past either edge of a tunnel row count as tunnel.
func (m *TileMap) IsTunnel(x, y int) bool {
	if !m.IsTunnelRow(y) {
		return false
	}
	if x < 0 || x >= m.Width {
		return true
	}
	return m.template.tunnel[y][x]
}

// IsWall treats out-of-range columns as open on tunnel rows and every other
// out-of-range lookup as wall.
func (m *TileMap) IsWall(x, y int) bool {
	if y < 0 || y >= m.Height {
		return true
	}
	if x < 0 || x >= m.Width {
		return !m.IsTunnelRow(y)
	}
	return m.Tiles[y][x] == TileWall
}

// Kind returns the working tile at (x, y), wrapping columns on tunnel rows.
func (m *TileMap) Kind(x, y int) Tile {
	if y < 0 || y >= m.Height {
		return TileWall
	}
	if x < 0 || x >= m.Width {
		if !m.IsTunnelRow(y) {
			return TileWall
		}
		x = m.Wrap(x)
	}
	return m.Tiles[y][x]
}

// Blocked reports whether an entity may not enter (x, y). House tiles are
// passable only when allowHouse is set.
func (m *TileMap) Blocked(x, y int, allowHouse bool) bool {
	switch m.Kind(x, y) {
	case TileWall:
		return true
	case TileHouse:
		return !allowHouse
	default:
		return false
	}
}

// Wrap folds a column index back into [0, Width).
func (m *TileMap) Wrap(x int) int {
	x %= m.Width
	if x < 0 {
		x += m.Width
	}
	return x
}

// Neighbor steps one tile from (x, y) by (dx, dy), wrapping the column on
// tunnel rows.
func (m *TileMap) Neighbor(x, y, dx, dy int) (int, int) {
	nx, ny := x+dx, y+dy
	if (nx < 0 || nx >= m.Width) && m.IsTunnelRow(ny) {
		nx = m.Wrap(nx)
	}
	return nx, ny
}

// ConsumeAt clears a dot or power pellet at (x, y) and reports which it was.
// A second call on the same tile returns ConsumedNone.
func (m *TileMap) ConsumeAt(x, y int) Consumed {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return ConsumedNone
	}
	switch m.Tiles[y][x] {
	case TileDot:
		m.Tiles[y][x] = TileOpen
		m.remaining--
		return ConsumedDot
	case TilePower:
		m.Tiles[y][x] = TileOpen
		m.remaining--
		return ConsumedPellet
	}
	return ConsumedNone
}

// Remaining is the number of dots and power pellets left.
func (m *TileMap) Remaining() int { return m.remaining }

// Center returns the pixel center of tile (x, y).
func (m *TileMap) Center(x, y int) (float64, float64) {
	half := float64(m.TileSize) / 2
	return float64(x*m.TileSize) + half, float64(y*m.TileSize) + half
}

// TileAt derives the tile containing pixel (px, py).
func (m *TileMap) TileAt(px, py float64) (int, int) {
	ts := float64(m.TileSize)
	return int(math.Floor(px / ts)), int(math.Floor(py / ts))
}

// PixelWidth and PixelHeight are the maze extents in pixels.
func (m *TileMap) PixelWidth() float64  { return float64(m.Width * m.TileSize) }
func (m *TileMap) PixelHeight() float64 { return float64(m.Height * m.TileSize) }

// Snapshot copies the working tiles for read-only consumers.
func (m *TileMap) Snapshot() [][]Tile {
	out := make([][]Tile, m.Height)
	for y := range m.Tiles {
		out[y] = append([]Tile(nil), m.Tiles[y]...)
	}
	return out
}
