package tilemap

import (
	"errors"
	"fmt"
)

var ErrInvalidMaze = errors.New("invalid maze")

// Template is the immutable wall and item layout a TileMap is copied from.
// Nothing mutates a Template after ParseTemplate returns it.
type Template struct {
	width, height int
	tiles         [][]Tile
	tunnelRows    []bool
	tunnel        [][]bool
	consumables   int
}

// ParseTemplate builds a Template from ASCII rows. All rows must share the
// first row's width. Unknown runes are read as open floor.
func ParseTemplate(lines []string) (*Template, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidMaze)
	}
	h := len(lines)
	w := len(lines[0])
	t := &Template{width: w, height: h, tiles: make([][]Tile, h)}
	for y := 0; y < h; y++ {
		if len(lines[y]) != w {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidMaze, y, len(lines[y]), w)
		}
		t.tiles[y] = make([]Tile, w)
		for x := 0; x < w; x++ {
			switch lines[y][x] {
			case '#':
				t.tiles[y][x] = TileWall
			case '.':
				t.tiles[y][x] = TileDot
				t.consumables++
			case 'o':
				t.tiles[y][x] = TilePower
				t.consumables++
			case '-':
				t.tiles[y][x] = TileHouse
			default:
				t.tiles[y][x] = TileOpen
			}
		}
	}
	t.markTunnels()
	return t, nil
}

// MustParseTemplate is ParseTemplate for layouts known at compile time.
func MustParseTemplate(lines []string) *Template {
	t, err := ParseTemplate(lines)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTemplate returns the built-in maze.
func DefaultTemplate() *Template {
	return MustParseTemplate(defaultMaze)
}

// markTunnels flags rows whose edge tiles are both passable, then walks in
// from each edge while the tile is a corridor walled above and below.
// Those corridor tiles are the slow tunnel stretch.
func (t *Template) markTunnels() {
	t.tunnelRows = make([]bool, t.height)
	t.tunnel = make([][]bool, t.height)
	for y := 0; y < t.height; y++ {
		t.tunnel[y] = make([]bool, t.width)
		if t.tiles[y][0] == TileWall || t.tiles[y][t.width-1] == TileWall {
			continue
		}
		t.tunnelRows[y] = true
		for x := 0; x < t.width && t.isCorridor(x, y); x++ {
			t.tunnel[y][x] = true
		}
		for x := t.width - 1; x >= 0 && t.isCorridor(x, y); x-- {
			t.tunnel[y][x] = true
		}
	}
}

func (t *Template) isCorridor(x, y int) bool {
	if t.tiles[y][x] == TileWall {
		return false
	}
	above := y == 0 || t.tiles[y-1][x] == TileWall
	below := y == t.height-1 || t.tiles[y+1][x] == TileWall
	return above && below
}

func (t *Template) Width() int  { return t.width }
func (t *Template) Height() int { return t.height }

// At returns the template tile, or TileWall outside the grid.
func (t *Template) At(x, y int) Tile {
	if y < 0 || y >= t.height || x < 0 || x >= t.width {
		return TileWall
	}
	return t.tiles[y][x]
}

// Consumables counts dots and power pellets in the layout.
func (t *Template) Consumables() int { return t.consumables }
