package ai

import (
	"candychase/internal/entities"
	tm "candychase/internal/tilemap"
)

// HomeField holds breadth-first path distances from every passable tile to
// the ghost house. One field serves every eaten ghost for a template.
type HomeField struct {
	home Point
	dist [][]int
}

// NewHomeField floods outward from (hx, hy) through everything that is not
// a wall, house tiles included. Unreachable tiles keep distance -1.
func NewHomeField(m *tm.TileMap, hx, hy int) *HomeField {
	f := &HomeField{home: Point{hx, hy}, dist: make([][]int, m.Height)}
	for y := range f.dist {
		f.dist[y] = make([]int, m.Width)
		for x := range f.dist[y] {
			f.dist[y][x] = -1
		}
	}
	if m.Blocked(hx, hy, true) {
		return f
	}
	f.dist[hy][hx] = 0
	queue := []Point{{hx, hy}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range entities.Cardinals {
			dx, dy := entities.DirDelta(d)
			nx, ny := m.Neighbor(p.X, p.Y, dx, dy)
			if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height {
				continue
			}
			if f.dist[ny][nx] != -1 || m.Blocked(nx, ny, true) {
				continue
			}
			f.dist[ny][nx] = f.dist[p.Y][p.X] + 1
			queue = append(queue, Point{nx, ny})
		}
	}
	return f
}

func (f *HomeField) Home() Point { return f.home }

// Distance is the path length from (x, y) home, or -1.
func (f *HomeField) Distance(x, y int) int {
	if y < 0 || y >= len(f.dist) || x < 0 || x >= len(f.dist[y]) {
		return -1
	}
	return f.dist[y][x]
}

// Direction returns the heading from (tx, ty) that shortens the path home
// by one tile, DirNone once home or when home is unreachable. Reversal is
// allowed.
func (f *HomeField) Direction(m *tm.TileMap, tx, ty int) entities.Direction {
	here := f.Distance(tx, ty)
	if here <= 0 {
		return entities.DirNone
	}
	for _, d := range entities.Cardinals {
		dx, dy := entities.DirDelta(d)
		nx, ny := m.Neighbor(tx, ty, dx, dy)
		if nd := f.Distance(nx, ny); nd >= 0 && nd < here {
			return d
		}
	}
	return entities.DirNone
}
