package game

import (
	"fmt"
	"image/color"

	"candychase/internal/session"
	tm "candychase/internal/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudHeight = 24
	// glyphWidth is the advance of basicfont.Face7x13.
	glyphWidth = 7
	// flashTicks is how long before the frightened window ends ghosts start
	// blinking.
	flashTicks = 60
)

var (
	backgroundColor = color.RGBA{R: 24, G: 10, B: 28, A: 255}
	wallColor       = color.RGBA{R: 255, G: 105, B: 180, A: 255} // strawberry icing
	doorColor       = color.RGBA{R: 255, G: 228, B: 196, A: 255}
	dotColor        = color.RGBA{R: 255, G: 250, B: 240, A: 255}
	pelletColor     = color.RGBA{R: 120, G: 255, B: 200, A: 255} // mint jawbreaker
	playerColor     = color.RGBA{R: 255, G: 221, B: 0, A: 255}
	scaredColor     = color.RGBA{R: 40, G: 60, B: 255, A: 255}
	flashColor      = color.RGBA{R: 240, G: 240, B: 255, A: 255}
	eyeColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hudColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bannerColor     = color.RGBA{R: 255, G: 215, B: 0, A: 255}

	// Indexed by ghost personality.
	ghostColors = []color.RGBA{
		{R: 220, G: 20, B: 60, A: 255},   // cherry
		{R: 255, G: 128, B: 255, A: 255}, // bubblegum
		{R: 0, G: 191, B: 255, A: 255},   // blue raspberry
		{R: 255, G: 140, B: 0, A: 255},   // orange cream
	}
)

func drawFrame(dst *ebiten.Image, snap session.Snapshot) {
	drawMaze(dst, snap)
	drawPlayer(dst, snap)
	drawGhosts(dst, snap)
	drawHUD(dst, snap)
}

func drawMaze(dst *ebiten.Image, snap session.Snapshot) {
	ts := float32(snap.TileSize)
	for y, row := range snap.Tiles {
		for x, t := range row {
			px := float32(x) * ts
			py := float32(y) * ts
			cx := px + ts/2
			cy := py + ts/2

			switch t {
			case tm.TileWall:
				vector.DrawFilledRect(dst, px+1, py+1, ts-2, ts-2, wallColor, false)
			case tm.TileHouse:
				// Only the door row is visible; the rest of the house is floor.
				if y > 0 && snap.Tiles[y-1][x] != tm.TileHouse {
					vector.DrawFilledRect(dst, px, py+ts/2-1, ts, 2, doorColor, false)
				}
			case tm.TileDot:
				vector.DrawFilledCircle(dst, cx, cy, ts/8, dotColor, true)
			case tm.TilePower:
				vector.DrawFilledCircle(dst, cx, cy, ts/4, pelletColor, true)
			}
		}
	}
}

func drawPlayer(dst *ebiten.Image, snap session.Snapshot) {
	r := float32(snap.TileSize)/2 - 2
	vector.DrawFilledCircle(dst, float32(snap.Player.X), float32(snap.Player.Y), r, playerColor, true)
}

func drawGhosts(dst *ebiten.Image, snap session.Snapshot) {
	ts := float32(snap.TileSize)
	r := ts/2 - 2
	for _, gh := range snap.Ghosts {
		x, y := float32(gh.X), float32(gh.Y)
		if !gh.Eaten {
			c := ghostBodyColor(gh, snap.FrightenedTicks)
			vector.DrawFilledCircle(dst, x, y-1, r, c, true)
			vector.DrawFilledRect(dst, x-r, y-1, 2*r, r, c, true)
		}
		vector.DrawFilledCircle(dst, x-r/2.5, y-r/3, r/3.5, eyeColor, true)
		vector.DrawFilledCircle(dst, x+r/2.5, y-r/3, r/3.5, eyeColor, true)
	}
}

func ghostBodyColor(gh session.GhostView, frightenedLeft int) color.RGBA {
	if !gh.Scared {
		return ghostColors[int(gh.Personality)%len(ghostColors)]
	}
	if frightenedLeft <= flashTicks && (frightenedLeft/10)%2 == 0 {
		return flashColor
	}
	return scaredColor
}

func drawHUD(dst *ebiten.Image, snap session.Snapshot) {
	mazeH := snap.Height * snap.TileSize
	w := snap.Width * snap.TileSize
	text.Draw(dst, hudText(snap), basicfont.Face7x13, 4, mazeH+hudHeight-7, hudColor)

	if banner := bannerText(snap.State); banner != "" {
		bw := len(banner) * glyphWidth
		text.Draw(dst, banner, basicfont.Face7x13, (w-bw)/2, mazeH/2+4*snap.TileSize, bannerColor)
	}
}

func hudText(snap session.Snapshot) string {
	s := fmt.Sprintf("Score: %d  Lives: %d  Level: %d  Mode: %s", snap.Score, snap.Lives, snap.Level, snap.Mode)
	if snap.FrightenedTicks > 0 {
		s += fmt.Sprintf(" (%d)", snap.FrightenedTicks)
	}
	return s
}

func bannerText(st session.State) string {
	switch st {
	case session.Paused:
		return "PAUSED - press Space"
	case session.GameOver:
		return "GAME OVER - press R"
	case session.LevelComplete:
		return "LEVEL CLEARED!"
	case session.Won:
		return "SWEET VICTORY - press R"
	default:
		return ""
	}
}
