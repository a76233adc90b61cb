// Package term plays a session in a terminal through tcell. Each maze tile
// is drawn two cells wide so the board keeps a roughly square aspect.
package term

import (
	"context"
	"fmt"
	"time"

	"candychase/internal/entities"
	"candychase/internal/session"
	tm "candychase/internal/tilemap"

	"github.com/gdamore/tcell/v2"
)

const cellsPerTile = 2

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorHotPink)
	doorStyle   = tcell.StyleDefault.Foreground(tcell.ColorWheat)
	dotStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	pelletStyle = tcell.StyleDefault.Foreground(tcell.ColorAquaMarine).Bold(true)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	scaredStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	eyesStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorGold).Reverse(true)
	ghostStyles = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorDeepSkyBlue).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	}
)

type Host struct {
	screen tcell.Screen
	sess   *session.Session
	frame  time.Duration
}

// New wraps an initialized screen. ticksPerSecond sets the frame rate.
func New(screen tcell.Screen, s *session.Session, ticksPerSecond int) *Host {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	return &Host{
		screen: screen,
		sess:   s,
		frame:  time.Second / time.Duration(ticksPerSecond),
	}
}

// Run ticks and redraws until the player quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.frame)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.sess.Tick()
			h.draw()
		}
	}
}

func (h *Host) draw() {
	h.screen.Clear()
	Render(h.screen, h.sess.Snapshot())
	h.screen.Show()
}

// handleEvent applies one terminal event. It returns false when the player
// asked to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ', 'p', 'P':
				h.sess.TogglePause()
				return true
			case 'r', 'R':
				h.sess.Restart()
				return true
			}
		}
		if d := keyDirection(ev); d != entities.DirNone {
			h.sess.SetDirection(d)
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func keyDirection(ev *tcell.EventKey) entities.Direction {
	switch ev.Key() {
	case tcell.KeyUp:
		return entities.DirUp
	case tcell.KeyDown:
		return entities.DirDown
	case tcell.KeyLeft:
		return entities.DirLeft
	case tcell.KeyRight:
		return entities.DirRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return entities.DirUp
		case 's', 'j':
			return entities.DirDown
		case 'a', 'h':
			return entities.DirLeft
		case 'd', 'l':
			return entities.DirRight
		}
	}
	return entities.DirNone
}

// Render draws a snapshot at the top-left corner of screen. It does not
// call Show.
func Render(screen tcell.Screen, snap session.Snapshot) {
	for y, row := range snap.Tiles {
		for x, t := range row {
			r, style := tileGlyph(snap, x, y, t)
			setTile(screen, x, y, r, style)
		}
	}

	px, py := snap.Player.TileX, snap.Player.TileY
	setTile(screen, px, py, playerGlyph(snap.Player.Dir), playerStyle)

	for _, g := range snap.Ghosts {
		r, style := ghostGlyph(g)
		setTile(screen, g.TileX, g.TileY, r, style)
	}

	hudY := snap.Height
	drawText(screen, 0, hudY, hudStyle, fmt.Sprintf("Score %d  Lives %d  Level %d  %s", snap.Score, snap.Lives, snap.Level, snap.Mode))
	if banner := bannerText(snap.State); banner != "" {
		x := (snap.Width*cellsPerTile - len(banner)) / 2
		drawText(screen, x, snap.Height/2+3, bannerStyle, banner)
	}
}

func tileGlyph(snap session.Snapshot, x, y int, t tm.Tile) (rune, tcell.Style) {
	switch t {
	case tm.TileWall:
		return '█', wallStyle
	case tm.TileDot:
		return '·', dotStyle
	case tm.TilePower:
		return '●', pelletStyle
	case tm.TileHouse:
		if y > 0 && snap.Tiles[y-1][x] != tm.TileHouse {
			return '─', doorStyle
		}
	}
	return ' ', tcell.StyleDefault
}

func playerGlyph(d entities.Direction) rune {
	switch d {
	case entities.DirUp:
		return 'V'
	case entities.DirDown:
		return 'Λ'
	case entities.DirLeft:
		return '>'
	case entities.DirRight:
		return '<'
	default:
		return 'O'
	}
}

func ghostGlyph(g session.GhostView) (rune, tcell.Style) {
	switch {
	case g.Eaten:
		return '"', eyesStyle
	case g.Scared:
		return 'ᗣ', scaredStyle
	default:
		return 'ᗣ', ghostStyles[int(g.Personality)%len(ghostStyles)]
	}
}

// setTile fills both cells of tile (x, y); the glyph goes in the left one.
func setTile(screen tcell.Screen, x, y int, r rune, style tcell.Style) {
	screen.SetContent(x*cellsPerTile, y, r, nil, style)
	fill := ' '
	if r == '█' || r == '─' {
		fill = r
	}
	screen.SetContent(x*cellsPerTile+1, y, fill, nil, style)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func bannerText(st session.State) string {
	switch st {
	case session.Paused:
		return " PAUSED "
	case session.GameOver:
		return " GAME OVER - r to restart "
	case session.LevelComplete:
		return " LEVEL CLEARED "
	case session.Won:
		return " SWEET VICTORY - r to restart "
	default:
		return ""
	}
}
