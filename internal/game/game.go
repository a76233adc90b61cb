// Package game hosts a session in an ebiten window: it maps keys onto the
// session, ticks it once per Update and draws its snapshot.
package game

import (
	"math"

	"candychase/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	sess       *session.Session
	off        *ebiten.Image
	nativeW    int
	nativeH    int
	scale      float64
	fullscreen bool
	quit       bool
}

func New(s *session.Session, scale float64) *Game {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1.0
	}
	w, h := FrameSize(s.Snapshot())
	return &Game{
		sess:    s,
		nativeW: w,
		nativeH: h,
		scale:   scale,
	}
}

// FrameSize is the unscaled frame for a snapshot: the maze plus the HUD
// strip.
func FrameSize(snap session.Snapshot) (int, int) {
	return snap.Width * snap.TileSize, snap.Height*snap.TileSize + hudHeight
}

// FitScale picks the scale that fits a native-size frame into the given
// fraction of a screen.
func FitScale(nativeW, nativeH, screenW, screenH int, fit float64) float64 {
	if nativeW <= 0 || nativeH <= 0 || screenW <= 0 || screenH <= 0 {
		return 1.0
	}
	scaleW := float64(screenW) * fit / float64(nativeW)
	scaleH := float64(screenH) * fit / float64(nativeH)
	s := math.Min(scaleW, scaleH)
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1.0
	}
	return s
}

func (g *Game) NativeSize() (int, int) {
	return g.nativeW, g.nativeH
}

func (g *Game) ScreenWidth() int {
	return int(float64(g.nativeW) * g.scale)
}

func (g *Game) ScreenHeight() int {
	return int(float64(g.nativeH) * g.scale)
}

func (g *Game) Update() error {
	g.handleInput()
	if g.quit {
		return ebiten.Termination
	}
	g.sess.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.off == nil {
		g.off = ebiten.NewImage(g.nativeW, g.nativeH)
	}
	g.off.Clear()

	snap := g.sess.Snapshot()
	drawFrame(g.off, snap)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	screen.DrawImage(g.off, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.ScreenWidth(), g.ScreenHeight()
}
