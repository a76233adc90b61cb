package game

import (
	"candychase/internal/entities"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// directionKeys is checked in order; the first held key wins.
var directionKeys = []struct {
	key ebiten.Key
	dir entities.Direction
}{
	{ebiten.KeyArrowUp, entities.DirUp},
	{ebiten.KeyW, entities.DirUp},
	{ebiten.KeyArrowDown, entities.DirDown},
	{ebiten.KeyS, entities.DirDown},
	{ebiten.KeyArrowLeft, entities.DirLeft},
	{ebiten.KeyA, entities.DirLeft},
	{ebiten.KeyArrowRight, entities.DirRight},
	{ebiten.KeyD, entities.DirRight},
}

func directionFromKeys(pressed func(ebiten.Key) bool) entities.Direction {
	for _, k := range directionKeys {
		if pressed(k.key) {
			return k.dir
		}
	}
	return entities.DirNone
}

func (g *Game) handleInput() {
	// Queue desired direction from input
	if d := directionFromKeys(ebiten.IsKeyPressed); d != entities.DirNone {
		g.sess.SetDirection(d)
	}

	// Fullscreen toggle with 'F'
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	}

	// Pause toggle with Space or P
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sess.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sess.Restart()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.quit = true
	}
}
