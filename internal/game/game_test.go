package game

import (
	"testing"

	"candychase/internal/config"
	"candychase/internal/entities"
	"candychase/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	s, err := session.New(config.Default())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return New(s, 1.0)
}

func TestScreenDimensionsPositive(t *testing.T) {
	g := newGame(t)
	if g.ScreenWidth() <= 0 || g.ScreenHeight() <= 0 {
		t.Fatalf("screen dimensions must be positive, got %dx%d", g.ScreenWidth(), g.ScreenHeight())
	}
	w, h := g.NativeSize()
	if w != 28*20 || h != 31*20+hudHeight {
		t.Fatalf("unexpected native size %dx%d", w, h)
	}
}

func TestLayoutMatchesScreenSize(t *testing.T) {
	s, err := session.New(config.Default())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	g := New(s, 1.5)
	w, h := g.Layout(0, 0)
	if w != g.ScreenWidth() || h != g.ScreenHeight() {
		t.Fatalf("layout mismatch: got %dx%d want %dx%d", w, h, g.ScreenWidth(), g.ScreenHeight())
	}
	nw, _ := g.NativeSize()
	if w != int(float64(nw)*1.5) {
		t.Fatalf("scale not applied: %d", w)
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name           string
		nw, nh, sw, sh int
		fit, want      float64
	}{
		{"height bound", 100, 200, 1000, 400, 1.0, 2.0},
		{"width bound", 200, 100, 400, 1000, 0.5, 1.0},
		{"no screen", 100, 100, 0, 0, 0.75, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitScale(tt.nw, tt.nh, tt.sw, tt.sh, tt.fit); got != tt.want {
				t.Fatalf("FitScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBadScaleFallsBack(t *testing.T) {
	s, err := session.New(config.Default())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	g := New(s, -2)
	if g.scale != 1.0 {
		t.Fatalf("expected fallback scale 1, got %v", g.scale)
	}
}

func TestDirectionFromKeys(t *testing.T) {
	tests := []struct {
		name string
		held []ebiten.Key
		want entities.Direction
	}{
		{"none", nil, entities.DirNone},
		{"arrow up", []ebiten.Key{ebiten.KeyArrowUp}, entities.DirUp},
		{"wasd left", []ebiten.Key{ebiten.KeyA}, entities.DirLeft},
		{"arrow right", []ebiten.Key{ebiten.KeyArrowRight}, entities.DirRight},
		{"s is down", []ebiten.Key{ebiten.KeyS}, entities.DirDown},
		{"up beats right", []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyArrowUp}, entities.DirUp},
		{"unrelated key", []ebiten.Key{ebiten.KeyZ}, entities.DirNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed := func(k ebiten.Key) bool {
				for _, h := range tt.held {
					if h == k {
						return true
					}
				}
				return false
			}
			if got := directionFromKeys(pressed); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateTicksSession(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if got := g.sess.Ticks(); got != 3 {
		t.Fatalf("expected 3 ticks, got %d", got)
	}
}

func TestQuitTerminates(t *testing.T) {
	g := newGame(t)
	g.quit = true
	if err := g.Update(); err != ebiten.Termination {
		t.Fatalf("expected ebiten.Termination, got %v", err)
	}
}

func TestGameDrawDoesNotPanic(t *testing.T) {
	g := newGame(t)
	screen := ebiten.NewImage(g.ScreenWidth(), g.ScreenHeight())
	// Should not panic
	g.Draw(screen)
	g.sess.Pause()
	g.Draw(screen)
}

func TestHUDAndBanner(t *testing.T) {
	g := newGame(t)
	snap := g.sess.Snapshot()
	if got := hudText(snap); got != "Score: 0  Lives: 3  Level: 1  Mode: scatter" {
		t.Fatalf("unexpected hud %q", got)
	}
	if bannerText(session.Playing) != "" {
		t.Fatalf("no banner expected while playing")
	}
	if bannerText(session.GameOver) == "" || bannerText(session.Paused) == "" {
		t.Fatalf("missing banner")
	}
}

func TestScaredGhostsFlashNearTheEnd(t *testing.T) {
	gh := session.GhostView{Personality: entities.Flanker}
	if ghostBodyColor(gh, 0) != ghostColors[2] {
		t.Fatalf("unscared ghost should use its own color")
	}
	gh.Scared = true
	if ghostBodyColor(gh, 200) != scaredColor {
		t.Fatalf("expected scared color early in the window")
	}
	if ghostBodyColor(gh, 60) != flashColor {
		t.Fatalf("expected flash at 60 ticks left")
	}
	if ghostBodyColor(gh, 55) != scaredColor {
		t.Fatalf("expected scared color between flashes")
	}
}
