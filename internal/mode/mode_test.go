package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candychase/internal/config"
)

func tickN(c *Controller, n int) (changes int) {
	for i := 0; i < n; i++ {
		if c.Tick().PhaseChanged {
			changes++
		}
	}
	return changes
}

func TestScatterChaseSchedule(t *testing.T) {
	c := New(config.Default())
	require.Equal(t, Scatter, c.Phase())
	require.Equal(t, 420, c.PhaseRemaining())

	assert.Zero(t, tickN(c, 419))
	assert.Equal(t, Scatter, c.Phase())

	assert.Equal(t, 1, tickN(c, 1))
	assert.Equal(t, Chase, c.Phase())
	assert.Equal(t, 1200, c.PhaseRemaining())

	assert.Zero(t, tickN(c, 1199))
	assert.Equal(t, Chase, c.Phase())
	assert.Equal(t, 1, tickN(c, 1))
	assert.Equal(t, Scatter, c.Phase())
	assert.Equal(t, 420, c.PhaseRemaining())
}

func TestFrightenedLastsExactly(t *testing.T) {
	c := New(config.Default())
	c.Frighten()
	assert.Equal(t, Frightened, c.Current())

	for i := 1; i < 300; i++ {
		ev := c.Tick()
		require.False(t, ev.FrightenedEnded, "ended early at tick %d", i)
		require.True(t, c.Frightened())
	}
	ev := c.Tick()
	assert.True(t, ev.FrightenedEnded)
	assert.False(t, c.Frightened())
	assert.Equal(t, Scatter, c.Current())
}

func TestFrightenedDoesNotDisturbPhase(t *testing.T) {
	plain := New(config.Default())
	overlaid := New(config.Default())

	tickN(plain, 100)
	tickN(overlaid, 100)
	overlaid.Frighten()

	for i := 0; i < 2000; i++ {
		a, b := plain.Tick(), overlaid.Tick()
		require.Equal(t, a.PhaseChanged, b.PhaseChanged, "tick %d", i)
		require.Equal(t, plain.Phase(), overlaid.Phase(), "tick %d", i)
		require.Equal(t, plain.PhaseRemaining(), overlaid.PhaseRemaining(), "tick %d", i)
	}
	assert.False(t, overlaid.Frightened())
}

func TestFrightenRestartsCountdown(t *testing.T) {
	c := New(config.Default())
	c.Frighten()
	tickN(c, 250)
	c.Frighten()
	assert.Equal(t, 300, c.FrightenedRemaining())
}

func TestClearAndReset(t *testing.T) {
	c := New(config.Default())
	tickN(c, 500)
	c.Frighten()
	c.ClearFrightened()
	assert.False(t, c.Frightened())
	assert.False(t, c.Tick().FrightenedEnded)

	c.Reset()
	assert.Equal(t, Scatter, c.Phase())
	assert.Equal(t, 420, c.PhaseRemaining())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "scatter", Scatter.String())
	assert.Equal(t, "chase", Chase.String())
	assert.Equal(t, "frightened", Frightened.String())
}

func TestModeTextRoundTrip(t *testing.T) {
	for _, m := range []Mode{Scatter, Chase, Frightened} {
		text, err := m.MarshalText()
		require.NoError(t, err)
		var got Mode
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, m, got)
	}
	var m Mode
	assert.Error(t, m.UnmarshalText([]byte("panic")))
}
