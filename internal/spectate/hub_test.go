package spectate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candychase/internal/config"
	"candychase/internal/entities"
	"candychase/internal/session"
)

type fakeConn struct {
	sendCh chan []byte
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	select {
	case f.sendCh <- cp:
	default:
	}
	return nil
}

func (f *fakeConn) Close() error {
	return nil
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	s, err := session.New(config.Default())
	require.NoError(t, err)
	h := NewHub(s, 120, 2)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func nextOfType(t *testing.T, ch <-chan []byte, typ string) Envelope {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case b := <-ch:
			env, err := DecodeEnvelope(b)
			require.NoError(t, err)
			if env.T == typ {
				return env
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", typ)
		}
	}
}

func TestJoinGetsWelcomeThenState(t *testing.T) {
	h := startHub(t)
	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	reply := make(chan string, 1)
	h.Inbox <- Join{Conn: fc, Reply: reply}
	id := <-reply
	assert.Equal(t, "c1", id)

	env := nextOfType(t, fc.sendCh, MsgWelcome)
	w, err := DecodePayload[Welcome](env)
	require.NoError(t, err)
	assert.Equal(t, id, w.ClientID)

	st, err := DecodePayload[session.Snapshot](nextOfType(t, fc.sendCh, MsgState))
	require.NoError(t, err)
	assert.Equal(t, 28, st.Width)
	require.Len(t, st.Ghosts, 4)
	assert.Equal(t, entities.Chaser, st.Ghosts[0].Personality)
	assert.Empty(t, st.Events)
}

func TestCommandsReachTheSession(t *testing.T) {
	h := startHub(t)
	ctx := context.Background()

	before, err := h.Snapshot(ctx)
	require.NoError(t, err)

	h.Inbox <- Command{Msg: ClientMessage{Type: CmdDir, Dir: "left"}}
	require.Eventually(t, func() bool {
		snap, err := h.Snapshot(ctx)
		return err == nil && snap.Player.X < before.Player.X
	}, 2*time.Second, 10*time.Millisecond)

	h.Inbox <- Command{Msg: ClientMessage{Type: CmdPause}}
	snap, err := h.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Paused, snap.State)

	h.Inbox <- Command{Msg: ClientMessage{Type: CmdRestart}}
	snap, err = h.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Playing, snap.State)
}

func TestUnknownClientIsIgnored(t *testing.T) {
	h := startHub(t)
	h.Inbox <- Command{ClientID: "c99", Msg: ClientMessage{Type: CmdPause}}
	snap, err := h.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Playing, snap.State)
}

func TestSnapshotHonorsContext(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	h := NewHub(s, 60, 1) // never run
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = h.Snapshot(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLeaveDropsClient(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	h := NewHub(s, 60, 1)
	fc := &fakeConn{sendCh: make(chan []byte, 8)}
	reply := make(chan string, 1)

	h.handleCommand(Join{Conn: fc, Reply: reply})
	id := <-reply
	assert.Equal(t, 1, h.NumClients())

	h.handleCommand(Leave{ClientID: id})
	assert.Equal(t, 0, h.NumClients())
}

func TestParseClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"dir", `{"type":"dir","dir":"Up"}`, false},
		{"restart", `{"type":"restart"}`, false},
		{"bad dir", `{"type":"dir","dir":"sideways"}`, true},
		{"none dir", `{"type":"dir","dir":"none"}`, true},
		{"bad type", `{"type":"jump"}`, true},
		{"not json", `nope`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClientMessage([]byte(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeRejectsEmpty(t *testing.T) {
	_, err := Encode("", Welcome{})
	assert.ErrorIs(t, err, ErrBadMessage)
	_, err = Encode(MsgState, nil)
	assert.ErrorIs(t, err, ErrBadMessage)
	_, err = DecodeEnvelope(nil)
	assert.ErrorIs(t, err, ErrBadMessage)
}

func TestStateRoundTripsThroughCodec(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	released := false
	for i := 0; i < 200 && !released; i++ {
		s.Tick()
		for _, ev := range s.Events() {
			released = released || ev.Kind == session.EventGhostReleased
		}
	}
	require.True(t, released)

	want := s.Snapshot()
	b, err := Encode(MsgState, want)
	require.NoError(t, err)
	env, err := DecodeEnvelope(b)
	require.NoError(t, err)
	got, err := DecodePayload[session.Snapshot](env)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, session.EventGhostReleased, got.Events[0].Kind)

	s.Pause()
	b, err = Encode(MsgState, s.Snapshot())
	require.NoError(t, err)
	env, err = DecodeEnvelope(b)
	require.NoError(t, err)
	got, err = DecodePayload[session.Snapshot](env)
	require.NoError(t, err)
	assert.Equal(t, session.Paused, got.State)
}

func TestBroadcastCarriesEveryEvent(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	h := NewHub(s, 60, 3)
	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	reply := make(chan string, 1)
	h.handleCommand(Join{Conn: fc, Reply: reply})
	<-reply
	nextOfType(t, fc.sendCh, MsgWelcome)
	nextOfType(t, fc.sendCh, MsgState)

	start := s.Snapshot().Remaining
	s.SetDirection(entities.DirLeft)
	for i := 0; i < 60; i++ {
		h.step()
	}
	eaten := start - s.Snapshot().Remaining
	require.Positive(t, eaten)

	dots, states := 0, 0
	for len(fc.sendCh) > 0 {
		st, err := DecodePayload[session.Snapshot](nextOfType(t, fc.sendCh, MsgState))
		require.NoError(t, err)
		states++
		for _, ev := range st.Events {
			if ev.Kind == session.EventDot {
				dots++
			}
		}
	}
	assert.Equal(t, 20, states)
	assert.Equal(t, eaten, dots)
	assert.Equal(t, s.Score(), dots*10)
}

func TestStoppedHubRefusesWork(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	h := NewHub(s, 60, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	_, err = h.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrHubStopped)
	assert.ErrorIs(t, h.Send(context.Background(), Leave{ClientID: "c1"}), ErrHubStopped)
}
