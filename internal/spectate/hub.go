// Package spectate serves a running session over HTTP. One hub goroutine
// owns the session; websocket clients receive snapshots and may steer the
// player, and plain HTTP routes expose health, the latest snapshot and
// pause/restart controls.
package spectate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"candychase/internal/entities"
	"candychase/internal/session"
)

// ErrHubStopped is returned once Run has exited.
var ErrHubStopped = errors.New("spectate: hub stopped")

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join is issued once per accepted connection.
type Join struct {
	Conn  Conn
	Reply chan<- string
}

// Command is one parsed client message.
type Command struct {
	ClientID string
	Msg      ClientMessage
}

// Leave is issued on disconnect.
type Leave struct {
	ClientID string
}

// SnapshotRequest asks the hub for the current snapshot.
type SnapshotRequest struct {
	Reply chan<- session.Snapshot
}

type Hub struct {
	Inbox          chan any
	sess           *session.Session
	frame          time.Duration
	broadcastEvery int
	clients        map[string]Conn
	nextID         int
	frames         int
	// pending holds events from ticks not yet broadcast.
	pending []session.Event
	done    chan struct{}
}

// NewHub ticks s at ticksPerSecond and broadcasts every broadcastEvery
// ticks.
func NewHub(s *session.Session, ticksPerSecond, broadcastEvery int) *Hub {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	return &Hub{
		Inbox:          make(chan any, 256),
		sess:           s,
		frame:          time.Second / time.Duration(ticksPerSecond),
		broadcastEvery: broadcastEvery,
		clients:        make(map[string]Conn),
		nextID:         1,
		done:           make(chan struct{}),
	}
}

// Run owns the session until ctx is cancelled. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.frame)
	defer ticker.Stop()
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-h.Inbox:
			h.handleCommand(cmd)
		case <-ticker.C:
			h.step()
		}
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Send queues msg for the hub goroutine.
func (h *Hub) Send(ctx context.Context, msg any) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.Inbox <- msg:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot fetches the current snapshot from the hub goroutine.
func (h *Hub) Snapshot(ctx context.Context) (session.Snapshot, error) {
	reply := make(chan session.Snapshot, 1)
	if err := h.Send(ctx, SnapshotRequest{Reply: reply}); err != nil {
		return session.Snapshot{}, err
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-h.done:
		return session.Snapshot{}, ErrHubStopped
	case <-ctx.Done():
		return session.Snapshot{}, ctx.Err()
	}
}

func (h *Hub) step() {
	h.sess.Tick()
	h.pending = append(h.pending, h.sess.Events()...)
	h.frames++
	if h.frames%h.broadcastEvery == 0 {
		h.broadcast()
	}
}

func (h *Hub) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := fmt.Sprintf("c%d", h.nextID)
		h.nextID++
		h.clients[id] = c.Conn
		c.Reply <- id
		if b, err := Encode(MsgWelcome, Welcome{ClientID: id}); err == nil {
			_ = c.Conn.Send(b)
		}
		h.sendStateTo(id, c.Conn)
	case Command:
		if _, ok := h.clients[c.ClientID]; !ok && c.ClientID != "" {
			return
		}
		h.apply(c.Msg)
	case Leave:
		h.remove(c.ClientID)
	case SnapshotRequest:
		c.Reply <- h.sess.Snapshot()
	}
}

func (h *Hub) apply(m ClientMessage) {
	switch m.Type {
	case CmdDir:
		if d, ok := entities.ParseDirection(m.Dir); ok && d != entities.DirNone {
			h.sess.SetDirection(d)
		}
	case CmdPause:
		h.sess.Pause()
	case CmdResume:
		h.sess.Resume()
	case CmdToggle:
		h.sess.TogglePause()
	case CmdRestart:
		h.sess.Restart()
	}
}

// broadcast sends the current snapshot carrying every event since the
// previous broadcast.
func (h *Hub) broadcast() {
	snap := h.sess.Snapshot()
	snap.Events = h.pending
	h.pending = nil
	b, err := Encode(MsgState, snap)
	if err != nil {
		log.Printf("encode state: %v", err)
		return
	}
	var failed []string
	for id, c := range h.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		h.remove(id)
	}
}

// sendStateTo greets a new client without events; anything pending goes
// out with the next broadcast.
func (h *Hub) sendStateTo(id string, c Conn) {
	snap := h.sess.Snapshot()
	snap.Events = nil
	b, err := Encode(MsgState, snap)
	if err != nil {
		return
	}
	if err := c.Send(b); err != nil {
		h.remove(id)
	}
}

func (h *Hub) remove(id string) {
	if c, ok := h.clients[id]; ok {
		_ = c.Close()
		delete(h.clients, id)
	}
}

func (h *Hub) closeAll() {
	for id := range h.clients {
		h.remove(id)
	}
}

// NumClients is only safe to call from the hub goroutine or after Run
// returned.
func (h *Hub) NumClients() int {
	return len(h.clients)
}
