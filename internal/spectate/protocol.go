package spectate

import (
	"encoding/json"
	"errors"
	"fmt"

	"candychase/internal/entities"
)

// Envelope types sent by the server.
const (
	MsgWelcome = "welcome"
	MsgState   = "state"
)

// Client message types.
const (
	CmdDir     = "dir"
	CmdPause   = "pause"
	CmdResume  = "resume"
	CmdToggle  = "toggle"
	CmdRestart = "restart"
)

var ErrBadMessage = errors.New("spectate: bad message")

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type Welcome struct {
	ClientID string `json:"client_id"`
}

// ClientMessage is what a websocket client sends, e.g.
// {"type":"dir","dir":"left"} or {"type":"restart"}.
type ClientMessage struct {
	Type string `json:"type"`
	Dir  string `json:"dir,omitempty"`
}

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("%w: empty envelope type", ErrBadMessage)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload for %q", ErrBadMessage, t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty envelope", ErrBadMessage)
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("%w: empty payload for type %q", ErrBadMessage, env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// ParseClientMessage decodes and checks one client message.
func ParseClientMessage(b []byte) (ClientMessage, error) {
	var m ClientMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	switch m.Type {
	case CmdDir:
		if d, ok := entities.ParseDirection(m.Dir); !ok || d == entities.DirNone {
			return m, fmt.Errorf("%w: unknown direction %q", ErrBadMessage, m.Dir)
		}
	case CmdPause, CmdResume, CmdToggle, CmdRestart:
	default:
		return m, fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}
	return m, nil
}
