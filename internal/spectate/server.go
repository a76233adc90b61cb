package spectate

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 4 << 10
)

var upgrader = websocket.Upgrader{
	// Spectators are expected to be served from anywhere on the LAN.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewRouter wires the HTTP routes onto a gin engine.
func NewRouter(h *Hub) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/snapshot", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		snap, err := h.Snapshot(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap)
	})

	r.POST("/control/:action", func(c *gin.Context) {
		action := c.Param("action")
		switch action {
		case CmdPause, CmdResume, CmdToggle, CmdRestart:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action " + action})
			return
		}
		if err := h.Send(c.Request.Context(), Command{Msg: ClientMessage{Type: action}}); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", func(c *gin.Context) {
		serveWS(h, c.Writer, c.Request)
	})

	return r
}

// wsConn is the hub's handle on one websocket. Send is only called from the
// hub goroutine; pings go through WriteControl, which may run concurrently.
type wsConn struct {
	conn *websocket.Conn
	once sync.Once
}

func (w *wsConn) Send(b []byte) error {
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) Close() error {
	var err error
	w.once.Do(func() { err = w.conn.Close() })
	return err
}

func serveWS(h *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	wc := &wsConn{conn: conn}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	reply := make(chan string, 1)
	if err := h.Send(r.Context(), Join{Conn: wc, Reply: reply}); err != nil {
		_ = wc.Close()
		return
	}
	var id string
	select {
	case id = <-reply:
	case <-h.Done():
		_ = wc.Close()
		return
	case <-r.Context().Done():
		_ = wc.Close()
		return
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read %s: %v", id, err)
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		m, err := ParseClientMessage(msg)
		if err != nil {
			log.Printf("client %s: %v", id, err)
			continue
		}
		if err := h.Send(r.Context(), Command{ClientID: id, Msg: m}); err != nil {
			break
		}
	}
	_ = h.Send(r.Context(), Leave{ClientID: id})
}
