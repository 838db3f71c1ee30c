// internal/httpserver/stream.go
//
// Websocket stream for one session: GET /ws/round/{id}.
// The server pushes a snapshot on connect and after every change (ticks
// included). The client may send actions on the same socket:
//   {"type":"select","row":1,"col":2} | {"type":"submit"} | {"type":"restart"} | {"type":"name","name":"amy"}

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/session"
	"github.com/robalobadob/wordgrid/internal/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

type streamAction struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Name string `json:"name"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == s.cfg.ClientOrigin
		},
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
		return
	}
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	updates, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go s.readActions(conn, sess, done)

	if err := writeSnapshot(conn, sess.Snapshot()); err != nil {
		return
	}
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeSnapshot(conn, snap); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-s.base.Done():
			return
		}
	}
}

// readActions applies client actions until the socket closes. Results come
// back through the subscription, so nothing is written here.
func (s *Server) readActions(conn *websocket.Conn, sess *session.Session, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var a streamAction
		if err := conn.ReadJSON(&a); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session", sess.ID()).Msg("websocket read")
			}
			return
		}
		switch a.Type {
		case "select":
			sess.Select(a.Row, a.Col)
		case "submit":
			if _, _, err := sess.TrySubmit(); err != nil {
				log.Debug().Err(err).Str("session", sess.ID()).Msg("websocket submit refused")
			}
		case "restart":
			sess.Restart()
		case "name":
			sess.SetName(a.Name)
		default:
			log.Debug().Str("type", a.Type).Msg("unknown websocket action")
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snap game.Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}
