package notify

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ToastHub keeps the open websocket connections the web client uses for
// in-app toasts. One user may have several tabs open.
type ToastHub struct {
	mu    sync.RWMutex
	conns map[int][]*websocket.Conn // user_id => connections
}

func NewToastHub() *ToastHub {
	return &ToastHub{conns: make(map[int][]*websocket.Conn)}
}

func (h *ToastHub) Name() string { return "toast" }

// Handler upgrades the request and parks the connection until the client
// goes away.
func (h *ToastHub) Handler(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("websocket upgrade failed")
			return
		}

		h.mu.Lock()
		h.conns[userID] = append(h.conns[userID], conn)
		h.mu.Unlock()
		log.Info().Int("user_id", userID).Msg("toast socket connected")

		defer func() {
			h.remove(userID, conn)
			conn.Close()
			log.Info().Int("user_id", userID).Msg("toast socket disconnected")
		}()

		// keep the connection alive
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

func (h *ToastHub) remove(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[userID]
	for i, c := range conns {
		if c == conn {
			h.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Send pushes a toast to every open connection for the user.
func (h *ToastHub) Send(userID int, msg Message) error {
	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.conns[userID]...)
	h.mu.RUnlock()

	if len(conns) == 0 {
		return fmt.Errorf("no open toast connections for user %d", userID)
	}

	var lastErr error
	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
