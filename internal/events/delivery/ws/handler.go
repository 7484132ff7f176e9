package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/uploadstudio/backend/internal/events"
	"github.com/uploadstudio/backend/pkg/logger"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API binds to localhost for the desktop renderer only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler streams upload events to connected UI clients.
type Handler struct {
	bus    *events.Bus
	logger logger.Logger
}

func NewHandler(bus *events.Bus, log logger.Logger) *Handler {
	return &Handler{bus: bus, logger: log}
}

// Stream upgrades the connection and forwards bus events until the client
// disconnects.
func (h *Handler) Stream() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			h.logger.Errorf("events ws upgrade: %v", err)
			return err
		}
		defer conn.Close()

		sub, unsubscribe := h.bus.Subscribe()
		defer unsubscribe()

		// Drain incoming frames so close/pong handling works.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					unsubscribe()
					return
				}
			}
		}()

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case ev, ok := <-sub:
				if !ok {
					return nil
				}
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(ev); err != nil {
					h.logger.Debugf("events ws write: %v", err)
					return nil
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return nil
				}
			}
		}
	}
}
