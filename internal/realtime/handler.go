package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	hub *Hub
}

func NewController(hub *Hub) *Controller {
	return &Controller{hub: hub}
}

// StreamLocation upgrades the request and streams slot changes of one location
func (ctrl *Controller) StreamLocation(c *gin.Context) {
	snapshot, err := ctrl.hub.Snapshot(c.Param("id"))
	if err != nil {
		if errors.Is(err, parking.ErrLocationNotFound) {
			response.Error(c, http.StatusNotFound, "Location not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load location", err.Error())
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ctrl.hub.logger.Warn("WebSocket upgrade error", "error", err)
		return
	}

	client := NewClient(snapshot.LocationID)
	if payload, err := json.Marshal(snapshot); err == nil {
		client.send <- payload
	}
	ctrl.hub.Register(client)

	go writePump(conn, client)
	go readPump(conn, client, ctrl.hub)
}

func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; the stream is one way
func readPump(conn *websocket.Conn, client *Client, hub *Hub) {
	defer func() {
		hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				hub.logger.Warn("WebSocket read error", "error", err)
			}
			return
		}
	}
}
