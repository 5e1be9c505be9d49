package relay

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// Тайминги и лимиты websocket-соединения
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
	sendBuffer     = 64
)

// client одно websocket-соединение участника комнаты
type client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	roomID      string
	submitterID string
}

// readPump читает входящие дельты до разрыва соединения.
// Pong продлевает дедлайн чтения и запись присутствия участника
func (c *client) readPump(ctx context.Context) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.hub.presence.Heartbeat(ctx, c.roomID, c.submitterID); err != nil {
			c.hub.logger.Warn("presence heartbeat failed",
				"room_id", c.roomID, "submitter_id", c.submitterID, "error", err)
		}
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket closed unexpectedly",
					"room_id", c.roomID, "submitter_id", c.submitterID, "error", err)
			}
			return
		}

		c.hub.handleInbound(ctx, c, payload)
	}
}

// writePump доставляет исходящие сообщения и шлет периодический ping
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал: соединение снято с регистрации
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
