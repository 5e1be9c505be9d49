package syncnet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

// WSConn реализует Conn поверх gorilla websocket соединения с relay
type WSConn struct {
	conn *websocket.Conn
}

// Dial открывает websocket соединение с relay комнаты.
// baseURL - адрес relay (http:// или ws://), token - JWT комнаты.
func Dial(ctx context.Context, baseURL, roomID, token string) (*WSConn, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid relay url: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws/rooms/" + roomID

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("relay dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("relay dial failed: %w", err)
	}

	return &WSConn{conn: conn}, nil
}

// NewWSConn оборачивает уже установленное websocket соединение
func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

// Send отправляет дельту бинарным фреймом
func (c *WSConn) Send(data []byte) error {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Receive блокируется до следующего фрейма от relay
func (c *WSConn) Receive() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	return data, nil
}

// Close закрывает соединение
func (c *WSConn) Close() error {
	return c.conn.Close()
}
