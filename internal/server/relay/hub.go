// Package relay содержит websocket-хаб комнат.
// Хаб ретранслирует дельты между участниками комнаты и ведет
// append-only журнал, который воспроизводится поздно присоединившимся:
// их пустая реплика сходится с активными без отдельного snapshot.
package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/internal/server/presence"
	"github.com/iudanet/notaryroom/internal/server/storage"
)

// Hub держит активные соединения комнат и журнал дельт
type Hub struct {
	deltas   storage.DeltaStorage
	presence presence.Store
	logger   *slog.Logger

	mu    sync.Mutex
	rooms map[string]map[*client]struct{}
}

// NewHub создает хаб комнат
func NewHub(deltas storage.DeltaStorage, presenceStore presence.Store, logger *slog.Logger) *Hub {
	return &Hub{
		deltas:   deltas,
		presence: presenceStore,
		logger:   logger,
		rooms:    make(map[string]map[*client]struct{}),
	}
}

// ServeConn обслуживает websocket-соединение участника комнаты.
// Блокируется до разрыва соединения. Сначала участник регистрируется
// в комнате, затем ему воспроизводится журнал: дубликаты и нарушение
// порядка безопасны, реплики сходятся на любом порядке доставки.
//
// Журнал пишется напрямую в соединение, минуя send-канал: его размер
// не ограничен буфером, а writePump еще не запущен и с записью не
// конкурирует. Живые дельты на время replay копятся в send-канале.
func (h *Hub) ServeConn(ctx context.Context, conn *websocket.Conn, roomID, submitterID string) {
	c := &client{
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		roomID:      roomID,
		submitterID: submitterID,
	}

	h.register(c)
	defer h.unregister(c)

	if err := h.replay(ctx, c); err != nil {
		h.logger.Error("delta log replay failed",
			"room_id", roomID, "submitter_id", submitterID, "error", err)
		return
	}

	go c.writePump()
	c.readPump(ctx)
}

// Broadcast рассылает сообщение всем участникам комнаты кроме отправителя.
// Пустой senderID доставляет всем
func (h *Hub) Broadcast(roomID string, payload []byte, senderID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[roomID] {
		if senderID != "" && c.submitterID == senderID {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Переполненный буфер: участник безнадежно отстал
			h.logger.Warn("dropping slow client",
				"room_id", roomID, "submitter_id", c.submitterID)
			close(c.send)
			delete(h.rooms[roomID], c)
		}
	}
}

// RoomSize возвращает число активных соединений комнаты
func (h *Hub) RoomSize(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[c.roomID] == nil {
		h.rooms[c.roomID] = make(map[*client]struct{})
	}
	h.rooms[c.roomID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if clients, ok := h.rooms[c.roomID]; ok {
		if _, registered := clients[c]; registered {
			close(c.send)
			delete(clients, c)
		}
		if len(clients) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	h.mu.Unlock()

	if err := h.presence.Leave(context.Background(), c.roomID, c.submitterID); err != nil {
		h.logger.Warn("presence leave failed",
			"room_id", c.roomID, "submitter_id", c.submitterID, "error", err)
	}
}

// replay пишет участнику весь журнал дельт комнаты напрямую в соединение
func (h *Hub) replay(ctx context.Context, c *client) error {
	deltas, err := h.deltas.ListDeltasSince(ctx, c.roomID, 0)
	if err != nil {
		return err
	}

	for _, delta := range deltas {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, delta.Payload); err != nil {
			return err
		}
	}

	h.logger.Info("delta log replayed",
		"room_id", c.roomID, "submitter_id", c.submitterID, "deltas", len(deltas))
	return nil
}

// handleInbound дописывает дельту в журнал и ретранслирует ее.
// Relay не разбирает payload: конфликтами занимаются реплики
func (h *Hub) handleInbound(ctx context.Context, c *client, payload []byte) {
	if _, err := h.deltas.AppendDelta(ctx, &models.RoomDelta{
		RoomID:    c.roomID,
		NodeID:    c.submitterID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		h.logger.Error("delta append failed",
			"room_id", c.roomID, "submitter_id", c.submitterID, "error", err)
		return
	}

	h.Broadcast(c.roomID, payload, c.submitterID)
}
