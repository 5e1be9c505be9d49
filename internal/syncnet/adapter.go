package syncnet

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/iudanet/notaryroom/internal/docstate"
	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/pkg/api"
)

//go:generate moq -out conn_mock.go . Conn

// Conn определяет интерфейс бинарного соединения с relay комнаты.
// Реализация отвечает за reconnect и backoff; адаптер их не делает.
type Conn interface {
	// Send отправляет один бинарный фрейм
	Send(data []byte) error

	// Receive блокируется до получения следующего фрейма.
	// Возвращает ошибку, когда соединение закрыто.
	Receive() ([]byte, error)

	// Close закрывает соединение
	Close() error
}

// Status состояние связи с relay
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnected
)

// String возвращает текстовое представление статуса
func (s Status) String() string {
	if s == StatusConnected {
		return "connected"
	}
	return "disconnected"
}

// Adapter связывает локальный Store с relay комнаты:
// локальные мутации уходят дельтами, входящие дельты мержатся в Store.
// Порядок и кратность доставки не важны - merge в Store идемпотентен.
type Adapter struct {
	store    *docstate.Store
	conn     Conn
	logger   *slog.Logger
	onStatus func(Status)
}

// New создает новый транспортный адаптер.
// Исходящая репликация активна с момента создания: мутации Store,
// сделанные до Run, не теряются.
func New(store *docstate.Store, conn Conn, logger *slog.Logger) *Adapter {
	a := &Adapter{
		store:  store,
		conn:   conn,
		logger: logger,
	}
	a.store.OnDelta(a.sendDelta)
	return a
}

// OnStatus устанавливает обработчик изменения состояния связи.
// Используется UI для индикации здоровья синхронизации.
func (a *Adapter) OnStatus(fn func(Status)) {
	a.onStatus = fn
}

// Run подключает адаптер к Store и обрабатывает входящие дельты
// до закрытия соединения или отмены контекста.
// Исходящие дельты при оборванном соединении не буферизуются:
// best-effort, политика переотправки принадлежит транспорту.
func (a *Adapter) Run(ctx context.Context) error {
	a.setStatus(StatusConnected)
	defer a.setStatus(StatusDisconnected)

	go func() {
		<-ctx.Done()
		if err := a.conn.Close(); err != nil {
			a.logger.Debug("close sync connection", "error", err)
		}
	}()

	for {
		data, err := a.conn.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Join(ErrConnectionClosed, err)
		}

		a.applyInbound(data)
	}
}

// ErrConnectionClosed возвращается из Run при обрыве соединения с relay
var ErrConnectionClosed = errors.New("sync connection closed")

// sendDelta сериализует и отправляет одну исходящую дельту
func (a *Adapter) sendDelta(record *models.Record) {
	data, err := json.Marshal(toAPIRecord(record))
	if err != nil {
		a.logger.Error("failed to marshal delta",
			"kind", record.Kind,
			"key", record.Key,
			"error", err)
		return
	}

	if err := a.conn.Send(data); err != nil {
		// Дельта потеряна для remote реплики, локальное состояние уже применено.
		// История relay закроет пробел при следующем подключении.
		a.logger.Warn("failed to send delta",
			"kind", record.Kind,
			"key", record.Key,
			"error", err)
	}
}

// applyInbound разбирает и мержит одну входящую дельту.
// Некорректный payload логируется и отбрасывается, не прерывая прием.
func (a *Adapter) applyInbound(data []byte) {
	var record api.Record
	if err := json.Unmarshal(data, &record); err != nil {
		a.logger.Warn("malformed delta dropped", "error", err, "size", len(data))
		return
	}

	a.store.ApplyRemote(fromAPIRecord(record))
}

// setStatus уведомляет об изменении состояния связи
func (a *Adapter) setStatus(status Status) {
	a.logger.Info("sync status changed", "status", status.String())
	if a.onStatus != nil {
		a.onStatus(status)
	}
}
