package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apiclient "github.com/iudanet/notaryroom/internal/client/api"
	"github.com/iudanet/notaryroom/internal/client/storage"
	"github.com/iudanet/notaryroom/internal/crypto"
	"github.com/iudanet/notaryroom/internal/docstate"
	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/internal/syncnet"
	"github.com/iudanet/notaryroom/pkg/api"
)

// Service управляет жизненным циклом участия в комнате: создание или
// вход, восстановление после перезапуска, синхронизация с relay и
// сохранение реплики в зашифрованный кэш.
type Service struct {
	logger   *slog.Logger
	client   *apiclient.Client
	sessions storage.SessionStorage
	replicas storage.ReplicaStorage

	store *docstate.Store
	cache *ReplicaCache
	meta  *storage.Session
}

// NewService создает сервис сессии комнаты
func NewService(logger *slog.Logger, client *apiclient.Client, sessions storage.SessionStorage, replicas storage.ReplicaStorage) *Service {
	return &Service{
		logger:   logger,
		client:   client,
		sessions: sessions,
		replicas: replicas,
	}
}

// Logger возвращает логгер сервиса для сопутствующих компонентов
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// Store возвращает реплику документа активной сессии
func (s *Service) Store() *docstate.Store {
	return s.store
}

// Meta возвращает данные активной сессии
func (s *Service) Meta() *storage.Session {
	return s.meta
}

// Create создает комнату от имени нотариуса.
// Соль генерируется локально, relay получает только производный
// access_key; код доступа дальше клиента не уходит.
func (s *Service) Create(ctx context.Context, name, notaryName, passcode, attachmentUUID string) (*storage.Session, error) {
	saltBase64, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	keys, err := crypto.DeriveRoomKeysFromBase64Salt(passcode, name, saltBase64)
	if err != nil {
		return nil, fmt.Errorf("derive room keys: %w", err)
	}

	resp, err := s.client.CreateRoom(ctx, api.CreateRoomRequest{
		Name:           name,
		NotaryName:     notaryName,
		AccessKey:      base64.StdEncoding.EncodeToString(keys.AccessKey),
		PasscodeSalt:   saltBase64,
		AttachmentUUID: attachmentUUID,
	})
	if err != nil {
		return nil, err
	}

	meta := &storage.Session{
		RoomID:         resp.RoomID,
		RoomName:       name,
		SubmitterID:    resp.SubmitterID,
		DisplayName:    notaryName,
		Role:           api.RoleNotary,
		Token:          resp.Token,
		PasscodeSalt:   saltBase64,
		AttachmentUUID: attachmentUUID,
		NodeID:         resp.SubmitterID,
		ServerURL:      s.client.BaseURL(),
		ExpiresAt:      time.Now().Unix() + resp.ExpiresIn,
	}

	if err := s.open(ctx, meta, keys, nil); err != nil {
		return nil, err
	}

	s.logger.Info("room created", "room_id", meta.RoomID, "room_name", name)
	return meta, nil
}

// Join подключает участника к существующей комнате.
// Access key выводится из кода доступа и соли комнаты; неверный код
// отбрасывается на relay без раскрытия самого кода.
func (s *Service) Join(ctx context.Context, roomID, passcode, displayName string) (*storage.Session, error) {
	salt, err := s.client.GetRoomSalt(ctx, roomID)
	if err != nil {
		return nil, err
	}

	keys, err := crypto.DeriveRoomKeysFromBase64Salt(passcode, salt.RoomName, salt.PasscodeSalt)
	if err != nil {
		return nil, fmt.Errorf("derive room keys: %w", err)
	}

	resp, err := s.client.JoinRoom(ctx, roomID, api.JoinRoomRequest{
		AccessKey:   base64.StdEncoding.EncodeToString(keys.AccessKey),
		DisplayName: displayName,
	})
	if err != nil {
		return nil, err
	}

	meta := &storage.Session{
		RoomID:         roomID,
		RoomName:       resp.RoomName,
		SubmitterID:    resp.SubmitterID,
		DisplayName:    displayName,
		Role:           api.RoleClient,
		Token:          resp.Token,
		PasscodeSalt:   salt.PasscodeSalt,
		AttachmentUUID: resp.AttachmentUUID,
		NodeID:         resp.SubmitterID,
		ServerURL:      s.client.BaseURL(),
		ExpiresAt:      time.Now().Unix() + resp.ExpiresIn,
	}

	if err := s.open(ctx, meta, keys, nil); err != nil {
		return nil, err
	}

	s.logger.Info("joined room", "room_id", roomID, "room_name", resp.RoomName)
	return meta, nil
}

// Resume восстанавливает сохраненную сессию после перезапуска клиента.
// Код доступа запрашивается заново: без него cache-ключ не вывести и
// локальная реплика остается нечитаемой.
func (s *Service) Resume(ctx context.Context, passcode string) (*storage.Session, error) {
	meta, err := s.sessions.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	if meta.ExpiresAt > 0 && time.Now().Unix() >= meta.ExpiresAt {
		return nil, fmt.Errorf("room token expired, join the room again")
	}

	keys, err := crypto.DeriveRoomKeysFromBase64Salt(passcode, meta.RoomName, meta.PasscodeSalt)
	if err != nil {
		return nil, fmt.Errorf("derive room keys: %w", err)
	}

	cache := NewReplicaCache(s.replicas, keys.CacheKey)
	records, err := cache.Load(ctx, meta.RoomID)
	if err != nil && !errors.Is(err, storage.ErrReplicaNotFound) {
		// Неверный код доступа проявляется именно здесь, как отказ GCM
		return nil, fmt.Errorf("open cached replica: %w", err)
	}

	if err := s.open(ctx, meta, keys, records); err != nil {
		return nil, err
	}

	s.logger.Info("session resumed",
		"room_id", meta.RoomID, "cached_records", len(records))
	return meta, nil
}

// open инициализирует реплику и сохраняет сессию
func (s *Service) open(ctx context.Context, meta *storage.Session, keys *crypto.RoomKeys, cached []*models.Record) error {
	store := docstate.NewWithNodeID(meta.NodeID, s.logger)
	if len(cached) > 0 {
		store.Bootstrap(cached)
	}

	if err := s.sessions.SaveSession(ctx, meta); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.store = store
	s.cache = NewReplicaCache(s.replicas, keys.CacheKey)
	s.meta = meta
	return nil
}

// Run держит websocket соединение с relay до отмены контекста или
// обрыва связи. Перед возвратом реплика сбрасывается в кэш, чтобы
// следующий запуск начинал с последнего известного состояния.
func (s *Service) Run(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("no active session")
	}

	conn, err := syncnet.Dial(ctx, s.meta.ServerURL, s.meta.RoomID, s.meta.Token)
	if err != nil {
		return err
	}

	adapter := syncnet.New(s.store, conn, s.logger)
	runErr := adapter.Run(ctx)

	if err := s.Persist(context.Background()); err != nil {
		s.logger.Warn("failed to persist replica cache", "error", err)
	}
	return runErr
}

// Persist сбрасывает текущее состояние реплики в зашифрованный кэш
func (s *Service) Persist(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("no active session")
	}
	return s.cache.Save(ctx, s.meta.RoomID, s.store.Records())
}

// Leave завершает сессию и удаляет локальные данные комнаты
func (s *Service) Leave(ctx context.Context) error {
	meta, err := s.sessions.GetSession(ctx)
	if err != nil {
		return err
	}

	if err := s.replicas.DeleteReplica(ctx, meta.RoomID); err != nil {
		return fmt.Errorf("delete replica: %w", err)
	}
	if err := s.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.store = nil
	s.cache = nil
	s.meta = nil

	s.logger.Info("left room", "room_id", meta.RoomID)
	return nil
}
