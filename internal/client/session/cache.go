// Package session собирает клиентскую сторону комнаты: деривацию ключей
// из кода доступа, локальный зашифрованный кэш реплики и подключение
// реплики документа к relay.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/notaryroom/internal/client/storage"
	"github.com/iudanet/notaryroom/internal/crypto"
	"github.com/iudanet/notaryroom/internal/models"
)

// ReplicaCache шифрует реплику документа cache-ключом комнаты перед
// записью в локальное хранилище. Ключ выводится из кода доступа и не
// покидает клиента: файл кэша без кода доступа нечитаем.
type ReplicaCache struct {
	replicas storage.ReplicaStorage
	cacheKey []byte
}

// NewReplicaCache создает кэш реплики поверх сырого хранилища
func NewReplicaCache(replicas storage.ReplicaStorage, cacheKey []byte) *ReplicaCache {
	return &ReplicaCache{
		replicas: replicas,
		cacheKey: cacheKey,
	}
}

// Save шифрует и сохраняет полный набор записей реплики.
// Tombstones сохраняются вместе с живыми записями: они нужны merge
// при повторном подключении.
func (c *ReplicaCache) Save(ctx context.Context, roomID string, records []*models.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal replica: %w", err)
	}

	encrypted, err := crypto.Encrypt(data, c.cacheKey)
	if err != nil {
		return fmt.Errorf("encrypt replica: %w", err)
	}

	if err := c.replicas.SaveReplica(ctx, roomID, encrypted); err != nil {
		return fmt.Errorf("save replica: %w", err)
	}
	return nil
}

// Load читает и расшифровывает кэшированную реплику комнаты.
// Возвращает storage.ErrReplicaNotFound, если кэша нет.
func (c *ReplicaCache) Load(ctx context.Context, roomID string) ([]*models.Record, error) {
	encrypted, err := c.replicas.GetReplica(ctx, roomID)
	if err != nil {
		return nil, err
	}

	data, err := crypto.Decrypt(encrypted, c.cacheKey)
	if err != nil {
		return nil, fmt.Errorf("decrypt replica: %w", err)
	}

	var records []*models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal replica: %w", err)
	}
	return records, nil
}
