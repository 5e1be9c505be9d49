package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notaryroom/internal/client/storage"
)

// SaveReplica stores the encrypted replica blob for a room.
// Blob приходит уже зашифрованным cache-ключом комнаты.
func (s *Storage) SaveReplica(ctx context.Context, roomID string, data []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketReplica)
		if bucket == nil {
			return fmt.Errorf("replica bucket not found")
		}
		return bucket.Put([]byte(roomID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save replica: %w", err)
	}

	return nil
}

// GetReplica retrieves the encrypted replica blob for a room
func (s *Storage) GetReplica(ctx context.Context, roomID string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var out []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketReplica)
		if bucket == nil {
			return storage.ErrReplicaNotFound
		}

		data := bucket.Get([]byte(roomID))
		if data == nil {
			return storage.ErrReplicaNotFound
		}

		// Копируем: данные bbolt валидны только внутри транзакции
		out = make([]byte, len(data))
		copy(out, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteReplica removes the cached replica for a room
func (s *Storage) DeleteReplica(ctx context.Context, roomID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketReplica)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(roomID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete replica: %w", err)
	}

	return nil
}
