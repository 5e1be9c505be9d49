package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/notaryroom/pkg/api"
)

// MemoryStore presence без внешних зависимостей.
// Используется, когда redis не сконфигурирован: relay на одном
// инстансе обходится процессной памятью.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry // roomID:submitterID -> entry
	now     func() time.Time
}

type memoryEntry struct {
	participant api.Participant
	expiresAt   time.Time
	roomID      string
}

// NewMemoryStore creates an in-process presence store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) key(roomID, submitterID string) string {
	return roomID + ":" + submitterID
}

// Join registers a participant in the room and starts the TTL
func (s *MemoryStore) Join(_ context.Context, roomID string, participant api.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.key(roomID, participant.SubmitterID)] = memoryEntry{
		participant: participant,
		expiresAt:   s.now().Add(entryTTL),
		roomID:      roomID,
	}
	return nil
}

// Heartbeat extends the participant's presence TTL
func (s *MemoryStore) Heartbeat(_ context.Context, roomID, submitterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.key(roomID, submitterID)
	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return fmt.Errorf("presence entry expired for %s", submitterID)
	}

	entry.expiresAt = s.now().Add(entryTTL)
	s.entries[key] = entry
	return nil
}

// Leave removes the participant from the room
func (s *MemoryStore) Leave(_ context.Context, roomID, submitterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, s.key(roomID, submitterID))
	return nil
}

// List returns participants currently present in the room
func (s *MemoryStore) List(_ context.Context, roomID string) ([]api.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var participants []api.Participant
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
			continue
		}
		if entry.roomID == roomID {
			participants = append(participants, entry.participant)
		}
	}
	return participants, nil
}

// Close is a no-op for the in-process store
func (s *MemoryStore) Close() error { return nil }
