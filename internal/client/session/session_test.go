package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/iudanet/notaryroom/internal/client/api"
	"github.com/iudanet/notaryroom/internal/client/storage"
	"github.com/iudanet/notaryroom/internal/client/storage/boltdb"
	"github.com/iudanet/notaryroom/internal/crypto"
	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testKeys(t *testing.T, passcode string) *crypto.RoomKeys {
	t.Helper()

	salt, err := crypto.GenerateSaltBase64()
	require.NoError(t, err)
	keys, err := crypto.DeriveRoomKeysFromBase64Salt(passcode, "deed of sale", salt)
	require.NoError(t, err)
	return keys
}

func testBolt(t *testing.T) *boltdb.Storage {
	t.Helper()

	s, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fieldRecord(key, nodeID string, ts int64) *models.Record {
	return &models.Record{
		Kind:      models.RecordKindField,
		Key:       key,
		NodeID:    nodeID,
		Timestamp: ts,
		Field: &models.Field{
			ID:          key,
			Type:        models.FieldTypeSignature,
			SubmitterID: nodeID,
			Areas:       []models.Area{{X: 0.1, Y: 0.2, W: 0.3, H: 0.05, Page: 1}},
		},
	}
}

func TestReplicaCache_RoundTrip(t *testing.T) {
	bolt := testBolt(t)
	keys := testKeys(t, "correct horse")
	cache := NewReplicaCache(bolt, keys.CacheKey)
	ctx := context.Background()

	records := []*models.Record{
		fieldRecord("f-1", "node-a", 1),
		fieldRecord("f-2", "node-b", 2),
	}
	// Tombstone тоже должен пережить кэширование
	records[1].Deleted = true

	require.NoError(t, cache.Save(ctx, "room-1", records))

	loaded, err := cache.Load(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "f-1", loaded[0].Key)
	assert.True(t, loaded[1].Deleted)

	// На диске лежит шифртекст, а не JSON реплики
	raw, err := bolt.GetReplica(ctx, "room-1")
	require.NoError(t, err)
	assert.False(t, json.Valid(raw))
}

func TestReplicaCache_WrongKeyFails(t *testing.T) {
	bolt := testBolt(t)
	ctx := context.Background()

	cache := NewReplicaCache(bolt, testKeys(t, "correct horse").CacheKey)
	require.NoError(t, cache.Save(ctx, "room-1", []*models.Record{fieldRecord("f-1", "node-a", 1)}))

	other := NewReplicaCache(bolt, testKeys(t, "wrong guess!").CacheKey)
	_, err := other.Load(ctx, "room-1")
	assert.Error(t, err)
}

func TestReplicaCache_Missing(t *testing.T) {
	cache := NewReplicaCache(testBolt(t), testKeys(t, "correct horse").CacheKey)

	_, err := cache.Load(context.Background(), "room-1")
	assert.ErrorIs(t, err, storage.ErrReplicaNotFound)
}

// relayStub отвечает на HTTP часть протокола relay
func relayStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/rooms", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateRoomRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.AccessKey)
		require.NotEmpty(t, req.PasscodeSalt)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.CreateRoomResponse{
			RoomID:      "room-1",
			SubmitterID: "sub-notary",
			Token:       "jwt-token",
			ExpiresIn:   3600,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestService_CreateThenResume(t *testing.T) {
	server := relayStub(t)
	bolt := testBolt(t)
	ctx := context.Background()

	svc := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, bolt)

	meta, err := svc.Create(ctx, "deed of sale", "Maria", "correct horse", "att-1")
	require.NoError(t, err)
	assert.Equal(t, "room-1", meta.RoomID)
	assert.Equal(t, api.RoleNotary, meta.Role)
	assert.Equal(t, "sub-notary", svc.Store().NodeID())

	// Наполняем реплику и сбрасываем в кэш
	svc.Store().AddField(&models.Field{
		ID:          "f-1",
		Type:        models.FieldTypeSignature,
		SubmitterID: meta.SubmitterID,
		Areas:       []models.Area{{X: 0.1, Y: 0.2, W: 0.3, H: 0.05, Page: 1}},
	})
	require.NoError(t, svc.Persist(ctx))

	// Новый процесс клиента: восстановление по коду доступа
	resumed := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, bolt)
	got, err := resumed.Resume(ctx, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, meta.RoomID, got.RoomID)

	snapshot := resumed.Store().Snapshot()
	require.Len(t, snapshot.Fields, 1)
	assert.Equal(t, "f-1", snapshot.Fields[0].ID)
}

// wrappingReplicas оборачивает ошибки хранилища контекстом слоя,
// как это делает любой реальный backend
type wrappingReplicas struct {
	storage.ReplicaStorage
}

func (w wrappingReplicas) GetReplica(ctx context.Context, roomID string) ([]byte, error) {
	data, err := w.ReplicaStorage.GetReplica(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("replica backend: %w", err)
	}
	return data, nil
}

func TestService_ResumeWithoutCachedReplica(t *testing.T) {
	server := relayStub(t)
	bolt := testBolt(t)
	ctx := context.Background()

	svc := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, bolt)
	_, err := svc.Create(ctx, "deed of sale", "Maria", "correct horse", "")
	require.NoError(t, err)

	// Кэш реплики не сбрасывался: промах, даже обернутый, это холодный
	// старт, а не ошибка восстановления
	resumed := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, wrappingReplicas{bolt})
	got, err := resumed.Resume(ctx, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "room-1", got.RoomID)
	assert.Empty(t, resumed.Store().Snapshot().Fields)
}

func TestService_ResumeWrongPasscode(t *testing.T) {
	server := relayStub(t)
	bolt := testBolt(t)
	ctx := context.Background()

	svc := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, bolt)
	_, err := svc.Create(ctx, "deed of sale", "Maria", "correct horse", "")
	require.NoError(t, err)
	require.NoError(t, svc.Persist(ctx))

	resumed := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, bolt)
	_, err = resumed.Resume(ctx, "wrong guess!")
	assert.Error(t, err)
}

func TestService_Leave(t *testing.T) {
	server := relayStub(t)
	bolt := testBolt(t)
	ctx := context.Background()

	svc := NewService(testLogger(), apiclient.NewClient(server.URL), bolt, bolt)
	meta, err := svc.Create(ctx, "deed of sale", "Maria", "correct horse", "")
	require.NoError(t, err)
	require.NoError(t, svc.Persist(ctx))

	require.NoError(t, svc.Leave(ctx))

	_, err = bolt.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	_, err = bolt.GetReplica(ctx, meta.RoomID)
	assert.ErrorIs(t, err, storage.ErrReplicaNotFound)
}
