package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notaryroom/pkg/api"
)

func notary() api.Participant {
	return api.Participant{SubmitterID: "sub-notary", Name: "Maria", Role: api.RoleNotary}
}

func client() api.Participant {
	return api.Participant{SubmitterID: "sub-client", Name: "Ivan", Role: api.RoleClient}
}

// runStoreSuite общий сценарий для обоих backend-ов presence
func runStoreSuite(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Join(ctx, "room-1", notary()))
	require.NoError(t, store.Join(ctx, "room-1", client()))
	require.NoError(t, store.Join(ctx, "room-2", api.Participant{
		SubmitterID: "sub-other", Name: "Olga", Role: api.RoleNotary,
	}))

	list, err := store.List(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := map[string]string{}
	for _, p := range list {
		ids[p.SubmitterID] = p.Role
	}
	assert.Equal(t, api.RoleNotary, ids["sub-notary"])
	assert.Equal(t, api.RoleClient, ids["sub-client"])

	require.NoError(t, store.Heartbeat(ctx, "room-1", "sub-client"))

	require.NoError(t, store.Leave(ctx, "room-1", "sub-client"))
	list, err = store.List(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sub-notary", list[0].SubmitterID)

	// Heartbeat ушедшего участника отклоняется
	assert.Error(t, store.Heartbeat(ctx, "room-1", "sub-client"))
}

func TestRedisStore(t *testing.T) {
	server := miniredis.RunT(t)
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: server.Addr()}))

	runStoreSuite(t, store)
}

func TestRedisStore_EntryExpires(t *testing.T) {
	server := miniredis.RunT(t)
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	ctx := context.Background()

	require.NoError(t, store.Join(ctx, "room-1", notary()))

	// Участник без heartbeat исчезает после TTL
	server.FastForward(entryTTL + time.Second)

	list, err := store.List(ctx, "room-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestMemoryStore_EntryExpires(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Join(ctx, "room-1", notary()))

	current = current.Add(entryTTL + time.Second)

	list, err := store.List(ctx, "room-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Error(t, store.Heartbeat(ctx, "room-1", "sub-notary"))
}
