package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomToken_RoundTrip(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	token, expiresIn, err := service.GenerateRoomToken("room-1", "sub-notary", "notary", "Maria")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := service.ValidateRoomToken(token)
	require.NoError(t, err)
	assert.Equal(t, "room-1", claims.RoomID)
	assert.Equal(t, "sub-notary", claims.SubmitterID)
	assert.Equal(t, "notary", claims.Role)
	assert.Equal(t, "Maria", claims.DisplayName)
	assert.Equal(t, "sub-notary", claims.Subject)
}

func TestRoomToken_WrongSecret(t *testing.T) {
	service := NewService("secret-a", time.Hour)
	other := NewService("secret-b", time.Hour)

	token, _, err := service.GenerateRoomToken("room-1", "sub-1", "client", "Ivan")
	require.NoError(t, err)

	_, err = other.ValidateRoomToken(token)
	assert.Error(t, err)
}

func TestRoomToken_Expired(t *testing.T) {
	service := NewService("test-secret", -time.Minute)

	token, _, err := service.GenerateRoomToken("room-1", "sub-1", "client", "Ivan")
	require.NoError(t, err)

	_, err = service.ValidateRoomToken(token)
	assert.Error(t, err)
}

func TestRoomToken_Garbage(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	_, err := service.ValidateRoomToken("not.a.token")
	assert.Error(t, err)

	_, err = service.ValidateRoomToken("")
	assert.Error(t, err)
}
