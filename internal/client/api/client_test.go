package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notaryroom/pkg/api"
)

func TestCreateRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/rooms", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.CreateRoomRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deed of sale", req.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.CreateRoomResponse{
			RoomID:      "room-1",
			SubmitterID: "sub-1",
			Token:       "jwt-token",
			ExpiresIn:   3600,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.CreateRoom(context.Background(), api.CreateRoomRequest{
		Name:       "deed of sale",
		NotaryName: "Maria",
	})
	require.NoError(t, err)
	assert.Equal(t, "room-1", resp.RoomID)
	assert.Equal(t, "jwt-token", resp.Token)
}

func TestGetRoomSalt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/rooms/room-1/salt", r.URL.Path)

		_ = json.NewEncoder(w).Encode(api.RoomSaltResponse{
			RoomName:     "deed of sale",
			PasscodeSalt: "c2FsdA==",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.GetRoomSalt(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Equal(t, "deed of sale", resp.RoomName)
	assert.Equal(t, "c2FsdA==", resp.PasscodeSalt)
}

func TestJoinRoom_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid passcode"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.JoinRoom(context.Background(), "room-1", api.JoinRoomRequest{
		AccessKey:   "Zm9v",
		DisplayName: "Ivan",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid passcode")
	assert.Contains(t, err.Error(), "403")
}

func TestAuthorizedRequests_CarryBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer room-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/api/v1/rooms/room-1/presence":
			_ = json.NewEncoder(w).Encode(api.PresenceResponse{
				Participants: []api.Participant{{SubmitterID: "sub-1", Name: "Maria", Role: api.RoleNotary}},
			})
		case "/api/v1/templates":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(api.SubmitTemplateResponse{SubmissionID: "subm-1"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	presence, err := client.Presence(context.Background(), "room-1", "room-token")
	require.NoError(t, err)
	require.Len(t, presence.Participants, 1)
	assert.Equal(t, "Maria", presence.Participants[0].Name)

	submitted, err := client.SubmitTemplate(context.Background(), "room-token", api.TemplatePayload{
		Template: api.Template{Name: "deed of sale"},
	})
	require.NoError(t, err)
	assert.Equal(t, "subm-1", submitted.SubmissionID)
}
