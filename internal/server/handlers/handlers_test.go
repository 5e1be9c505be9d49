package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notaryroom/internal/crypto"
	"github.com/iudanet/notaryroom/internal/server"
	"github.com/iudanet/notaryroom/internal/server/handlers"
	"github.com/iudanet/notaryroom/internal/server/jwt"
	"github.com/iudanet/notaryroom/internal/server/presence"
	"github.com/iudanet/notaryroom/internal/server/relay"
	"github.com/iudanet/notaryroom/internal/server/storage/sqlite"
	"github.com/iudanet/notaryroom/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testRelay struct {
	server  *httptest.Server
	storage *sqlite.Storage
	tokens  *jwt.Service
}

func newTestRelay(t *testing.T) *testRelay {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := testLogger()
	presenceStore := presence.NewMemoryStore()
	tokens := jwt.NewService("test-secret", time.Hour)
	hub := relay.NewHub(store, presenceStore, logger)

	router := server.NewRouter(logger, tokens, server.Handlers{
		Rooms:     handlers.NewRoomsHandler(logger, store, presenceStore, tokens),
		Templates: handlers.NewTemplatesHandler(logger, store),
		WS:        handlers.NewWSHandler(logger, hub, presenceStore),
		Health:    handlers.NewHealthHandler(logger, "test"),
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &testRelay{server: ts, storage: store, tokens: tokens}
}

func (tr *testRelay) postJSON(t *testing.T, path, token string, body, out interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, tr.server.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (tr *testRelay) getJSON(t *testing.T, path, token string, out interface{}) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, tr.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// createRoom проделывает клиентскую часть создания комнаты: генерирует
// соль, выводит ключи из кода доступа и шлет производный access_key.
func createRoom(t *testing.T, tr *testRelay, name, passcode string) api.CreateRoomResponse {
	t.Helper()

	saltBase64, err := crypto.GenerateSaltBase64()
	require.NoError(t, err)
	keys, err := crypto.DeriveRoomKeysFromBase64Salt(passcode, name, saltBase64)
	require.NoError(t, err)

	var created api.CreateRoomResponse
	resp := tr.postJSON(t, "/api/v1/rooms", "", api.CreateRoomRequest{
		Name:           name,
		NotaryName:     "Maria",
		AccessKey:      base64Encode(keys.AccessKey),
		PasscodeSalt:   saltBase64,
		AttachmentUUID: "att-1",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.Token)
	return created
}

// joinRoom проделывает клиентскую часть входа: забирает соль комнаты,
// выводит access_key и предъявляет его.
func joinRoom(t *testing.T, tr *testRelay, roomID, passcode, displayName string) (api.JoinRoomResponse, int) {
	t.Helper()

	var salt api.RoomSaltResponse
	resp := tr.getJSON(t, "/api/v1/rooms/"+roomID+"/salt", "", &salt)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	keys, err := crypto.DeriveRoomKeysFromBase64Salt(passcode, salt.RoomName, salt.PasscodeSalt)
	require.NoError(t, err)

	var joined api.JoinRoomResponse
	resp = tr.postJSON(t, "/api/v1/rooms/"+roomID+"/join", "", api.JoinRoomRequest{
		AccessKey:   base64Encode(keys.AccessKey),
		DisplayName: displayName,
	}, &joined)
	return joined, resp.StatusCode
}

func base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func TestHealth(t *testing.T) {
	tr := newTestRelay(t)

	var health handlers.HealthResponse
	resp := tr.getJSON(t, "/api/v1/health", "", &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Status)
}

func TestRoomLifecycle(t *testing.T) {
	tr := newTestRelay(t)

	created := createRoom(t, tr, "deed of sale", "correct horse")

	joined, status := joinRoom(t, tr, created.RoomID, "correct horse", "Ivan")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "deed of sale", joined.RoomName)
	assert.Equal(t, "att-1", joined.AttachmentUUID)
	assert.NotEmpty(t, joined.Token)
	assert.NotEqual(t, created.SubmitterID, joined.SubmitterID)
}

func TestJoinRoom_WrongPasscode(t *testing.T) {
	tr := newTestRelay(t)

	created := createRoom(t, tr, "deed of sale", "correct horse")

	_, status := joinRoom(t, tr, created.RoomID, "wrong guess!", "Ivan")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestJoinRoom_UnknownRoom(t *testing.T) {
	tr := newTestRelay(t)

	resp := tr.getJSON(t, "/api/v1/rooms/missing/salt", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRoom_Validation(t *testing.T) {
	tr := newTestRelay(t)

	resp := tr.postJSON(t, "/api/v1/rooms", "", api.CreateRoomRequest{
		Name:       "ab", // слишком короткое
		NotaryName: "Maria",
		AccessKey:  "Zm9v",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = tr.postJSON(t, "/api/v1/rooms", "", api.CreateRoomRequest{
		Name:         "deed of sale",
		NotaryName:   "Maria",
		AccessKey:    "not base64!!!",
		PasscodeSalt: "c2FsdA==",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPresence_Authorization(t *testing.T) {
	tr := newTestRelay(t)

	created := createRoom(t, tr, "deed of sale", "correct horse")

	// Без токена
	resp := tr.getJSON(t, "/api/v1/rooms/"+created.RoomID+"/presence", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Токен чужой комнаты
	otherToken, _, err := tr.tokens.GenerateRoomToken("other-room", "sub-x", api.RoleClient, "Eve")
	require.NoError(t, err)
	resp = tr.getJSON(t, "/api/v1/rooms/"+created.RoomID+"/presence", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Свой токен, пока никто не подключен
	var presenceResp api.PresenceResponse
	resp = tr.getJSON(t, "/api/v1/rooms/"+created.RoomID+"/presence", created.Token, &presenceResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, presenceResp.Participants)
}

// TestWebsocket_DeltaExchangeAndPresence: полный путь участника —
// вход, websocket, обмен дельтами, появление в presence.
func TestWebsocket_DeltaExchangeAndPresence(t *testing.T) {
	tr := newTestRelay(t)

	created := createRoom(t, tr, "deed of sale", "correct horse")
	joined, status := joinRoom(t, tr, created.RoomID, "correct horse", "Ivan")
	require.Equal(t, http.StatusOK, status)

	wsBase := "ws" + strings.TrimPrefix(tr.server.URL, "http")

	dialWS := func(token string) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(
			wsBase+"/ws/rooms/"+created.RoomID+"?token="+token, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	}

	notaryConn := dialWS(created.Token)
	clientConn := dialWS(joined.Token)

	// Оба участника видны в presence
	require.Eventually(t, func() bool {
		var presenceResp api.PresenceResponse
		resp := tr.getJSON(t, "/api/v1/rooms/"+created.RoomID+"/presence", created.Token, &presenceResp)
		return resp.StatusCode == http.StatusOK && len(presenceResp.Participants) == 2
	}, 2*time.Second, 20*time.Millisecond)

	// Дельта нотариуса доходит до клиента
	require.NoError(t, notaryConn.WriteMessage(websocket.BinaryMessage, []byte(`{"kind":"field"}`)))

	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := clientConn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"kind":"field"}`), payload)
}

func TestWebsocket_TokenRoomMismatch(t *testing.T) {
	tr := newTestRelay(t)

	created := createRoom(t, tr, "deed of sale", "correct horse")

	otherToken, _, err := tr.tokens.GenerateRoomToken("other-room", "sub-x", api.RoleClient, "Eve")
	require.NoError(t, err)

	wsBase := "ws" + strings.TrimPrefix(tr.server.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(
		wsBase+"/ws/rooms/"+created.RoomID+"?token="+otherToken, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTemplates_Submit(t *testing.T) {
	tr := newTestRelay(t)

	created := createRoom(t, tr, "deed of sale", "correct horse")

	payload := api.TemplatePayload{Template: api.Template{
		Name: "deed of sale",
		Schema: []api.SchemaItem{
			{Name: "deed.pdf", AttachmentUUID: "att-1"},
		},
		Submitters: []api.Submitter{
			{Name: "Maria", UUID: created.SubmitterID},
		},
		Fields: []api.TemplateField{
			{ID: "f-1", Type: "signature", SubmitterID: created.SubmitterID},
		},
	}}

	// Без токена
	resp := tr.postJSON(t, "/api/v1/templates", "", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// С токеном
	var submitted api.SubmitTemplateResponse
	resp = tr.postJSON(t, "/api/v1/templates", created.Token, payload, &submitted)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, submitted.SubmissionID)

	// Шаблон осел в storage с привязкой к комнате из токена
	saved, err := tr.storage.GetSubmission(context.Background(), submitted.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, created.RoomID, saved.RoomID)
	assert.Equal(t, "deed of sale", saved.Name)

	// Шаблон без полей отклоняется
	empty := api.TemplatePayload{Template: api.Template{Name: "empty"}}
	resp = tr.postJSON(t, "/api/v1/templates", created.Token, empty, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
