package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/notaryroom/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с relay
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес relay, с которым работает клиент
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateRoom создает комнату нотариальной сессии
func (c *Client) CreateRoom(ctx context.Context, req api.CreateRoomRequest) (*api.CreateRoomResponse, error) {
	var resp api.CreateRoomResponse
	err := c.doRequest(ctx, "POST", "/api/v1/rooms", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create room request failed: %w", err)
	}
	return &resp, nil
}

// GetRoomSalt получает имя комнаты и passcode_salt для деривации ключей
func (c *Client) GetRoomSalt(ctx context.Context, roomID string) (*api.RoomSaltResponse, error) {
	var resp api.RoomSaltResponse
	url := fmt.Sprintf("/api/v1/rooms/%s/salt", roomID)
	err := c.doRequest(ctx, "GET", url, "", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get room salt request failed: %w", err)
	}
	return &resp, nil
}

// JoinRoom подключает участника к существующей комнате
func (c *Client) JoinRoom(ctx context.Context, roomID string, req api.JoinRoomRequest) (*api.JoinRoomResponse, error) {
	var resp api.JoinRoomResponse
	url := fmt.Sprintf("/api/v1/rooms/%s/join", roomID)
	err := c.doRequest(ctx, "POST", url, "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("join room request failed: %w", err)
	}
	return &resp, nil
}

// Presence возвращает участников комнаты, находящихся онлайн
func (c *Client) Presence(ctx context.Context, roomID, token string) (*api.PresenceResponse, error) {
	var resp api.PresenceResponse
	url := fmt.Sprintf("/api/v1/rooms/%s/presence", roomID)
	err := c.doRequest(ctx, "GET", url, token, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("presence request failed: %w", err)
	}
	return &resp, nil
}

// SubmitTemplate отправляет итоговый шаблон на relay
func (c *Client) SubmitTemplate(ctx context.Context, token string, payload api.TemplatePayload) (*api.SubmitTemplateResponse, error) {
	var resp api.SubmitTemplateResponse
	err := c.doRequest(ctx, "POST", "/api/v1/templates", token, payload, &resp)
	if err != nil {
		return nil, fmt.Errorf("submit template request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
