package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iudanet/notaryroom/pkg/api"
)

// Result сообщает, каким путем доставлен экспорт
type Result struct {
	// Path путь локального файла; пуст при удаленной доставке
	Path string

	// Remote true, если endpoint принял шаблон
	Remote bool
}

// Submitter доставляет собранный шаблон.
// Удаленная отправка идет первой; любой ее отказ (сетевой сбой,
// не-2xx ответ) переводит на запись локального файла.
type Submitter struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string
	token      string
	dir        string
}

// NewSubmitter создает доставщик экспорта.
// endpoint URL submission endpoint; dir каталог для fallback-файлов.
func NewSubmitter(endpoint, dir string, logger *slog.Logger) *Submitter {
	return &Submitter{
		endpoint: endpoint,
		dir:      dir,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken задает bearer-токен комнаты для удаленной отправки
func (s *Submitter) SetToken(token string) {
	s.token = token
}

// Submit доставляет payload и сообщает, какой путь сработал
func (s *Submitter) Submit(ctx context.Context, payload *api.TemplatePayload) (*Result, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal template payload: %w", err)
	}

	if err := s.post(ctx, data); err == nil {
		s.logger.Info("template submitted", "template", payload.Template.Name)
		return &Result{Remote: true}, nil
	} else {
		s.logger.Warn("remote submission failed, falling back to local file",
			"template", payload.Template.Name, "error", err)
	}

	path, err := s.writeFile(payload.Template.Name, data)
	if err != nil {
		return nil, fmt.Errorf("local fallback failed: %w", err)
	}

	s.logger.Info("template saved locally", "path", path)
	return &Result{Path: path}, nil
}

// post выполняет единственный POST на submission endpoint.
// Успех означает "принято"; любой не-2xx статус считается отказом.
func (s *Submitter) post(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submission request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submission endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *Submitter) writeFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.json", sanitizeName(name), time.Now().Format("20060102-150405"))
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// sanitizeName оставляет в имени файла только безопасные символы
func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "template"
	}
	return string(out)
}
