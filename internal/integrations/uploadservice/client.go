package uploadservice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UploadService (хранилище загруженных артефактов:
// подтверждения льгот и оплаты). Сервис хранит только ссылки на артефакты,
// сами файлы через него не проходят.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UploadService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CheckArtifact проверяет, что артефакт с указанной ссылкой существует
func (c *Client) CheckArtifact(ctx context.Context, ref string) error {
	checkURL := fmt.Sprintf("%s/internal/artifacts/%s", c.baseURL, url.PathEscape(ref))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, checkURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrArtifactNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// CheckArtifactWithGracefulDegradation проверяет существование артефакта
// с graceful degradation: если хранилище недоступно, возвращает
// ErrServiceDegraded, и вызывающая сторона может принять ссылку по одной
// локальной проверке формата. Отсутствие артефакта (404) пробрасывается
// как критичная бизнес-ошибка.
func (c *Client) CheckArtifactWithGracefulDegradation(ctx context.Context, ref string) error {
	err := c.CheckArtifact(ctx, ref)
	if err == nil {
		c.log.Info("Artifact verified: ref=%s", ref)
		return nil
	}

	if err == ErrArtifactNotFound {
		c.log.Warn("Artifact not found: ref=%s", ref)
		return err
	}

	// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
	c.log.Error("UploadService unavailable, applying graceful degradation for ref=%s: %v", ref, err)
	return fmt.Errorf("%w: ref=%s, error=%v", ErrServiceDegraded, ref, err)
}
