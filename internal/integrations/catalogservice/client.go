package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService (курсы и требования расписаний)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourse получает курс по ID
func (c *Client) GetCourse(ctx context.Context, courseID int64) (*Course, error) {
	url := fmt.Sprintf("%s/internal/courses/%d", c.baseURL, courseID)

	var course Course
	if err := c.getJSON(ctx, url, &course, ErrCourseNotFound); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetScheduleRequirement получает опубликованное требование расписания курса
func (c *Client) GetScheduleRequirement(ctx context.Context, courseID int64) (*ScheduleRequirement, error) {
	url := fmt.Sprintf("%s/internal/courses/%d/schedule-requirement", c.baseURL, courseID)

	var requirement ScheduleRequirement
	if err := c.getJSON(ctx, url, &requirement, ErrRequirementNotFound); err != nil {
		return nil, err
	}

	return &requirement, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ.
// notFoundErr возвращается на 404, ErrUnavailable - на сетевые ошибки и 5xx.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CatalogService request failed: url=%s, error=%v", url, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return notFoundErr
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("CatalogService unavailable: url=%s, status=%d, body=%s", url, resp.StatusCode, string(body))
		return fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
