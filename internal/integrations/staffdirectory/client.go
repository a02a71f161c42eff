package staffdirectory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PlaceholderName подставное имя мастера, когда справочник недоступен
// или запись отсутствует. Недоступность справочника никогда не блокирует
// операции расписания
const PlaceholderName = "Unknown tailor"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со справочником персонала
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника персонала
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStaff получает сотрудника по ID
func (c *Client) GetStaff(ctx context.Context, staffID int64) (*Staff, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, staffID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid staff ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrStaffNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var staff Staff
	if err := json.NewDecoder(resp.Body).Decode(&staff); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &staff, nil
}

// ResolveName возвращает отображаемое имя мастера с graceful degradation
// Любая ошибка справочника (нет записи, сервис недоступен, таймаут) даёт
// подставное имя и никогда не прерывает вызывающую операцию
func (c *Client) ResolveName(ctx context.Context, staffID int64) string {
	staff, err := c.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			c.log.Warn("ResolveName: staff id=%d not found in directory", staffID)
		} else {
			c.log.Error("ResolveName: staff directory unavailable for id=%d, using placeholder: %v", staffID, err)
		}
		return PlaceholderName
	}

	if staff.DisplayName == "" {
		return PlaceholderName
	}
	return staff.DisplayName
}
