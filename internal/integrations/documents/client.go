package documents

import (
	"context"
	"encoding/json"
	"errors"
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

// Summary сводка загруженных документов бронирования
// Движок видит только наличие документов; содержимое и ссылки
// принадлежат внешнему сервису
type Summary struct {
	Payments       int `json:"payments"`
	GuestDocuments int `json:"guestDocuments"`
}

// Complete возвращает true, когда загружен хотя бы один платёжный документ
// и документы всех гостей
func (s *Summary) Complete(guestCount int) bool {
	return s.Payments > 0 && s.GuestDocuments >= guestCount
}

// Client клиент для работы с DocumentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента DocumentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSummary получает сводку документов бронирования
func (c *Client) GetSummary(ctx context.Context, bookingID int64) (*Summary, error) {
	url := fmt.Sprintf("%s/internal/bookings/%d/documents/summary", c.baseURL, bookingID)

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

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrSummaryNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &summary, nil
}

// GetSummaryWithGracefulDegradation получает сводку документов с graceful
// degradation: при недоступности сервиса возвращает ErrServiceDegraded,
// позволяя отдать бронирование без сводки документов
func (c *Client) GetSummaryWithGracefulDegradation(ctx context.Context, bookingID int64) (*Summary, error) {
	summary, err := c.GetSummary(ctx, bookingID)
	if err != nil {
		// Отсутствие документов - нормальная бизнес-ситуация
		if errors.Is(err, ErrSummaryNotFound) {
			return &Summary{}, nil
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки
		// парсинга) применяем graceful degradation
		c.log.Error("DocumentService unavailable, applying graceful degradation for booking_id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, bookingID, err)
	}

	return summary, nil
}
