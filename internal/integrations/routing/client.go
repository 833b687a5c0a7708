package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Client клиент внешнего сервиса расчета времени в пути
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса маршрутов
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// DriveTime получает время в пути между двумя почтовыми индексами
func (c *Client) DriveTime(ctx context.Context, from, to string) (domain.DriveTime, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	endpoint := fmt.Sprintf("%s/v1/drive-time?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.DriveTime{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DriveTime{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return domain.DriveTime{}, ErrRouteNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.DriveTime{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var dt DriveTimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&dt); err != nil {
		return domain.DriveTime{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if dt.Minutes < 0 {
		return domain.DriveTime{}, fmt.Errorf("%w: negative drive time %d", ErrInvalidResponse, dt.Minutes)
	}

	c.log.Info("Drive time %s -> %s: %d min, %.1f miles", from, to, dt.Minutes, dt.DistanceMiles)
	return domain.DriveTime{Minutes: dt.Minutes, DistanceMiles: dt.DistanceMiles}, nil
}
