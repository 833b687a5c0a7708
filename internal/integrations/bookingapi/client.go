package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Client клиент публичного API бронирования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента API бронирования
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListServices получает каталог услуг
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []Service
	if err := c.do(ctx, http.MethodGet, "/api/booking/services", nil, nil, &services); err != nil {
		return nil, err
	}

	result := make([]domain.Service, len(services))
	for i, s := range services {
		result[i] = s.toDomain()
	}

	c.log.Info("Loaded %d services", len(result))
	return result, nil
}

// GetAvailability получает слоты и параметры поездки для почтового индекса и услуг
func (c *Client) GetAvailability(ctx context.Context, postcode string, serviceIDs []string) (*domain.AvailabilityResult, error) {
	query := url.Values{}
	query.Set("postcode", postcode)
	query.Set("service_ids", strings.Join(serviceIDs, ","))

	var availability Availability
	if err := c.do(ctx, http.MethodGet, "/api/booking/availability", query, nil, &availability); err != nil {
		return nil, err
	}

	c.log.Info("Availability for postcode=%s: zone=%s, slots=%d, manual_review=%t",
		availability.Postcode, availability.Zone, len(availability.Slots), availability.ManualReviewRequired)
	return availability.toDomain(), nil
}

// CalculateZone определяет зону и ценовой диапазон для почтового индекса
func (c *Client) CalculateZone(ctx context.Context, postcode string) (*domain.ZoneResult, error) {
	query := url.Values{}
	query.Set("postcode", postcode)

	var zone Zone
	if err := c.do(ctx, http.MethodGet, "/api/calculate-zone", query, nil, &zone); err != nil {
		return nil, err
	}

	return zone.toDomain(), nil
}

// Reserve отправляет бронирование
func (c *Client) Reserve(ctx context.Context, reservation Reservation) (*Outcome, error) {
	var resp ReserveResponse
	if err := c.do(ctx, http.MethodPost, "/api/booking/reserve", nil, newReserveRequest(reservation), &resp); err != nil {
		return nil, err
	}

	c.log.Info("Reservation %s created with status=%s", resp.Reference, resp.Status)
	return &Outcome{
		Status:     domain.BookingStatus(resp.Status),
		Reference:  resp.Reference,
		Message:    resp.Message,
		PaymentURL: resp.PaymentURL,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInvalidResponse, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		_ = json.Unmarshal(data, &errResp)

		c.log.Warn("%s %s returned status %d: %s", method, path, resp.StatusCode, errResp.Detail)
		return &APIError{StatusCode: resp.StatusCode, Detail: errResp.Detail}
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
