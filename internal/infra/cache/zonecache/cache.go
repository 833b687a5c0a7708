package zonecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

const keyPrefix = "zone:drive:"

type entry struct {
	Minutes       int     `json:"minutes"`
	DistanceMiles float64 `json:"distance_miles"`
}

// Cache кэш времени в пути между базой и почтовым индексом клиента
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics Metrics
}

// New создает кэш; metrics может быть nil
func New(client *redis.Client, ttl time.Duration, metrics Metrics) *Cache {
	return &Cache{client: client, ttl: ttl, metrics: metrics}
}

// Key ключ записи: zone:drive:<from>:<to> без пробелов
func Key(from, to string) string {
	return keyPrefix + compact(from) + ":" + compact(to)
}

// Get возвращает время в пути; ok=false если записи нет
func (c *Cache) Get(ctx context.Context, from, to string) (domain.DriveTime, bool, error) {
	raw, err := c.client.Get(ctx, Key(from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe(false)
		return domain.DriveTime{}, false, nil
	}
	if err != nil {
		return domain.DriveTime{}, false, fmt.Errorf("%w: Get - %v", ErrCacheRead, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// Битая запись считается промахом и будет перезаписана
		c.observe(false)
		return domain.DriveTime{}, false, nil
	}

	c.observe(true)
	return domain.DriveTime{Minutes: e.Minutes, DistanceMiles: e.DistanceMiles}, true, nil
}

// Set сохраняет время в пути на TTL
func (c *Cache) Set(ctx context.Context, from, to string, dt domain.DriveTime) error {
	raw, err := json.Marshal(entry{Minutes: dt.Minutes, DistanceMiles: dt.DistanceMiles})
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, Key(from, to), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCacheWrite, err)
	}

	return nil
}

func (c *Cache) observe(hit bool) {
	if c.metrics != nil {
		c.metrics.ObserveZoneCache(hit)
	}
}

func compact(postcode string) string {
	return strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
}
