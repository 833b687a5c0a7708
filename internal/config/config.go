package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-MobileDiagnostics/pkg/types"
)

var (
	// ErrInvalidConfig возвращается, когда значения конфигурации несовместимы
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Routing   RoutingConfig   `toml:"routing"`
	Payments  PaymentsConfig  `toml:"payments"`
	Events    EventsConfig    `toml:"events"`
	Admin     AdminConfig     `toml:"admin"`
	Booking   BookingConfig   `toml:"booking"`
	Zones     ZonesConfig     `toml:"zones"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения в формате URL (для golang-migrate)
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш времени в пути
type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	DriveTimeTTL int    `toml:"drive_time_ttl"` // секунды
}

// RoutingConfig внешний сервис расчета времени в пути
// Пустой URL - используется только таблица районов
type RoutingConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// PaymentsConfig депозиты через Stripe Checkout
type PaymentsConfig struct {
	Enabled    bool    `toml:"enabled"`
	DryRun     bool    `toml:"dry_run"`
	SecretKey  string  `toml:"secret_key"`
	Currency   string  `toml:"currency"`
	DepositGBP float64 `toml:"deposit_gbp"`
	SuccessURL string  `toml:"success_url"`
	CancelURL  string  `toml:"cancel_url"`
}

// EventsConfig публикация событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// AdminConfig админка с cookie-сессией
type AdminConfig struct {
	SessionSecret string      `toml:"session_secret"`
	SessionTTL    int         `toml:"session_ttl"` // минуты
	CookieName    string      `toml:"cookie_name"`
	CookieSecure  bool        `toml:"cookie_secure"`
	Users         []AdminUser `toml:"users"`
}

// AdminUser пользователь админки (bcrypt хэш пароля)
type AdminUser struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
}

// DayHours рабочие часы на день недели
type DayHours struct {
	Open  types.TimeString `toml:"open"`
	Close types.TimeString `toml:"close"`
}

// BookingConfig правила генерации слотов
type BookingConfig struct {
	Timezone              string              `toml:"timezone"`
	HorizonDays           int                 `toml:"horizon_days"`
	SlotStepMinutes       int                 `toml:"slot_step_minutes"`
	TravelBufferStep      int                 `toml:"travel_buffer_step"`
	MaxConcurrentBookings int                 `toml:"max_concurrent_bookings"`
	WorkingHours          map[string]DayHours `toml:"working_hours"` // ключи: monday..sunday
}

// Location часовой пояс бизнеса
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// HoursFor рабочие часы на день недели; ok=false если выходной
func (b BookingConfig) HoursFor(day time.Weekday) (DayHours, bool) {
	hours, ok := b.WorkingHours[strings.ToLower(day.String())]
	if !ok || !hours.Open.IsBefore(hours.Close) {
		return DayHours{}, false
	}
	return hours, true
}

// ServiceBase база, из которой выезжает механик
type ServiceBase struct {
	Name     string `toml:"name"`
	Postcode string `toml:"postcode"`
}

// District время в пути до района (outward code), если routing недоступен
type District struct {
	DriveMinutes  int     `toml:"drive_minutes"`
	DistanceMiles float64 `toml:"distance_miles"`
}

// ZonesConfig пороги зон (минуты в пути)
type ZonesConfig struct {
	AMaxMinutes int                 `toml:"a_max_minutes"`
	BMaxMinutes int                 `toml:"b_max_minutes"`
	CMaxMinutes int                 `toml:"c_max_minutes"`
	Bases       []ServiceBase       `toml:"bases"`
	Districts   map[string]District `toml:"districts"`
}

// RateLimitConfig ограничение запросов с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)
	setString(&c.Database.MigrationsDir, "migrations")

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "mobile-diagnostics")

	setString(&c.Redis.Addr, "localhost:6379")
	setInt(&c.Redis.DriveTimeTTL, 7*24*3600)

	setInt(&c.Routing.Timeout, 5)

	setString(&c.Payments.Currency, "gbp")

	setString(&c.Events.Exchange, "events")

	setInt(&c.Admin.SessionTTL, 12*60)
	setString(&c.Admin.CookieName, "md_admin_session")

	setString(&c.Booking.Timezone, "Europe/London")
	setInt(&c.Booking.HorizonDays, 30)
	setInt(&c.Booking.SlotStepMinutes, 30)
	setInt(&c.Booking.TravelBufferStep, 15)
	setInt(&c.Booking.MaxConcurrentBookings, 1)

	setInt(&c.Zones.AMaxMinutes, 20)
	setInt(&c.Zones.BMaxMinutes, 40)
	setInt(&c.Zones.CMaxMinutes, 60)

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 2
	}
	setInt(&c.RateLimit.Burst, 10)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		c.Payments.SecretKey = v
	}
	if v := os.Getenv("ADMIN_SESSION_SECRET"); v != "" {
		c.Admin.SessionSecret = v
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.SlotStepMinutes <= 0 || c.Booking.TravelBufferStep <= 0 || c.Booking.HorizonDays <= 0 {
		return fmt.Errorf("%w: booking steps and horizon must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxConcurrentBookings < 1 {
		return fmt.Errorf("%w: booking.max_concurrent_bookings must be at least 1", ErrInvalidConfig)
	}
	for day := range c.Booking.WorkingHours {
		if !isWeekday(day) {
			return fmt.Errorf("%w: booking.working_hours: unknown day %q", ErrInvalidConfig, day)
		}
	}
	if !(c.Zones.AMaxMinutes < c.Zones.BMaxMinutes && c.Zones.BMaxMinutes < c.Zones.CMaxMinutes) {
		return fmt.Errorf("%w: zones thresholds must be increasing (a < b < c)", ErrInvalidConfig)
	}
	if c.Payments.Enabled && !c.Payments.DryRun && c.Payments.SecretKey == "" {
		return fmt.Errorf("%w: payments.secret_key is required unless dry_run is set", ErrInvalidConfig)
	}
	if c.Payments.Enabled && c.Payments.DepositGBP <= 0 {
		return fmt.Errorf("%w: payments.deposit_gbp must be positive", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if len(c.Admin.Users) > 0 && len(c.Admin.SessionSecret) < 16 {
		return fmt.Errorf("%w: admin.session_secret must be at least 16 characters", ErrInvalidConfig)
	}
	return nil
}

func isWeekday(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return true
		}
	}
	return false
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
