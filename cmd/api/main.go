package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	adminLoginHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/admin_logout"
	adminSessionHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/admin_session"
	calculateZoneHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/calculate_zone"
	createReportHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/create_report"
	getAvailabilityHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/get_booking"
	getReportHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/get_report"
	getServicesHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/get_services"
	getSharedReportHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/get_shared_report"
	listBookingsHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/list_bookings"
	listReportsHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/list_reports"
	publishReportHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/publish_report"
	reserveBookingHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/reserve_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/update_booking_status"
	updateReportHandler "github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers/update_report"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/middleware"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/config"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/infra/cache/zonecache"
	bookingRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/catalog"
	reportRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/report"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/events"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/payments"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/routing"
	authService "github.com/m04kA/SMC-MobileDiagnostics/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-MobileDiagnostics/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-MobileDiagnostics/internal/service/catalog"
	reportsService "github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
	zonesService "github.com/m04kA/SMC-MobileDiagnostics/internal/service/zones"
	getAvailabilityUC "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
	reserveBookingUC "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/reserve_booking"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/dbmetrics"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/metrics"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/migrator"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/txmanager"
)

// rateLimitIdle через сколько забываем клиента без запросов
const rateLimitIdle = 10 * time.Minute

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-MobileDiagnostics...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены); методы *Metrics безопасны для nil
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Миграции схемы
	if cfg.Database.AutoMigrate {
		if err := migrator.Up(cfg.Database.MigrationsDir, cfg.Database.URL(), log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш времени в пути (опционально)
	var driveTimeCache zonesService.DriveTimeCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, drive time cache disabled: %v", err)
		} else {
			driveTimeCache = zonecache.New(redisClient, time.Duration(cfg.Redis.DriveTimeTTL)*time.Second, metricsCollector)
			log.Info("Drive time cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.DriveTimeTTL)
		}
		cancel()
	}

	// Инициализируем интеграционных клиентов
	var routingClient zonesService.RoutingClient
	if cfg.Routing.URL != "" {
		routingClient = routing.NewClient(
			cfg.Routing.URL,
			cfg.Routing.APIKey,
			time.Duration(cfg.Routing.Timeout)*time.Second,
			log,
		)
		log.Info("Routing client initialized (url=%s timeout=%ds)", cfg.Routing.URL, cfg.Routing.Timeout)
	} else {
		log.Info("Routing is not configured, using district table only")
	}

	checkout := payments.NewCheckoutService(payments.Config{
		SecretKey:  cfg.Payments.SecretKey,
		Currency:   cfg.Payments.Currency,
		SuccessURL: cfg.Payments.SuccessURL,
		CancelURL:  cfg.Payments.CancelURL,
		DryRun:     cfg.Payments.DryRun || !cfg.Payments.Enabled,
	}, log)

	var publisher events.Publisher
	if cfg.Events.Enabled {
		rabbit, err := events.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		publisher = events.NewNopPublisher(log)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	reportRepository := reportRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	zonesSvc := zonesService.NewService(zonesConfig(cfg.Zones), routingClient, driveTimeCache, catalogSvc, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, publisher, cfg.Booking.MaxConcurrentBookings, location, log)
	reportSvc := reportsService.NewService(reportRepository, bookingRepository, publisher, log)

	authSvc, err := authService.NewService(authConfig(cfg.Admin), log)
	if err != nil {
		log.Fatal("Failed to initialize admin auth: %v", err)
	}

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		catalogSvc,
		zonesSvc,
		availabilitySettings(cfg, location),
		metricsCollector,
		log,
	)

	reserveBookingUseCase := reserveBookingUC.NewUseCase(
		bookingRepository,
		getAvailabilityUseCase,
		checkout,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	cookie := handlers.CookieSettings{Name: cfg.Admin.CookieName, Secure: cfg.Admin.CookieSecure}

	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	calculateZone := calculateZoneHandler.NewHandler(zonesSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	reserveBooking := reserveBookingHandler.NewHandler(reserveBookingUseCase, log)
	getSharedReport := getSharedReportHandler.NewHandler(reportSvc, log)

	adminLogin := adminLoginHandler.NewHandler(authSvc, cookie, log)
	adminLogout := adminLogoutHandler.NewHandler(cookie, log)
	adminSession := adminSessionHandler.NewHandler(authSvc, cookie, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	createReport := createReportHandler.NewHandler(reportSvc, log)
	listReports := listReportsHandler.NewHandler(reportSvc, log)
	getReport := getReportHandler.NewHandler(reportSvc, log)
	updateReport := updateReportHandler.NewHandler(reportSvc, log)
	publishReport := publishReportHandler.NewHandler(reportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.HTTPMetrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/booking/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reports/share/{token}", getSharedReport.Handle).Methods(http.MethodGet)

	// Расчетные маршруты под ограничением частоты запросов
	limited := api.PathPrefix("").Subrouter()

	shutdownCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		go limiter.Cleanup(shutdownCtx, time.Minute, rateLimitIdle)
		limited.Use(limiter.Limit)
		log.Info("Rate limit enabled: %.1f req/s, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	limited.HandleFunc("/calculate-zone", calculateZone.Handle).Methods(http.MethodGet)
	limited.HandleFunc("/booking/availability", getAvailability.Handle).Methods(http.MethodGet)
	limited.HandleFunc("/booking/reserve", reserveBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (cookie-сессия)
	// ============================================================

	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", adminLogout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/session", adminSession.Handle).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(authSvc, cfg.Admin.CookieName, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Отчеты ---
	admin.HandleFunc("/reports", createReport.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reports", listReports.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{reportId}", getReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{reportId}", updateReport.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reports/{reportId}/publish", publishReport.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopBackground()
	close(stopMetricsCh)

	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func zonesConfig(z config.ZonesConfig) zonesService.Config {
	bases := make([]string, 0, len(z.Bases))
	for _, b := range z.Bases {
		bases = append(bases, b.Postcode)
	}

	districts := make(map[string]domain.DriveTime, len(z.Districts))
	for outward, d := range z.Districts {
		districts[strings.ToUpper(outward)] = domain.DriveTime{Minutes: d.DriveMinutes, DistanceMiles: d.DistanceMiles}
	}

	return zonesService.Config{
		Thresholds: domain.ZoneThresholds{AMax: z.AMaxMinutes, BMax: z.BMaxMinutes, CMax: z.CMaxMinutes},
		Bases:      bases,
		Districts:  districts,
	}
}

func authConfig(a config.AdminConfig) authService.Config {
	users := make(map[string]string, len(a.Users))
	for _, u := range a.Users {
		users[strings.ToLower(u.Username)] = u.PasswordHash
	}
	return authService.Config{
		Secret: a.SessionSecret,
		TTL:    time.Duration(a.SessionTTL) * time.Minute,
		Users:  users,
	}
}

func availabilitySettings(cfg *config.Config, location *time.Location) getAvailabilityUC.Settings {
	hours := make(map[time.Weekday]getAvailabilityUC.DayHours)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if h, ok := cfg.Booking.HoursFor(day); ok {
			hours[day] = getAvailabilityUC.DayHours{Open: h.Open, Close: h.Close}
		}
	}

	return getAvailabilityUC.Settings{
		Location:              location,
		HorizonDays:           cfg.Booking.HorizonDays,
		SlotStepMinutes:       cfg.Booking.SlotStepMinutes,
		TravelBufferStep:      cfg.Booking.TravelBufferStep,
		MaxConcurrentBookings: cfg.Booking.MaxConcurrentBookings,
		WorkingHours:          hours,
		PaymentsEnabled:       cfg.Payments.Enabled,
		DepositGBP:            cfg.Payments.DepositGBP,
	}
}
