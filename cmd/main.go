package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingStatusHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/booking_status"
	checkAvailabilityHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/get_booking"
	getDriverBookingsHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/get_driver_bookings"
	getSpotBookingsHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/get_spot_bookings"
	listSpotEventsHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/list_spot_events"
	pricingBreakdownHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/pricing_breakdown"
	quotePriceHandler "github.com/m04kA/GalliPark-BookingService/internal/api/handlers/quote_price"
	"github.com/m04kA/GalliPark-BookingService/internal/api/middleware"
	"github.com/m04kA/GalliPark-BookingService/internal/config"
	"github.com/m04kA/GalliPark-BookingService/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/event"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
	userServiceClient "github.com/m04kA/GalliPark-BookingService/internal/integrations/userservice"
	"github.com/m04kA/GalliPark-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/GalliPark-BookingService/internal/service/bookings"
	eventsService "github.com/m04kA/GalliPark-BookingService/internal/service/events"
	"github.com/m04kA/GalliPark-BookingService/internal/service/pricing"
	"github.com/m04kA/GalliPark-BookingService/internal/service/validation"
	checkAvailabilityUC "github.com/m04kA/GalliPark-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/GalliPark-BookingService/internal/usecase/create_booking"
	quotePriceUC "github.com/m04kA/GalliPark-BookingService/internal/usecase/quote_price"
	"github.com/m04kA/GalliPark-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GalliPark-BookingService/pkg/logger"
	"github.com/m04kA/GalliPark-BookingService/pkg/metrics"
	"github.com/m04kA/GalliPark-BookingService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting GalliPark-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Метрики; nil-коллектор ничего не пишет
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	spotRepository := spotRepo.NewRepository(wrappedDB)
	eventRepository := eventRepo.NewRepository(wrappedDB)

	// Хранилище ключей идемпотентности
	var idempotencyStore createBookingUC.IdempotencyStore = idempotency.NoopStore{}
	if cfg.Redis.Enabled {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := idempotency.Connect(pingCtx, cfg.Redis.URL, cfg.Redis.PoolSize)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		idempotencyStore = idempotency.NewStore(redisClient, cfg.Booking.IdempotencyTTL())
		log.Info("Idempotency store enabled (ttl=%s)", cfg.Booking.IdempotencyTTL())
	} else {
		log.Warn("Redis disabled: Idempotency-Key replay is not available")
	}

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Сервисы
	calculator := pricing.NewCalculator(spotRepository, eventRepository, loc, log)
	availabilityChecker := availability.NewChecker(bookingRepository, log)
	timeValidator := validation.NewValidator(&validation.RealTimeProvider{}, cfg.Booking.MinDuration())
	bookingSvc := bookingsService.NewService(bookingRepository, spotRepository, calculator, metricsCollector, log)
	eventSvc := eventsService.NewService(spotRepository, eventRepository, &validation.RealTimeProvider{}, loc, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(createBookingUC.Deps{
		BookingRepo:  bookingRepository,
		SpotRepo:     spotRepository,
		EventRepo:    eventRepository,
		Availability: availabilityChecker,
		Calculator:   calculator,
		Validator:    timeValidator,
		UserClient:   userClient,
		Idempotency:  idempotencyStore,
		TxManager:    txMgr,
		Metrics:      metricsCollector,
		Logger:       log,
	}, cfg.Booking.ConflictRetries)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(spotRepository, availabilityChecker, timeValidator, log)
	quotePriceUseCase := quotePriceUC.NewUseCase(calculator, eventRepository, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	activateBooking := bookingStatusHandler.NewActivateHandler(bookingSvc, log)
	completeBooking := bookingStatusHandler.NewCompleteHandler(bookingSvc, log)
	cancelBooking := bookingStatusHandler.NewCancelHandler(bookingSvc, log)
	pricingBreakdown := pricingBreakdownHandler.NewHandler(bookingSvc, log)
	getDriverBookings := getDriverBookingsHandler.NewHandler(bookingSvc, log)
	getSpotBookings := getSpotBookingsHandler.NewHandler(bookingSvc, log)
	listSpotEvents := listSpotEventsHandler.NewHandler(eventSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/spots/{spotId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spots/{spotId}/events", listSpotEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pricing/quote", quotePrice.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/activate", activateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/pricing-breakdown", pricingBreakdown.Handle).Methods(http.MethodGet)

	// История водителя
	protected.HandleFunc("/users/{userId}/bookings", getDriverBookings.Handle).Methods(http.MethodGet)

	// --- Для владельцев парковок ---
	protected.HandleFunc("/spots/{spotId}/bookings", getSpotBookings.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
