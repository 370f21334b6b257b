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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	bulkDeleteReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/bulk_delete_reservations"
	createCalendarHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_calendar"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	deleteCalendarHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/delete_calendar"
	deleteReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/delete_reservation"
	getAvailableDatesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_calendar"
	getCalendarSettingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_calendar_settings"
	listCalendarsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_calendars"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	updateCalendarSettingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_calendar_settings"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	calendarsService "github.com/m04kA/SMC-ReservationService/internal/service/calendars"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailableDatesUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

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
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и transaction manager
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Публикация событий в Kafka
	publisher := events.NewPublisher(
		cfg.Events.BrokerList(),
		cfg.Events.Topic,
		time.Duration(cfg.Events.WriteTimeoutSeconds)*time.Second,
		log,
	)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close events publisher: %v", err)
		}
	}()
	if publisher.Enabled() {
		log.Info("Events publisher initialized (topic=%s)", cfg.Events.Topic)
	}

	// Сервисы
	calendarSvc := calendarsService.NewService(calendarRepository, scheduleRepository, txMgr, log)
	reservationSvc := reservationsService.NewService(reservationRepository, calendarRepository, txMgr, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calendarRepository,
		scheduleRepository,
		reservationRepository,
		metricsCollector,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		calendarRepository,
		scheduleRepository,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		calendarRepository,
		scheduleRepository,
		reservationRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	listCalendars := listCalendarsHandler.NewHandler(calendarSvc, log)
	createCalendar := createCalendarHandler.NewHandler(calendarSvc, log)
	getCalendarSettings := getCalendarSettingsHandler.NewHandler(calendarSvc, log)
	updateCalendarSettings := updateCalendarSettingsHandler.NewHandler(calendarSvc, log)
	deleteCalendar := deleteCalendarHandler.NewHandler(calendarSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	bulkDeleteReservations := bulkDeleteReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/calendars", listCalendars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования, с ограничением частоты при включённом Redis
	var createReservationHandlerFunc http.Handler = http.HandlerFunc(createReservation.Handle)
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable (addr=%s): %v", cfg.Redis.Addr, err)
		}
		pingCancel()

		limiter := middleware.NewRateLimiter(
			rdb,
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window(),
			cfg.RateLimit.Prefix,
			cfg.RateLimit.FailOpen,
			metricsCollector,
			log,
		)
		createReservationHandlerFunc = limiter.Middleware(createReservationHandlerFunc)
		log.Info("Rate limit enabled for reservations: %d requests per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}
	api.Handle("/calendars/{calendarId}/reservations", createReservationHandlerFunc).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календари ---
	protected.HandleFunc("/calendars", createCalendar.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}", deleteCalendar.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/calendars/{calendarId}/settings", getCalendarSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendars/{calendarId}/settings", updateCalendarSettings.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/bulk-delete", bulkDeleteReservations.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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
