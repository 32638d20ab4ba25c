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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookSlotHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/book_slot"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBusinessAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_business_appointments"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer_appointments"
	getScheduleSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_schedule_settings"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateScheduleSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_schedule_settings"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	"github.com/m04kA/SMC-SalonService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	businessServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/businessservice"
	userServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonService/internal/jobs/autocomplete"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	scheduleService "github.com/m04kA/SMC-SalonService/internal/service/schedule"
	bookSlotUC "github.com/m04kA/SMC-SalonService/internal/usecase/book_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

type locker interface {
	Acquire(ctx context.Context, businessID int64) (func(), error)
}

func main() {
	configPath := os.Getenv("SALON_CONFIG")
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	defaultLocation, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid default timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

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

	// Обёртка собирает метрики запросов; при выключенных метриках работает как *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	businessClient := businessServiceClient.NewClient(
		cfg.BusinessService.URL,
		time.Duration(cfg.BusinessService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, BusinessService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.BusinessService.URL, cfg.BusinessService.Timeout)

	// Блокировка салона на время коммита записи
	var bookingLock locker
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		}
		cancel()

		bookingLock = lock.NewRedisLocker(rdb, lock.RedisConfig{
			TTL:        time.Duration(cfg.Redis.LockTTL) * time.Millisecond,
			Wait:       time.Duration(cfg.Redis.LockWait) * time.Millisecond,
			RetryDelay: time.Duration(cfg.Redis.LockRetry) * time.Millisecond,
			Prefix:     cfg.Redis.LockPrefix,
		})
		log.Info("Booking lock: redis (addr=%s)", cfg.Redis.Addr)
	} else {
		bookingLock = lock.NewLocalLocker()
		log.Info("Booking lock: in-process")
	}

	// Публикация событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			TopicPrefix:  cfg.Kafka.TopicPrefix,
			WriteTimeout: time.Duration(cfg.Kafka.WriteTimeout) * time.Millisecond,
		})
		log.Info("Event publishing: kafka (brokers=%s)", cfg.Kafka.Brokers)
	} else {
		log.Info("Event publishing disabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		scheduleRepository,
		businessClient,
		txMgr,
		publisher,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		businessClient,
		log,
	)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		businessClient,
		userClient,
		bookingLock,
		txMgr,
		publisher,
		metricsCollector,
		bookSlotUC.Config{
			ServiceName:       cfg.Metrics.ServiceName,
			MaxCommitAttempts: cfg.Booking.MaxCommitAttempts,
			DefaultLocation:   defaultLocation,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		businessClient,
		metricsCollector,
		cfg.Metrics.ServiceName,
		defaultLocation,
		log,
	)

	// Фоновое завершение прошедших записей
	var autoCompleteJob *autocomplete.Job
	if cfg.Jobs.AutoCompleteEnabled {
		autoCompleteJob, err = autocomplete.New(appointmentSvc, cfg.Jobs.AutoCompleteSchedule, log)
		if err != nil {
			log.Fatal("Failed to create auto-complete job: %v", err)
		}
		autoCompleteJob.Start()
	}

	// Инициализируем handlers
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentSvc, log)
	getScheduleSettings := getScheduleSettingsHandler.NewHandler(scheduleSvc, log)
	updateScheduleSettings := updateScheduleSettingsHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты для записи
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Настройки расписания салона
	api.HandleFunc("/businesses/{businessId}/schedule-settings",
		getScheduleSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", bookSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	protected.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/schedule-settings", updateScheduleSettings.Handle).Methods(http.MethodPut)

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if autoCompleteJob != nil {
		autoCompleteJob.Stop(ctx)
	}

	log.Info("Server exited")
}
