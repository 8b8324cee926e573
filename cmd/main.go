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
	"github.com/redis/go-redis/v9"

	applyTemplateHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/apply_template"
	applyTemplateRangeHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/apply_template_range"
	catalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/catalog"
	copyDayHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/copy_day"
	copyStaffHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/copy_staff"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_availability"
	getStaffAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_staff_appointments"
	listTemplatesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_templates"
	planBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/plan_booking"
	setDayAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/set_day_availability"
	submitBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/submit_booking"
	toggleSlotHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/toggle_slot"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/redislock"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	getAvailabilityUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_availability"
	planBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/plan_booking"
	submitBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Без метрик обёртка только прокидывает вызовы, транзакции работают одинаково
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Блокировка дня мастера
	var locker redislock.Locker = redislock.NoopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = redislock.NewRedisDayLocker(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second, cfg.Redis.KeyPrefix)
		log.Info("Redis day locks enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	} else {
		log.Warn("Redis disabled: concurrent edits of the same staff day are not serialized")
	}

	// Публикация событий
	var publisher interface {
		Publish(ctx context.Context, subject string, data interface{}) error
		Close() error
	} = events.NoopPublisher{}
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.Metrics.ServiceName)
		if err != nil {
			log.Fatal("Failed to connect to NATS at %s: %v", cfg.NATS.URL, err)
		}
		publisher = natsPublisher
		log.Info("NATS events enabled (url=%s)", cfg.NATS.URL)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		catalogRepository,
		txMgr,
		locker,
		publisher,
		log,
		cfg.Booking.MaxRangeDays,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		availabilityRepository,
		txMgr,
		log,
		cfg.Booking.MaxRangeDays,
	)
	planBookingUseCase := planBookingUC.NewUseCase(
		availabilityRepository,
		catalogRepository,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		catalogRepository,
		txMgr,
		locker,
		publisher,
		log,
		cfg.Booking.MaxBatchSize,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listTemplates := listTemplatesHandler.NewHandler(log)
	setDayAvailability := setDayAvailabilityHandler.NewHandler(scheduleSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(scheduleSvc, log)
	copyDay := copyDayHandler.NewHandler(scheduleSvc, log)
	copyStaff := copyStaffHandler.NewHandler(scheduleSvc, log)
	applyTemplate := applyTemplateHandler.NewHandler(scheduleSvc, log)
	applyTemplateRange := applyTemplateRangeHandler.NewHandler(scheduleSvc, log)
	planBooking := planBookingHandler.NewHandler(planBookingUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/templates", listTemplates.Handle).Methods(http.MethodGet)

	// template-range регистрируется до маршрутов с {date}
	api.HandleFunc("/staff/{staffId}/availability/template-range", applyTemplateRange.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{staffId}/availability/{date}", setDayAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/staff/{staffId}/availability/{date}/toggle", toggleSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{staffId}/availability/{date}/copy", copyDay.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{staffId}/availability/{date}/copy-to-staff", copyStaff.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{staffId}/availability/{date}/template", applyTemplate.Handle).Methods(http.MethodPost)

	// --- Записи ---
	api.HandleFunc("/bookings/plan", planBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	api.HandleFunc("/staff", catalog.ListStaff).Methods(http.MethodGet)
	api.HandleFunc("/staff", catalog.CreateStaff).Methods(http.MethodPost)
	api.HandleFunc("/services", catalog.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/services", catalog.CreateService).Methods(http.MethodPost)
	api.HandleFunc("/customers", catalog.ListCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers", catalog.CreateCustomer).Methods(http.MethodPost)

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
