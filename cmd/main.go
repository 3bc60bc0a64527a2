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

	cancelEnrollmentHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/cancel_enrollment"
	createEnrollmentHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/create_enrollment"
	createSlotHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/create_slot"
	getAvailableSlotsHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/get_available_slots"
	getEnrollmentHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/get_enrollment"
	getRequirementHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/get_requirement"
	getSlotHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/get_slot"
	getStudentEnrollmentsHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/get_student_enrollments"
	quoteEnrollmentHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/quote_enrollment"
	recordDayOutcomeHandler "github.com/m04kA/DSP-EnrollmentService/internal/api/handlers/record_day_outcome"
	"github.com/m04kA/DSP-EnrollmentService/internal/api/middleware"
	"github.com/m04kA/DSP-EnrollmentService/internal/config"
	enrollmentRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/enrollment"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	catalogServiceClient "github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
	uploadServiceClient "github.com/m04kA/DSP-EnrollmentService/internal/integrations/uploadservice"
	enrollmentsService "github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments"
	slotsService "github.com/m04kA/DSP-EnrollmentService/internal/service/slots"
	createEnrollmentUC "github.com/m04kA/DSP-EnrollmentService/internal/usecase/create_enrollment"
	getAvailableSlotsUC "github.com/m04kA/DSP-EnrollmentService/internal/usecase/get_available_slots"
	quoteEnrollmentUC "github.com/m04kA/DSP-EnrollmentService/internal/usecase/quote_enrollment"
	"github.com/m04kA/DSP-EnrollmentService/pkg/dbmetrics"
	"github.com/m04kA/DSP-EnrollmentService/pkg/logger"
	"github.com/m04kA/DSP-EnrollmentService/pkg/metrics"
	"github.com/m04kA/DSP-EnrollmentService/pkg/simpletxmanager"
	"github.com/m04kA/DSP-EnrollmentService/pkg/txmanager"
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

	log.Info("Starting DSP-EnrollmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	uploadClient := uploadServiceClient.NewClient(
		cfg.UploadService.URL,
		time.Duration(cfg.UploadService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, UploadService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.UploadService.URL, cfg.UploadService.Timeout)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		slotRepository       *slotRepo.Repository
		enrollmentRepository *enrollmentRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		enrollmentRepository = enrollmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		enrollmentRepository = enrollmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	enrollmentSvc := enrollmentsService.NewService(
		enrollmentRepository,
		slotRepository,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(slotRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		enrollmentRepository,
		catalogClient,
		log,
		cfg.Booking.DurationToleranceHours,
	)

	createEnrollmentUseCase := createEnrollmentUC.NewUseCase(
		slotRepository,
		enrollmentRepository,
		catalogClient,
		uploadClient,
		txMgr,
		log,
		cfg.Booking.DurationToleranceHours,
	)

	quoteEnrollmentUseCase := quoteEnrollmentUC.NewUseCase(catalogClient, log)

	// Инициализируем handlers
	getRequirement := getRequirementHandler.NewHandler(catalogClient, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	quoteEnrollment := quoteEnrollmentHandler.NewHandler(quoteEnrollmentUseCase, log)
	createEnrollment := createEnrollmentHandler.NewHandler(createEnrollmentUseCase, log)
	getEnrollment := getEnrollmentHandler.NewHandler(enrollmentSvc, log)
	getStudentEnrollments := getStudentEnrollmentsHandler.NewHandler(enrollmentSvc, log)
	cancelEnrollment := cancelEnrollmentHandler.NewHandler(enrollmentSvc, log)
	recordDayOutcome := recordDayOutcomeHandler.NewHandler(enrollmentSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Требование расписания курса
	api.HandleFunc("/courses/{courseId}/schedule-requirement",
		getRequirement.Handle).Methods(http.MethodGet)

	// Предварительный расчет стоимости записи
	api.HandleFunc("/courses/{courseId}/quote",
		quoteEnrollment.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Подбор расписания ---
	// Доступные слоты для следующего незаполненного дня
	protected.HandleFunc("/courses/{courseId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Зачисления ---
	// Фиксация зачисления с атомарным списанием ёмкости
	protected.HandleFunc("/enrollments", createEnrollment.Handle).Methods(http.MethodPost)

	// Получение зачисления по ID
	protected.HandleFunc("/enrollments/{enrollmentId}", getEnrollment.Handle).Methods(http.MethodGet)

	// Отмена зачисления с возвратом ёмкости
	protected.HandleFunc("/enrollments/{enrollmentId}/cancel", cancelEnrollment.Handle).Methods(http.MethodPatch)

	// Запись результата учебного дня (для сотрудников)
	protected.HandleFunc("/enrollments/{enrollmentId}/days/{dayIndex}", recordDayOutcome.Handle).Methods(http.MethodPatch)

	// История зачислений студента
	protected.HandleFunc("/students/{studentId}/enrollments", getStudentEnrollments.Handle).Methods(http.MethodGet)

	// --- Управление слотами ---
	// Создание слота (для сотрудников)
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)

	// Получение слота по ID
	protected.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
