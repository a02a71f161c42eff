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

	bookSlotHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/book_slot"
	createSlotHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/create_slot"
	getAppointmentHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/get_appointment"
	getSlotHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/get_slot"
	listAppointmentsHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/list_appointments"
	listSlotsHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/list_slots"
	toggleBlockHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/toggle_block"
	updateStatusHandler "github.com/m04kA/TMS-SchedulingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/TMS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/TMS-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/slot"
	orderServiceClient "github.com/m04kA/TMS-SchedulingService/internal/integrations/orderservice"
	staffDirectoryClient "github.com/m04kA/TMS-SchedulingService/internal/integrations/staffdirectory"
	appointmentsService "github.com/m04kA/TMS-SchedulingService/internal/service/appointments"
	slotsService "github.com/m04kA/TMS-SchedulingService/internal/service/slots"
	bookSlotUC "github.com/m04kA/TMS-SchedulingService/internal/usecase/book_slot"
	createSlotUC "github.com/m04kA/TMS-SchedulingService/internal/usecase/create_slot"
	updateStatusUC "github.com/m04kA/TMS-SchedulingService/internal/usecase/update_appointment_status"
	"github.com/m04kA/TMS-SchedulingService/migrations"
	"github.com/m04kA/TMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-SchedulingService/pkg/logger"
	"github.com/m04kA/TMS-SchedulingService/pkg/metrics"
	"github.com/m04kA/TMS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/TMS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting TMS-SchedulingService...")
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

	// Применяем миграции (если включено)
	if cfg.Database.RunMigrations {
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		version, err := migrations.Version(context.Background(), db)
		if err != nil {
			log.Fatal("Failed to get migrations version: %v", err)
		}
		log.Info("Migrations applied, schema version=%d", version)
	}

	// Инициализируем интеграционных клиентов
	staffClient := staffDirectoryClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	orderClient := orderServiceClient.NewClient(
		cfg.OrderService.URL,
		time.Duration(cfg.OrderService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, OrderService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.OrderService.URL, cfg.OrderService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository        *slotRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(
		slotRepository,
		appointmentRepository,
		staffClient,
		txMgr,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createSlotUseCase := createSlotUC.NewUseCase(
		slotRepository,
		staffClient,
		txMgr,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		txMgr,
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		orderClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(createSlotUseCase, log)
	getSlot := getSlotHandler.NewHandler(slotsSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	toggleBlock := toggleBlockHandler.NewHandler(slotsSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)

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

	// Просмотр слотов: расписание доступно клиентам для выбора времени
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	// Создание рабочего слота мастера
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)

	// Ручная блокировка/разблокировка слота
	protected.HandleFunc("/slots/{slotId}/block", toggleBlock.Handle).Methods(http.MethodPatch)

	// --- Записи ---
	// Запись клиента в слот
	protected.HandleFunc("/appointments", bookSlot.Handle).Methods(http.MethodPost)

	// Расписание записей (день/неделя/период, с группировкой по типу)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

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

	log.Info("Server exited")
}
