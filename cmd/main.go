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

	createBlockHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_block"
	exportTechnicianDayHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/export_technician_day"
	getDayCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_day_calendar"
	moveAppointmentHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/move_appointment"
	moveBlockHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/move_block"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/block"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
	notificationServiceClient "github.com/m04kA/SMC-CalendarService/internal/integrations/notificationservice"
	eventsService "github.com/m04kA/SMC-CalendarService/internal/service/events"
	createBlockUC "github.com/m04kA/SMC-CalendarService/internal/usecase/create_block"
	exportTechnicianDayUC "github.com/m04kA/SMC-CalendarService/internal/usecase/export_technician_day"
	getDayCalendarUC "github.com/m04kA/SMC-CalendarService/internal/usecase/get_day_calendar"
	moveAppointmentUC "github.com/m04kA/SMC-CalendarService/internal/usecase/move_appointment"
	moveBlockUC "github.com/m04kA/SMC-CalendarService/internal/usecase/move_block"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CALENDAR_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CalendarService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Invalid calendar timezone: %v", err)
	}

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

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	technicianRepository := technicianRepo.NewRepository(wrappedDB)

	notificationClient := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotificationService=%s timeout=%ds)",
		cfg.NotificationService.URL, cfg.NotificationService.Timeout)

	eventsSvc := eventsService.NewService(appointmentRepository, blockRepository, location, log)

	// Инициализируем use cases
	getDayCalendarUseCase := getDayCalendarUC.NewUseCase(
		technicianRepository,
		eventsSvc,
		metricsCollector,
		getDayCalendarUC.Settings{
			Location:      location,
			StartHour:     cfg.Calendar.StartHour,
			EndHour:       cfg.Calendar.EndHour,
			PixelsPerHour: cfg.Calendar.PixelsPerHour,
		},
		log,
	)
	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		appointmentRepository,
		technicianRepository,
		eventsSvc,
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)
	moveBlockUseCase := moveBlockUC.NewUseCase(
		blockRepository,
		technicianRepository,
		eventsSvc,
		txMgr,
		metricsCollector,
		log,
	)
	createBlockUseCase := createBlockUC.NewUseCase(
		blockRepository,
		technicianRepository,
		eventsSvc,
		log,
	)
	exportTechnicianDayUseCase := exportTechnicianDayUC.NewUseCase(
		technicianRepository,
		eventsSvc,
		location,
		log,
	)

	// Инициализируем handlers
	getDayCalendar := getDayCalendarHandler.NewHandler(getDayCalendarUseCase, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	moveBlock := moveBlockHandler.NewHandler(moveBlockUseCase, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	exportTechnicianDay := exportTechnicianDayHandler.NewHandler(exportTechnicianDayUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Дневная сетка салона
	api.HandleFunc("/locations/{locationId}/calendar", getDayCalendar.Handle).Methods(http.MethodGet)

	// Перенос записи и блока (drag-and-drop)
	api.HandleFunc("/appointments/{appointmentId}/move", moveAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/blocks/{blockId}/move", moveBlock.Handle).Methods(http.MethodPatch)

	// Блок личного времени по выделенному диапазону
	api.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)

	api.HandleFunc("/technicians/{technicianId}/calendar.ics", exportTechnicianDay.Handle).Methods(http.MethodGet)

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
