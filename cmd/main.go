package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createSessionHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/create_session"
	deleteCaseHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/delete_case"
	deleteSessionHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/delete_session"
	getAnalyticsHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/get_analytics"
	getCalendarHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/get_calendar"
	getFreeSurgeonsHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/get_free_surgeons"
	getRosterHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/get_roster"
	getSessionHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/get_session"
	getSlotGridHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/get_slot_grid"
	predictDurationHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/predict_duration"
	retrainModelHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/retrain_model"
	selectSlotHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/select_slot"
	selectSurgeonHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/select_surgeon"
	setDurationHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/set_duration"
	submitSessionHandler "github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers/submit_session"
	"github.com/m04kA/OptiOR-SchedulingService/internal/api/middleware"
	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/config"
	sessionRepo "github.com/m04kA/OptiOR-SchedulingService/internal/infra/storage/session"
	caseServiceClient "github.com/m04kA/OptiOR-SchedulingService/internal/integrations/caseservice"
	predictServiceClient "github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
	analyticsService "github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics"
	calendarService "github.com/m04kA/OptiOR-SchedulingService/internal/service/calendar"
	sessionsService "github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions"
	getFreeSurgeonsUC "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_free_surgeons"
	getSlotGridUC "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_slot_grid"
	submitSessionUC "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/submit_session"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/httpmetrics"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/logger"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/metrics"
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

	log.Info("Starting OptiOR-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем интеграционных клиентов.
	// Исходящие HTTP-запросы оборачиваем метриками, когда метрики включены.
	var caseTransport, predictTransport http.RoundTripper
	if cfg.Metrics.Enabled {
		caseTransport = httpmetrics.Wrap(nil, metricsCollector, cfg.Metrics.ServiceName, "case_service")
		predictTransport = httpmetrics.Wrap(nil, metricsCollector, cfg.Metrics.ServiceName, "predict_service")
	}

	caseClient := caseServiceClient.NewClient(
		cfg.CaseService.URL,
		time.Duration(cfg.CaseService.Timeout)*time.Second,
		caseTransport,
		log,
	)
	predictClient := predictServiceClient.NewClient(
		cfg.PredictService.URL,
		time.Duration(cfg.PredictService.Timeout)*time.Second,
		predictTransport,
		log,
	)
	log.Info("Integration clients initialized (CaseService=%s timeout=%ds, PredictService=%s timeout=%ds)",
		cfg.CaseService.URL, cfg.CaseService.Timeout, cfg.PredictService.URL, cfg.PredictService.Timeout)

	// Хранилище сессий с фоновой чисткой истёкших
	sessionRepository := sessionRepo.NewRepository()
	stopCleanupCh := make(chan struct{})

	var onSweep func(active int)
	if cfg.Metrics.Enabled {
		serviceName := cfg.Metrics.ServiceName
		onSweep = func(active int) {
			metricsCollector.SetActiveSessions(serviceName, active)
		}
	}
	sessionRepository.StartExpirationWorker(
		time.Duration(cfg.Sessions.CleanupIntervalMinutes)*time.Minute,
		stopCleanupCh,
		onSweep,
	)
	log.Info("Session store initialized (ttl=%dm, cleanup every %dm)",
		cfg.Sessions.TTLMinutes, cfg.Sessions.CleanupIntervalMinutes)

	// Движок доступности и параметры сетки слотов
	engine := availability.NewEngine(cfg.Schedule.FallbackCaseMinutes)
	gridHours := cfg.Schedule.GridHours()
	schedule := sessionsService.Schedule{
		Rooms: cfg.Schedule.Rooms,
		Hours: gridHours,
	}
	log.Info("Slot grid configured: %d rooms x %d hours (fallback=%dm)",
		len(cfg.Schedule.Rooms), len(gridHours), cfg.Schedule.FallbackCaseMinutes)

	// Инициализируем сервисы
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		caseClient,
		predictClient,
		engine,
		schedule,
		time.Duration(cfg.Sessions.TTLMinutes)*time.Minute,
		cfg.Schedule.FallbackCaseMinutes,
		log,
	)
	calendarSvc := calendarService.NewService(caseClient, log)
	analyticsSvc := analyticsService.NewService(caseClient, predictClient, cfg.Schedule.FallbackCaseMinutes, log)

	// Инициализируем use cases
	submitSessionUseCase := submitSessionUC.NewUseCase(
		sessionRepository,
		caseClient,
		engine,
		log,
	)

	getSlotGridUseCase := getSlotGridUC.NewUseCase(
		caseClient,
		engine,
		cfg.Schedule.Rooms,
		gridHours,
		log,
	)

	getFreeSurgeonsUseCase := getFreeSurgeonsUC.NewUseCase(
		caseClient,
		engine,
		log,
	)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	deleteCase := deleteCaseHandler.NewHandler(calendarSvc, log)
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	setDuration := setDurationHandler.NewHandler(sessionSvc, log)
	selectSlot := selectSlotHandler.NewHandler(sessionSvc, log)
	selectSurgeon := selectSurgeonHandler.NewHandler(sessionSvc, log)
	submitSession := submitSessionHandler.NewHandler(submitSessionUseCase, log)
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	getFreeSurgeons := getFreeSurgeonsHandler.NewHandler(getFreeSurgeonsUseCase, log)
	getRoster := getRosterHandler.NewHandler(sessionSvc, log)
	predictDuration := predictDurationHandler.NewHandler(analyticsSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsSvc, log)
	retrainModel := retrainModelHandler.NewHandler(analyticsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календарь и кейсы ---
	// Месячный календарь с кейсами по дням
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Удаление кейса из внешнего сервиса
	api.HandleFunc("/cases/{caseId}", deleteCase.Handle).Methods(http.MethodDelete)

	// --- Сессии бронирования ---
	// Создание сессии (create или edit)
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Получение сессии по ID
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Отмена сессии
	api.HandleFunc("/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)

	// Шаги сессии: длительность, слот, хирург
	api.HandleFunc("/sessions/{sessionId}/duration", setDuration.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/slot", selectSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/surgeon", selectSurgeon.Handle).Methods(http.MethodPost)

	// Финальная отправка сессии в CaseService
	api.HandleFunc("/sessions/{sessionId}/submit", submitSession.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	// Сетка слотов на дату для заданной длительности
	api.HandleFunc("/slot-grid", getSlotGrid.Handle).Methods(http.MethodGet)

	// Свободные хирурги специальности (опционально на интервал)
	api.HandleFunc("/free-surgeons", getFreeSurgeons.Handle).Methods(http.MethodGet)

	// Полный справочник хирургов
	api.HandleFunc("/roster", getRoster.Handle).Methods(http.MethodGet)

	// --- Аналитика и ML ---
	// Предсказание длительности операции
	api.HandleFunc("/predictions", predictDuration.Handle).Methods(http.MethodPost)

	// Сводная аналитика за период
	api.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)

	// Переобучение модели предсказаний
	api.HandleFunc("/model/retrain", retrainModel.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновую чистку сессий
	close(stopCleanupCh)

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
