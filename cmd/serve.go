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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/create_booking"
	createQuoteHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/create_quote"
	deleteBookingHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/get_calendar"
	getCatalogHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/get_catalog"
	getContractPDFHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/get_contract_pdf"
	getDayScheduleHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/get_day_schedule"
	listBookingsHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/list_bookings"
	loginHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/PartyVenue-BookingService/internal/api/handlers/logout"
	"github.com/m04kA/PartyVenue-BookingService/internal/api/middleware"
	"github.com/m04kA/PartyVenue-BookingService/internal/config"
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/render/contractpdf"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage"
	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/migrations"
	authService "github.com/m04kA/PartyVenue-BookingService/internal/service/auth"
	bookingsService "github.com/m04kA/PartyVenue-BookingService/internal/service/bookings"
	calendarService "github.com/m04kA/PartyVenue-BookingService/internal/service/calendar"
	pricingService "github.com/m04kA/PartyVenue-BookingService/internal/service/pricing"
	createBookingUC "github.com/m04kA/PartyVenue-BookingService/internal/usecase/create_booking"
	getDayScheduleUC "github.com/m04kA/PartyVenue-BookingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/PartyVenue-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PartyVenue-BookingService/pkg/keylock"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/metrics"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PartyVenue-BookingService/pkg/txmanager"
)

// ServeCmd запускает HTTP сервер
type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting PartyVenue-BookingService...")
	log.Info("Configuration loaded from %s", g.Config)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных и применяем миграции
	rawDB, err := openDatabase(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer rawDB.Close()

	var db *dbmetrics.DB
	if cfg.Metrics.Enabled {
		db = dbmetrics.WrapWithDefault(rawDB, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		db = dbmetrics.Wrap(rawDB, nil)
	}

	r := newRouter(cfg, db, log, metricsCollector)

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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	}

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
	return nil
}

// newRouter собирает репозитории, сервисы, use cases и маршруты.
// metricsCollector может быть nil.
func newRouter(cfg *config.Config, db *dbmetrics.DB, log *logger.Logger, metricsCollector *metrics.Metrics) *mux.Router {
	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db, psqlbuilder.New(cfg.Database.Dialect()))
	txManager := txmanager.NewTransactionManager(db)
	slotLocker := keylock.New()

	// Справочники
	calendar := domain.DefaultSlotCalendar()
	catalog := cfg.Catalog.Build()
	policy := domain.AllocationPolicy{HardCap: cfg.Booking.HardCap}
	log.Info("Allocation policy: normal capacity=%d, hard cap=%d", domain.NormalCapacity, policy.HardCap)

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(catalog, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	calendarSvc := calendarService.NewService(bookingRepository, log)
	authSvc := authService.NewService(authService.Config{
		PINHash:       cfg.Auth.PINHash,
		SessionSecret: cfg.Auth.SessionSecret,
		SessionTTL:    time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute,
	}, log)
	if cfg.Auth.PINHash == "" {
		log.Warn("auth.pin_hash is not set: staff login is disabled")
	}

	// Метрики размещения пишутся только при включенных метриках
	var allocationMetrics createBookingUC.MetricsRecorder
	if metricsCollector != nil {
		allocationMetrics = metricsCollector
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		calendar,
		slotLocker,
		txManager,
		policy,
		allocationMetrics,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		calendar,
		policy,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, calendar, pricingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	getCatalog := getCatalogHandler.NewHandler(pricingSvc)
	createQuote := createQuoteHandler.NewHandler(pricingSvc, log)
	getContractPDF := getContractPDFHandler.NewHandler(bookingSvc, calendar, catalog,
		contractpdf.NewRenderer(cfg.Contract.VenueName, log), log)
	login := loginHandler.NewHandler(authSvc, loginHandler.CookieOptions{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	}, log)
	logout := logoutHandler.NewHandler(cfg.Auth.CookieName, cfg.Auth.CookieSecure)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют сессию сотрудника)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, cfg.Auth.CookieName, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/contract.pdf", getContractPDF.Handle).Methods(http.MethodGet)

	// --- Расписание и календарь ---
	protected.HandleFunc("/days/{date}", getDaySchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendar/weeks/{date}", getCalendar.HandleWeek).Methods(http.MethodGet)
	protected.HandleFunc("/calendar/{year:[0-9]+}/{month:[0-9]+}", getCalendar.HandleMonth).Methods(http.MethodGet)
	protected.HandleFunc("/calendar/{year:[0-9]+}", getCalendar.HandleYear).Methods(http.MethodGet)

	// --- Пакеты и стоимость ---
	protected.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/quotes", createQuote.Handle).Methods(http.MethodPost)

	return r
}

// openDatabase открывает БД выбранного драйвера и применяет миграции
func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dialect := cfg.Database.Dialect()
	dsn := cfg.Database.DSN()

	if dialect == psqlbuilder.DialectSQLite {
		if err := storage.EnsureDir(cfg.Database.Path); err != nil {
			return nil, err
		}
		dsn = storage.SQLiteDSN(cfg.Database.Path)
	}

	db, err := storage.Open(ctx, storage.Options{
		Dialect:         dialect,
		DSN:             dsn,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == psqlbuilder.DialectSQLite {
		log.Info("Successfully connected to database (sqlite, path=%s)", cfg.Database.Path)
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	runner, err := migrations.NewRunner(db, dialect, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := runner.Apply(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return db, nil
}

func healthHandler(db *dbmetrics.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
