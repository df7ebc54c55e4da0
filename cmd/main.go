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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/create_booking"
	createReviewHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/create_review"
	editBookingHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/edit_booking"
	getAvailabilityHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/get_booking"
	getTourBookingsHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/get_tour_bookings"
	getTourReviewsHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/get_tour_reviews"
	getUserBookingsHandler "github.com/m04kA/TA-BookingEngine/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/TA-BookingEngine/internal/api/middleware"
	"github.com/m04kA/TA-BookingEngine/internal/config"
	bookingRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/booking"
	capacityRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/capacity"
	reviewRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/review"
	documentsClient "github.com/m04kA/TA-BookingEngine/internal/integrations/documents"
	tourCatalogClient "github.com/m04kA/TA-BookingEngine/internal/integrations/tourcatalog"
	bookingsService "github.com/m04kA/TA-BookingEngine/internal/service/bookings"
	reviewsService "github.com/m04kA/TA-BookingEngine/internal/service/reviews"
	createBookingUC "github.com/m04kA/TA-BookingEngine/internal/usecase/create_booking"
	editBookingUC "github.com/m04kA/TA-BookingEngine/internal/usecase/edit_booking"
	getAvailabilityUC "github.com/m04kA/TA-BookingEngine/internal/usecase/get_availability"
	"github.com/m04kA/TA-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/TA-BookingEngine/pkg/logger"
	"github.com/m04kA/TA-BookingEngine/pkg/metrics"
	"github.com/m04kA/TA-BookingEngine/pkg/simpletxmanager"
	"github.com/m04kA/TA-BookingEngine/pkg/txmanager"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
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

	log.Info("Starting TA-BookingEngine...")
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
	catalogClient := tourCatalogClient.NewClient(
		cfg.TourCatalog.URL,
		time.Duration(cfg.TourCatalog.Timeout)*time.Second,
		log,
	)
	docsClient := documentsClient.NewClient(
		cfg.DocumentService.URL,
		time.Duration(cfg.DocumentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TourCatalog=%s timeout=%ds, DocumentService=%s timeout=%ds)",
		cfg.TourCatalog.URL, cfg.TourCatalog.Timeout, cfg.DocumentService.URL, cfg.DocumentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		capacityLedger    *capacityRepo.Ledger
		reviewRepository  *reviewRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		capacityLedger = capacityRepo.NewLedger(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		capacityLedger = capacityRepo.NewLedger(db)
		reviewRepository = reviewRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		capacityLedger,
		catalogClient,
		docsClient,
		txMgr,
		log,
	)
	reviewSvc := reviewsService.NewService(
		bookingRepository,
		reviewRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		capacityLedger,
		catalogClient,
		txMgr,
		log,
	)
	editBookingUseCase := editBookingUC.NewUseCase(
		bookingRepository,
		capacityLedger,
		catalogClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		capacityLedger,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	editBooking := editBookingHandler.NewHandler(editBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTourBookings := getTourBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	getTourReviews := getTourReviewsHandler.NewHandler(reviewSvc, log)

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

	// Остаток пакетов тура по датам заезда
	api.HandleFunc("/tours/{tourId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Отзывы тура
	api.HandleFunc("/tours/{tourId}/reviews", getTourReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение бронирования (до начала тура)
	protected.HandleFunc("/bookings/{bookingId}", editBooking.Handle).Methods(http.MethodPatch)

	// Подтверждение бронирования агентом
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отзыв оставляется на завершённое бронирование, поэтому маршрут
	// вложен в /bookings; tour_id отзыва берётся из самого бронирования
	protected.HandleFunc("/bookings/{bookingId}/reviews", createReview.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Агентская отчётность ---
	// Список бронирований тура
	protected.HandleFunc("/tours/{tourId}/bookings", getTourBookings.Handle).Methods(http.MethodGet)

	// CORS и восстановление после паник в хендлерах
	handler := gorillaHandlers.RecoveryHandler(
		gorillaHandlers.PrintRecoveryStack(true),
	)(gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-User-ID", "X-User-Role"}),
	)(r))

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновое продвижение бронирований по датам
	// (confirmed -> started -> finished)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	if cfg.ClockSweep.Enabled {
		interval := time.Duration(cfg.ClockSweep.Interval) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-sweepCtx.Done():
					return
				case <-ticker.C:
					asOf := types.NewDate(time.Now())
					if _, err := bookingSvc.SweepClock(sweepCtx, asOf); err != nil {
						log.Error("Clock sweep failed: %v", err)
					}
				}
			}
		}()
		log.Info("Clock sweep started with interval %s", interval)
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

	// Останавливаем фоновый sweep
	stopSweep()

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
