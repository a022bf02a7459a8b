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

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-AppointmentBot/internal/bot"
	"github.com/m04kA/SMC-AppointmentBot/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/appointment"
	dayconfigRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/dayconfig"
	"github.com/m04kA/SMC-AppointmentBot/internal/reminder"
	scheduleService "github.com/m04kA/SMC-AppointmentBot/internal/service/schedule"
	approveBookingUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/approve_booking"
	cancelAppointmentsUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/cancel_appointments"
	createBookingUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentBot/pkg/logger"
	"github.com/m04kA/SMC-AppointmentBot/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentBot/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentBot...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозитории и transaction manager
	configRepository := dayconfigRepo.NewRepository(db)
	appointmentRepository := appointmentRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервис конфигурации дней и дефолтное расписание
	scheduleSvc := scheduleService.NewService(configRepository, log)
	if err := scheduleSvc.EnsureDefaults(context.Background()); err != nil {
		log.Fatal("Failed to seed default day configs: %v", err)
	}

	// Авторизуемся в Telegram API
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal("Failed to authorize telegram bot: %v", err)
	}
	api.Debug = cfg.Telegram.Debug

	sender := bot.NewSender(api, cfg.Telegram.AdminChatID, metricsCollector)

	// Инициализируем планировщик напоминаний и восстанавливаем таймеры
	reminders := reminder.NewScheduler(
		time.Duration(cfg.Booking.ReminderLeadHours)*time.Hour,
		appointmentRepository,
		sender,
		reminder.RealTimeProvider{},
		metricsCollector,
		log,
	)
	defer reminders.Stop()

	if err := reminders.Restore(context.Background()); err != nil {
		log.Error("Failed to restore reminders: %v", err)
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		configRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		txMgr,
		sender,
		log,
	)
	approveBookingUseCase := approveBookingUC.NewUseCase(
		appointmentRepository,
		txMgr,
		reminders,
		sender,
		log,
	)
	cancelAppointmentsUseCase := cancelAppointmentsUC.NewUseCase(
		appointmentRepository,
		reminders,
		sender,
		log,
	)

	// Инициализируем бота
	tgBot := bot.New(
		api,
		cfg.Telegram.AdminChatID,
		getAvailableSlotsUseCase,
		createBookingUseCase,
		approveBookingUseCase,
		cancelAppointmentsUseCase,
		scheduleSvc,
		metricsCollector,
		log,
	)

	// Keep-alive HTTP сервер с metrics endpoint
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Bot is running!")
	}).Methods(http.MethodGet)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting keep-alive server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Keep-alive server failed to start: %v", err)
		}
	}()

	// Запускаем цикл обработки апдейтов
	botCtx, stopBot := context.WithCancel(context.Background())
	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		tgBot.Start(botCtx)
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	stopBot()
	<-botDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Keep-alive server shutdown error: %v", err)
	}

	log.Info("Shutdown complete")
}
