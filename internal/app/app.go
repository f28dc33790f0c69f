package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanCalc/internal/api/front"
	apigrpc "cleanCalc/internal/api/grpc"
	apihttp "cleanCalc/internal/api/http"
	"cleanCalc/internal/api/http/controllers/calculator"
	"cleanCalc/internal/api/http/controllers/system"
	"cleanCalc/internal/infrastructure/click"
	"cleanCalc/internal/infrastructure/kafka"
	"cleanCalc/internal/infrastructure/memory"
	"cleanCalc/internal/infrastructure/mongo"
	"cleanCalc/internal/infrastructure/pg"
	"cleanCalc/internal/infrastructure/redis"
	"cleanCalc/internal/pkg/logger"
	"cleanCalc/internal/ports"
	calcUsecase "cleanCalc/internal/usecase/calculator"
)

const shutdownTimeout = 10 * time.Second

// App — приложение: конфиг и подключённые зависимости.
type App struct {
	cfg Config
	log *slog.Logger

	cache     ports.ICache
	producer  ports.IProducer
	analytics ports.IOperationAnalytics
	pingers   map[string]ports.IPinger
	closers   []func() error
}

// New создаёт приложение с конфигом (инфраструктура подключается в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg, pingers: make(map[string]ports.IPinger)}
}

// Run запускает приложение до SIGINT/SIGTERM (блокирующий вызов).
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext подключает включённую инфраструктуру, собирает use case и поднимает HTTP и gRPC до отмены ctx.
func (a *App) RunContext(ctx context.Context) error {
	log, closeLog := logger.New(a.cfg.Log)
	a.log = log
	slog.SetDefault(a.log)
	defer func() { _ = closeLog() }()
	defer a.close()

	if err := a.connect(ctx); err != nil {
		return err
	}

	repo := memory.NewHistoryRepo(a.log)
	a.pingers["history"] = repo
	uc := calcUsecase.New(repo, a.cache, a.producer, a.analytics, a.log)
	fc := front.New(uc, a.log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Kafka.Enabled && a.analytics != nil {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, a.log)
		a.closers = append(a.closers, consumer.Close)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("kafka consumer failed", "error", err)
			}
		}()
	}

	var grpcSrv *apigrpc.Server
	if a.cfg.Grpc.Enabled {
		grpcSrv = apigrpc.NewServer(a.cfg.Grpc.Addr(), fc, a.log)
		go func() {
			if err := grpcSrv.Start(); err != nil {
				a.log.Error("grpc server failed", "error", err)
				cancel()
			}
		}()
	}

	srv := apihttp.NewServer(a.cfg.Server, a.log)
	srv.AddController(
		system.New(a.pingers, a.log),
		calculator.New(fc, a.log))

	a.log.Info("application started",
		"http", a.cfg.Server.Addr(),
		"grpc_enabled", a.cfg.Grpc.Enabled,
		"redis_enabled", a.cfg.Redis.Enabled,
		"kafka_enabled", a.cfg.Kafka.Enabled,
		"analytics_sink", a.cfg.Analytics.Sink)

	httpErr := srv.Start(ctx)
	if grpcSrv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := grpcSrv.Stop(shutdownCtx); err != nil {
			a.log.Warn("grpc shutdown", "error", err)
		}
	}
	if httpErr != nil {
		return fmt.Errorf("http server: %w", httpErr)
	}
	a.log.Info("application stopped")
	return nil
}

// connect подключает Redis, Kafka и приёмник аналитики по флагам конфига.
func (a *App) connect(ctx context.Context) error {
	if a.cfg.Redis.Enabled {
		rdb, err := redis.New(ctx, &a.cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		a.pingers["redis"] = rdb
		a.cache = redis.NewCache(rdb, a.cfg.Redis.TTL, a.log)
	}

	if a.cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&a.cfg.Kafka)
		a.closers = append(a.closers, producer.Close)
		a.pingers["kafka"] = kafka.New(&a.cfg.Kafka)
		a.producer = producer
	}

	switch a.cfg.Analytics.Sink {
	case SinkClickHouse:
		ch, err := click.New(ctx, &a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.closers = append(a.closers, ch.Close)
		writer := click.NewOperationWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.pingers["clickhouse"] = ch
		a.analytics = writer
	case SinkPostgres:
		db, err := pg.New(ctx, &a.cfg.DB)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		a.pingers["postgres"] = db
		a.analytics = pg.NewAnalyticsWriter(db, a.log)
	case SinkMongo:
		mc, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
		a.closers = append(a.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return mc.Close(closeCtx)
		})
		a.pingers["mongo"] = mc
		a.analytics = mongo.NewAnalyticsWriter(mc, a.log)
	}
	return nil
}

// close закрывает зависимости в обратном порядке.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close dependency", "error", err)
		}
	}
	a.closers = nil
}
