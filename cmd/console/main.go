package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/snortview/internal/alerts"
	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/connectors"
	"github.com/xela07ax/snortview/internal/console/handler"
	"github.com/xela07ax/snortview/internal/console/server"
	"github.com/xela07ax/snortview/internal/console/service"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
	"github.com/xela07ax/snortview/internal/infra/auth"
	"github.com/xela07ax/snortview/internal/repository/memory"
	"github.com/xela07ax/snortview/internal/repository/postgres"
	"github.com/xela07ax/snortview/internal/repository/redisstore"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config.yaml or ./configs/config.yaml)")
	flag.Parse()

	// 1. Конфиг и логгер
	cfg, err := infra.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("console stopped with error", zap.Error(err))
	}
}

// stores — реализации хранилищ под выбранный storage.driver
type stores struct {
	sessions service.SessionStore
	settings service.SettingsStore
	audit    interface {
		audit.Storage
		audit.Reader
	}
	stats service.StatsCache
}

func run(ctx context.Context, cfg *infra.Config, logger *zap.Logger) error {
	// 2. Метрики на приватном реестре
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := infra.NewMetrics(reg)

	// 3. Хранилища
	st, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	// 4. Набор алертов: генерируется один раз и дальше не меняется
	alertStore, err := alerts.NewStore(alerts.Generate(cfg.Alerts.Count, cfg.Alerts.Seed))
	if err != nil {
		return err
	}
	logger.Info("alert dataset generated", zap.Int("alerts", alertStore.Len()), zap.Uint64("seed", cfg.Alerts.Seed))

	// 5. Учетные записи и ключи
	accounts, err := memory.NewAccountRepo(credentials(cfg.Auth.Credentials), cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	privateKey, ephemeral, err := auth.LoadKeyPair(cfg.Auth.PrivateKey, cfg.Auth.PublicKey)
	if err != nil {
		return err
	}
	if ephemeral {
		logger.Warn("no private key configured, using an ephemeral RSA key: sessions will not survive a restart")
	}

	// 6. Журнал аудита
	recorder := audit.NewRecorder(st.audit, audit.Options{
		BufferSize:    cfg.Audit.BufferSize,
		BatchSize:     cfg.Audit.BatchSize,
		FlushInterval: cfg.Audit.FlushInterval,
	}, logger)
	recorder.Start()
	defer recorder.Stop()

	// 7. Сервисы (Dependency Injection)
	authSvc := service.NewAuthService(accounts, st.sessions, privateKey, service.AuthOptions{
		Issuer:     cfg.Auth.Issuer,
		TokenTTL:   cfg.Auth.TokenTTL,
		LoginRate:  cfg.Auth.LoginRate,
		LoginBurst: cfg.Auth.LoginBurst,
	}, recorder, metrics, logger)

	alertSvc := service.NewAlertService(alertStore, st.stats, service.AlertDelays{
		Alerts: cfg.Simulation.AlertsDelay,
		Stats:  cfg.Simulation.StatsDelay,
	}, metrics, logger)

	userSvc := service.NewUserService(memory.NewUserRepo(memory.DefaultUsers()), recorder, service.UserDelays{
		List:     cfg.Simulation.UsersDelay,
		Mutation: cfg.Simulation.MutationDelay,
		Register: cfg.Simulation.RegisterDelay,
	}, logger)

	dbSvc := service.NewDBConfigService(st.settings, connectionTester(cfg.Database, metrics, logger), cfg.Simulation.TestDelay, recorder, logger)

	// 8. HTTP
	api := server.NewConsoleServer(logger, authSvc, metrics, reg, server.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, logger),
		Alerts:    handler.NewAlertHandler(alertSvc, logger),
		Dashboard: handler.NewDashboardHandler(alertSvc, logger),
		Users:     handler.NewUserHandler(userSvc, logger),
		DBConfig:  handler.NewDBConfigHandler(dbSvc, logger),
		Audit:     handler.NewAuditHandler(service.NewAuditService(st.audit), logger),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("console API started", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down console API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func openStores(ctx context.Context, cfg *infra.Config, logger *zap.Logger) (stores, func(), error) {
	if cfg.Storage.Driver != infra.StorageRedis {
		return stores{
			sessions: memory.NewSessionStore(),
			settings: memory.NewSettingsStore(),
			audit:    audit.NewMemoryStorage(cfg.Audit.Retain),
			stats:    memory.NewStatsCache(0),
		}, func() {}, nil
	}

	rdb, err := infra.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return stores{}, nil, err
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	st := stores{
		sessions: redisstore.NewSessionStore(rdb),
		settings: redisstore.NewSettingsStore(rdb),
		audit:    redisstore.NewAuditLog(rdb, cfg.Audit.Retain),
	}
	if cfg.Redis.StatsTTL > 0 {
		st.stats = redisstore.NewStatsCache(rdb, cfg.Redis.StatsTTL)
	}
	return st, func() { closeRedis(rdb, logger) }, nil
}

func closeRedis(rdb *redis.Client, logger *zap.Logger) {
	if err := rdb.Close(); err != nil {
		logger.Warn("redis close failed", zap.Error(err))
	}
}

// connectionTester: по умолчанию имитация, live_test — настоящий ping PostgreSQL под CB и ретраями
func connectionTester(cfg infra.DatabaseConfig, metrics *infra.Metrics, logger *zap.Logger) connectors.ConnectionTester {
	if !cfg.LiveTest {
		return connectors.StubTester{}
	}
	return connectors.NewReliabilityWrapper(postgres.NewConnectionTester(), connectors.ReliabilityOptions{
		Attempts:       cfg.RetryAttempts,
		AttemptTimeout: cfg.ConnectTimeout,
		MaxRequests:    cfg.CBMaxRequests,
		Interval:       cfg.CBInterval,
		Timeout:        cfg.CBTimeout,
		OnStateChange: func(name string, state float64) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(state)
		},
	}, logger)
}

func credentials(cfg []infra.CredentialConfig) []memory.Credential {
	if len(cfg) == 0 {
		return memory.DefaultCredentials()
	}
	out := make([]memory.Credential, 0, len(cfg))
	for i, c := range cfg {
		id := c.ID
		if id == 0 {
			id = i + 1
		}
		role := domain.Role(c.Role)
		if role == "" {
			role = domain.RoleUser
		}
		out = append(out, memory.Credential{ID: id, Username: c.Username, Password: c.Password, Role: role})
	}
	return out
}
