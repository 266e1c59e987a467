package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/retail-backoffice/internal/cfg"
	v1Http "github.com/DRSN-tech/retail-backoffice/internal/delivery/v1/http"
	"github.com/DRSN-tech/retail-backoffice/internal/infrastructure/kafka"
	"github.com/DRSN-tech/retail-backoffice/internal/infrastructure/promotion"
	"github.com/DRSN-tech/retail-backoffice/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/retail-backoffice/internal/repository/pgdb/converter/generated"
	redisRepo "github.com/DRSN-tech/retail-backoffice/internal/repository/redis"
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/clients"
	"github.com/DRSN-tech/retail-backoffice/pkg/closer"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
	"github.com/DRSN-tech/retail-backoffice/pkg/postgres"
	"github.com/DRSN-tech/retail-backoffice/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает слои приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	db          *postgres.PgDatabase
	redisClient *clients.RedisClient
	producer    *kafka.Producer
	worker      *kafka.OutboxWorker
	httpSrv     *v1Http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(5 * time.Second),
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.db = db
	a.closer.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.redisClient = redisClient
	a.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.producer = producer
	a.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	prConv := pgdbConv.NewProductConverterImpl()
	orderConv := pgdbConv.NewOrderConverterImpl()
	itemConv := pgdbConv.NewOrderItemConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv, itemConv)
	customerRepo := pgdb.NewCustomerRepo(db.Pool)
	userRepo := pgdb.NewUserRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)
	reportRepo := pgdb.NewReportRepo(db.Pool)
	cacheRepo := redisRepo.NewCacheRepo(redisClient, cfg.Reports, log)

	promoClient := promotion.NewClient(cfg.Promo, log)
	txManager := tr.NewManager(db.Pool)

	orderUC := usecase.NewOrderUC(
		orderRepo,
		productRepo,
		customerRepo,
		userRepo,
		outboxRepo,
		promoClient,
		txManager,
		log,
	)
	reportUC := usecase.NewReportUC(reportRepo, cacheRepo, log)

	a.worker = kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(orderUC, reportUC)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	return a, nil
}

// Run запускает HTTP-сервер и outbox worker, блокируясь до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	workerCancel()
	a.worker.Stop()
	a.logger.Infof("Outbox worker stopped")

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
