package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-favorites/internal/catalog"
	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/metinatakli/movie-favorites/internal/favorites"
	"github.com/metinatakli/movie-favorites/internal/repository"
	"github.com/metinatakli/movie-favorites/internal/translate"
	appvalidator "github.com/metinatakli/movie-favorites/internal/validator"
	"github.com/metinatakli/movie-favorites/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/text/language"
)

const serviceName = "movie-favorites"

var (
	version = vcs.Version()
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	catalog    domain.Catalog
	translator domain.Translator
	favorites  *favorites.Store
	metrics    *appMetrics
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	Storage          StorageConfig
	DB               DBConfig
	Redis            RedisConfig
	Catalog          CatalogConfig
	Translate        TranslateConfig
	Log              LogConfig
}

type StorageConfig struct {
	Backend string
	Key     string
	Dir     string
}

type DBConfig struct {
	Dsn          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	Url          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type CatalogConfig struct {
	BaseUrl    string
	ApiKey     string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
}

type TranslateConfig struct {
	BaseUrl string
	ApiKey  string
	Timeout time.Duration
	Source  string
	Target  string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Dependencies are the collaborators an Application is built from.
type Dependencies struct {
	Logger         *slog.Logger
	SessionManager *scs.SessionManager
	Catalog        domain.Catalog
	Translator     domain.Translator
	Favorites      *favorites.Store
	// MeterProvider receives the favorites metrics. Nil means the global provider.
	MeterProvider metric.MeterProvider
}

func NewApp(cfg Config, deps Dependencies) (*Application, error) {
	app := &Application{
		config:         cfg,
		logger:         deps.Logger,
		validator:      appvalidator.NewValidator(),
		sessionManager: deps.SessionManager,
		catalog:        deps.Catalog,
		translator:     deps.Translator,
		favorites:      deps.Favorites,
	}

	metrics, err := app.newMetrics(deps.MeterProvider)
	if err != nil {
		return nil, err
	}
	app.metrics = metrics

	return app, nil
}

func Run() error {
	var cfg Config
	var attempts int

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	flag.StringVar(&cfg.Storage.Backend, "storage", StorageFile, "Liked movies storage (memory|file|redis|postgres)")
	flag.StringVar(&cfg.Storage.Key, "storage-key", favorites.DefaultStorageKey, "Storage slot holding the liked movies")
	flag.StringVar(&cfg.Storage.Dir, "storage-dir", "data", "Directory of the file storage")

	flag.StringVar(&cfg.DB.Dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.Url, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Catalog.BaseUrl, "omdb-url", catalog.DefaultBaseUrl, "OMDb API base URL")
	flag.StringVar(&cfg.Catalog.ApiKey, "omdb-key", "", "OMDb API key")
	flag.DurationVar(&cfg.Catalog.Timeout, "omdb-timeout", 10*time.Second, "OMDb request timeout")
	flag.IntVar(&attempts, "omdb-attempts", 3, "OMDb attempts per request")
	flag.DurationVar(&cfg.Catalog.RetryDelay, "omdb-retry-delay", 200*time.Millisecond, "Delay between OMDb attempts")

	flag.StringVar(&cfg.Translate.BaseUrl, "translate-url", translate.DefaultBaseUrl, "LibreTranslate base URL")
	flag.StringVar(&cfg.Translate.ApiKey, "translate-key", "", "LibreTranslate API key")
	flag.DurationVar(&cfg.Translate.Timeout, "translate-timeout", 10*time.Second, "LibreTranslate request timeout")
	flag.StringVar(&cfg.Translate.Source, "translate-source", "en", "Language of the catalog plots")
	flag.StringVar(&cfg.Translate.Target, "translate-target", "pt", "Default plot translation language")

	flag.StringVar(&cfg.Log.Level, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.StringVar(&cfg.Log.File, "log-file", "", "Also write logs to this file, rotated")
	flag.IntVar(&cfg.Log.MaxSizeMB, "log-max-size", 100, "Max size in megabytes of the log file before rotation")
	flag.IntVar(&cfg.Log.MaxBackups, "log-max-backups", 3, "Rotated log files to keep")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	if attempts < 1 {
		return fmt.Errorf("omdb-attempts must be at least 1")
	}
	cfg.Catalog.Attempts = uint(attempts)

	for _, tag := range []string{cfg.Translate.Source, cfg.Translate.Target} {
		_, err := language.Parse(tag)
		if err != nil {
			return fmt.Errorf("invalid translate language %q: %w", tag, err)
		}
	}

	logHandler, closeLog, err := newLogHandler(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	logger := slog.New(logHandler)

	bootstrap := &Application{config: cfg, logger: logger}

	shutdownTelemetry, err := bootstrap.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(logHandler, otelslog.NewHandler(serviceName)))
	}

	var redisClient *redis.Client
	if cfg.Redis.Url != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	slots, closeSlots, err := NewSlotStore(cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeSlots()

	storage := favorites.NewStorage(slots, cfg.Storage.Key, logger)

	app, err := NewApp(cfg, Dependencies{
		Logger:         logger,
		SessionManager: NewSessionManager(redisClient),
		Catalog:        catalog.NewOMDbClient(catalog.Config(cfg.Catalog)),
		Translator:     translate.NewLibreTranslateClient(cfg.Translate.BaseUrl, cfg.Translate.ApiKey, cfg.Translate.Timeout),
		Favorites:      favorites.Initialize(context.Background(), storage),
	})
	if err != nil {
		return err
	}

	logger.Info("liked movies loaded",
		"storage", cfg.Storage.Backend,
		"storage_key", storage.Key(),
		"count", len(app.favorites.State().LikedMovies),
	)

	return app.run()
}

func NewSlotStore(cfg Config, redisClient *redis.Client) (domain.SlotStore, func(), error) {
	switch cfg.Storage.Backend {
	case StorageMemory:
		return repository.NewMemorySlotStore(), func() {}, nil

	case StorageFile:
		return repository.NewFileSlotStore(afero.NewOsFs(), cfg.Storage.Dir), func() {}, nil

	case StorageRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis storage requires -redis-url")
		}

		return repository.NewRedisSlotStore(redisClient), func() {}, nil

	case StoragePostgres:
		if cfg.DB.Dsn == "" {
			return nil, nil, errors.New("postgres storage requires -db-dsn")
		}

		err := repository.Migrate(cfg.DB.Dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}

		db, err := NewDatabasePool(cfg)
		if err != nil {
			return nil, nil, err
		}

		return repository.NewPostgresSlotStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewSessionManager keeps sessions in Redis when a client is available and in
// process memory otherwise.
func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	if client != nil {
		sessionManager.Store = goredisstore.New(client)
	} else {
		sessionManager.Store = memstore.New()
	}

	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.Url,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.Dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return app.Close()
}

// Close releases what NewApp registered outside the application.
func (app *Application) Close() error {
	return app.metrics.close()
}
