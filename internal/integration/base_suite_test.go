package integration_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-favorites/internal/app"
	"github.com/metinatakli/movie-favorites/internal/favorites"
	"github.com/metinatakli/movie-favorites/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

// BaseSuite starts Postgres and Redis once per suite and builds a fresh
// application before every test, backed by the storage named in backend.
type BaseSuite struct {
	suite.Suite
	backend        string
	app            *TestApp
	db             *pgxpool.Pool
	cache          *redis.Client
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	omdb           *httptest.Server
	translator     *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	if s.backend == "" {
		s.backend = app.StorageRedis
	}

	postgresContainer, err := getDbContainer(ctx)
	s.Require().NoError(err)
	s.dbContainer = postgresContainer

	redisContainer, err := getCacheContainer(ctx)
	s.Require().NoError(err)
	s.cacheContainer = redisContainer

	s.omdb = newFakeOMDb()
	s.translator = newFakeTranslator()

	cfg := s.config()

	s.Require().NoError(repository.Migrate(cfg.DB.Dsn))

	s.db, err = app.NewDatabasePool(cfg)
	s.Require().NoError(err)

	s.cache, err = app.NewRedisClient(cfg)
	s.Require().NoError(err)
}

func (s *BaseSuite) SetupTest() {
	ctx := context.Background()

	_, err := s.db.Exec(ctx, "TRUNCATE storage_slots")
	s.Require().NoError(err)
	s.Require().NoError(s.cache.FlushDB(ctx).Err())

	s.app = s.newApp()
}

func (s *BaseSuite) TearDownTest() {
	if s.app != nil {
		s.app.Close()
	}
}

func (s *BaseSuite) TearDownSuite() {
	if s.omdb != nil {
		s.omdb.Close()
	}
	if s.translator != nil {
		s.translator.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container); err != nil {
			s.T().Logf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			s.T().Logf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) config() app.Config {
	return app.Config{
		Port: 3000,
		Env:  "test",
		Storage: app.StorageConfig{
			Backend: s.backend,
			Key:     favorites.DefaultStorageKey,
		},
		DB: app.DBConfig{
			Dsn:          s.dbContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			Url:          s.cacheContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Catalog: app.CatalogConfig{
			BaseUrl:    s.omdb.URL,
			ApiKey:     TestApiKey,
			Timeout:    5 * time.Second,
			Attempts:   2,
			RetryDelay: 10 * time.Millisecond,
		},
		Translate: app.TranslateConfig{
			BaseUrl: s.translator.URL,
			Timeout: 5 * time.Second,
			Source:  "en",
			Target:  "pt",
		},
	}
}

// newApp builds an application over whatever the storage currently holds,
// the way a process restart would.
func (s *BaseSuite) newApp() *TestApp {
	testApp, err := newTestApp(s.config())
	s.Require().NoError(err)

	return testApp
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          []*http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, s.Cookies)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
