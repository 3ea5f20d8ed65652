package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/facebookgo/clock"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/stellar/anchor-platform-sub000/internal/facades"
	"github.com/stellar/anchor-platform-sub000/internal/handlers"
	"github.com/stellar/anchor-platform-sub000/internal/jwt"
	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/middlewares"
	"github.com/stellar/anchor-platform-sub000/internal/repositories"
	"github.com/stellar/anchor-platform-sub000/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Platform auth modes.
const (
	authNone   = "none"
	authJWT    = "jwt"
	authAPIKey = "api_key"
)

type config struct {
	appHost  string
	appPort  string
	logLevel string

	// Empty pgHost keeps transactions in memory.
	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	// Empty redisHost selects the in-process locker and disables the quote cache.
	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int
	quoteCacheExp     time.Duration
	lockTTL           time.Duration

	kafkaBrokers []string
	kafkaTopic   string

	horizonURL          string
	customerCallbackURL string
	callbackTimeout     time.Duration

	assetsFile string

	authType       string
	authSecret     string
	authLeeway     time.Duration
	apiKeyHash     string
	batchSizeLimit int
}

// @title Anchor Platform RPC API
// @version 1.0.0
// @description JSON-RPC 2.0 endpoint through which anchor business servers drive SEP-6, SEP-24 and SEP-31 transactions.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file, overlaid by the
// process environment, and returns the application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		v, err := getInt(key, defaultValue)
		return time.Duration(v) * time.Second, err
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "anchor")
	if cfg.pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.redisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.quoteCacheExp, err = getSeconds("REDIS_QUOTE_EXP_SECOND", "60"); err != nil {
		return
	}
	if cfg.lockTTL, err = getSeconds("REDIS_LOCK_TTL_SECOND", "30"); err != nil {
		return
	}

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.kafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "transaction-events")

	// Collaborators
	cfg.horizonURL = getEnv("HORIZON_URL", "https://horizon-testnet.stellar.org")
	cfg.customerCallbackURL = getEnv("CUSTOMER_CALLBACK_URL", "http://localhost:8081")
	if cfg.callbackTimeout, err = getSeconds("CALLBACK_TIMEOUT_SECOND", "10"); err != nil {
		return
	}
	cfg.assetsFile = getEnv("ASSETS_FILE", "assets.yaml")

	// Platform auth
	cfg.authType = getEnv("PLATFORM_AUTH_TYPE", authNone)
	cfg.authSecret = getEnv("PLATFORM_AUTH_SECRET", "")
	cfg.apiKeyHash = getEnv("PLATFORM_API_KEY_HASH", "")
	if cfg.authLeeway, err = getSeconds("PLATFORM_AUTH_LEEWAY_SECOND", "5"); err != nil {
		return
	}
	switch cfg.authType {
	case authNone:
	case authJWT:
		if cfg.authSecret == "" {
			err = fmt.Errorf("PLATFORM_AUTH_SECRET is required for %s auth", authJWT)
			return
		}
	case authAPIKey:
		if cfg.apiKeyHash == "" {
			err = fmt.Errorf("PLATFORM_API_KEY_HASH is required for %s auth", authAPIKey)
			return
		}
	default:
		err = fmt.Errorf("unknown PLATFORM_AUTH_TYPE %q", cfg.authType)
		return
	}

	if cfg.batchSizeLimit, err = getInt("RPC_BATCH_SIZE_LIMIT", strconv.Itoa(services.DefaultBatchSizeLimit)); err != nil {
		return
	}

	return
}

// run initializes the logger, stores, collaborators and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel, "anchor-rpc", buildVersion); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Assets
	assets, err := repositories.NewAssetFileRepository(cfg.assetsFile).ListAssets()
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	logger.Log.Infow("assets loaded", "file", cfg.assetsFile, "count", len(assets))

	// Transactions and quotes
	var (
		store  services.TransactionStore
		quotes services.QuoteReader
		health handlers.Pinger
	)
	if cfg.pgHost != "" {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
		logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.pgHost, "port", cfg.pgPort, "db", cfg.pgDB)

		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return fmt.Errorf("PostgreSQL connection error: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.pgMaxOpenConns)
		db.SetMaxIdleConns(cfg.pgMaxIdleConns)
		if err := repositories.Migrate(ctx, db); err != nil {
			return err
		}

		store = repositories.NewTransactionRepository(db)
		quotes = repositories.NewQuoteRepository(db)
		health = db
	} else {
		logger.Log.Warn("POSTGRES_HOST not set, transactions are kept in memory")
		store = repositories.NewMemoryTransactionRepository()
	}

	// Locking and quote cache
	var locker services.Locker = services.NewKeyedMutex()
	if cfg.redisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password:     cfg.redisPassword,
			DB:           cfg.redisDB,
			PoolSize:     cfg.redisPoolSize,
			MinIdleConns: cfg.redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()

		locker = repositories.NewRedisLocker(rdb, cfg.lockTTL, 50*time.Millisecond)
		if quotes != nil {
			quotes = services.NewQuoteService(quotes, repositories.NewQuoteCacheRepository(rdb, cfg.quoteCacheExp))
		}
	}

	// Events
	clk := clock.New()
	var writer services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.kafkaBrokers...),
			Topic:        cfg.kafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		defer w.Close()
		writer = w
	}
	events := services.NewKafkaEventPublisher(writer, clk)

	// Collaborators
	horizon := facades.NewHorizonFacade(cfg.horizonURL, cfg.callbackTimeout)
	customers := facades.NewCustomerFacade(cfg.customerCallbackURL, cfg.callbackTimeout)

	dispatcher := services.NewRpcDispatcher(
		store,
		locker,
		services.NewAssetRegistry(assets),
		quotes,
		horizon,
		customers,
		events,
		clk,
	)
	rpcService := services.NewRpcService(dispatcher, cfg.batchSizeLimit)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Get("/health", handlers.NewHealthHandler(health))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	r.Group(func(r chi.Router) {
		switch cfg.authType {
		case authJWT:
			r.Use(middlewares.AuthMiddleware(jwt.New(
				jwt.WithSecretKey(cfg.authSecret),
				jwt.WithLeeway(cfg.authLeeway),
			)))
		case authAPIKey:
			r.Use(middlewares.APIKeyMiddleware([]byte(cfg.apiKeyHash)))
		}
		r.Post("/", handlers.NewRpcHandler(rpcService))
		r.Post("/rpc", handlers.NewRpcHandler(rpcService))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
