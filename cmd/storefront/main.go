package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/web"
	"github.com/fekuna/omnipos-storefront/migrations"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/fekuna/omnipos-storefront/pkg/logger"

	cartH "github.com/fekuna/omnipos-storefront/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-storefront/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-storefront/internal/cart/usecase"

	catH "github.com/fekuna/omnipos-storefront/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-storefront/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront/internal/category/usecase"

	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront/internal/product/usecase"

	userH "github.com/fekuna/omnipos-storefront/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-storefront/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-storefront/internal/user/usecase"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. i18n and templates
	translator, err := i18n.New()
	if err != nil {
		appLogger.Fatal("Could not load messages", zap.Error(err))
	}
	for _, f := range cfg.I18n.ExtraFiles {
		if err := translator.Load(f); err != nil {
			appLogger.Warn("Failed to load message file", zap.String("file", f), zap.Error(err))
		}
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Fatal("Could not parse templates", zap.Error(err))
	}
	responder := web.NewResponder(translator, renderer, appLogger)

	// 4. Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:             cfg.Postgres.Host,
		Port:             cfg.Postgres.Port,
		User:             cfg.Postgres.User,
		Password:         cfg.Postgres.Password,
		DBName:           cfg.Postgres.DBName,
		SSLMode:          cfg.Postgres.SSLMode,
		MaxOpenConns:     cfg.Postgres.MaxOpenConns,
		MaxIdleConns:     cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime:  time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime:  time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		StatementTimeout: time.Duration(cfg.Postgres.StatementTimeout) * time.Millisecond,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrations.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		appLogger.Fatal("Could not apply schema", zap.Error(err))
	}
	cancelMigrate()

	// 5. Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	sessions := auth.NewRedisSessionStore(redisClient, cfg.Session.TTL)

	// 6. Kafka
	var producer broker.Producer = broker.NopProducer{}
	if cfg.Kafka.Enabled() {
		producer = broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, order events are disabled")
	}
	defer producer.Close()

	// 7. Repositories
	userRepo := userRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 8. UseCases
	userUC := userUCPkg.NewUserUseCase(userRepo, sessions, cfg.Session.BcryptCost, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, cfg.Store.ProductCacheTTL, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, cartUC, producer, appLogger)

	// 9. Handlers
	cookie := web.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.CookieSecure,
	}
	loginGuard := web.Throttle(redisClient, "login", cfg.Store.LoginMaxAttempts, cfg.Store.LoginAttemptWindow, responder, appLogger)

	router := mux.NewRouter()
	router.Use(web.Recover(appLogger), web.AccessLog(appLogger), web.Session(sessions, cookie, appLogger))
	router.HandleFunc("/healthz", responder.Health(2*time.Second,
		web.Check{Name: "postgres", Probe: db.PingContext},
		web.Check{Name: "redis", Probe: redisClient.Ping},
	)).Methods(http.MethodGet)

	userH.NewUserHandler(userUC, responder, cookie, loginGuard, appLogger).RegisterRoutes(router)
	catH.NewCategoryHandler(catUC, prodUC, responder, cfg.Store.DefaultCategory, cfg.Store.PageSize, appLogger).RegisterRoutes(router)
	prodH.NewProductHandler(prodUC, catUC, responder, appLogger).RegisterRoutes(router)
	cartH.NewCartHandler(cartUC, responder, appLogger).RegisterRoutes(router)
	orderH.NewOrderHandler(orderUC, responder, appLogger).RegisterRoutes(router)

	// 10. HTTP server
	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 11. gRPC health server
	lis, err := net.Listen("tcp", normalizePort(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
