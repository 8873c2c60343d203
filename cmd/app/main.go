package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/handler"
	"github.com/BloggingApp/comment-service/internal/rabbitmq"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/BloggingApp/comment-service/internal/repository/postgres"
	"github.com/BloggingApp/comment-service/internal/repository/redisrepo"
	"github.com/BloggingApp/comment-service/internal/repository/sqlite"
	"github.com/BloggingApp/comment-service/internal/server"
	"github.com/BloggingApp/comment-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := loadEnv(); err != nil {
		logger.Sugar().Warnf("failed to load .env file: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	storageConfig := config.StorageConfig{
		Driver:    viper.GetString("storage.driver"),
		SQLiteDSN: viper.GetString("storage.sqlite-dsn"),
	}
	if err := storageConfig.Validate(); err != nil {
		logger.Sugar().Panicf("invalid storage config: %s", err.Error())
	}

	store, closeStore := openStore(ctx, logger, storageConfig)
	defer closeStore()

	redisRepo := redisrepo.NewNop()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: addr,
		})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)
		defer func() { _ = rdb.Close() }()
		redisRepo = redisrepo.New(rdb)
	} else {
		logger.Warn("REDIS_ADDR is not set, caching disabled")
	}

	var broker service.Broker
	if viper.GetBool("rabbitmq.enabled") {
		mq, err := rabbitmq.New(os.Getenv("RABBITMQ_CONN_STRING"))
		if err != nil {
			logger.Sugar().Panicf("failed to connect to rabbitmq: %s", err.Error())
		}
		logger.Info("Successfully connected to RabbitMQ")
		defer mq.Close()
		broker = mq
	}

	commentsConfig := config.CommentsConfig{
		PageSize:    viper.GetInt("comments.page-size"),
		MaxPageSize: viper.GetInt("comments.max-page-size"),
		CacheTTL:    viper.GetDuration("cache.ttl"),
	}

	repos := repository.New(store, redisRepo)
	services := service.New(logger, repos, broker, commentsConfig)
	handlers := handler.New(services, logger, handler.Options{
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		AllowOrigins: origins(viper.GetString("client.origin")),
	})

	srv := server.New(config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	})
	go func() {
		if err := srv.Run(); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	go services.StartConsumeAll(ctx)

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

func openStore(ctx context.Context, logger *zap.Logger, cfg config.StorageConfig) (*repository.Store, func()) {
	switch cfg.Driver {
	case config.StorageSQLite:
		db, err := sqlite.Connect(cfg.SQLiteDSN)
		if err != nil {
			logger.Sugar().Panicf("failed to open sqlite: %s", err.Error())
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			logger.Sugar().Panicf("failed to migrate sqlite: %s", err.Error())
		}
		logger.Sugar().Infof("Using SQLite storage: %s", cfg.SQLiteDSN)
		return sqlite.New(db), func() { _ = db.Close() }
	default:
		dbConfig := config.DBConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			DBName:   os.Getenv("POSTGRES_DATABASE"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}
		db, err := postgres.DB(ctx, dbConfig)
		if err != nil {
			logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
		}
		if err := db.Ping(ctx); err != nil {
			logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Sugar().Panicf("failed to migrate postgres: %s", err.Error())
		}
		logger.Info("Successfully connected to PostgreSQL")
		return postgres.New(db), db.Close
	}
}

func origins(value string) []string {
	var result []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
