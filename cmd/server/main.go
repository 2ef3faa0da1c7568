package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/bbrother/cafe-api/internal/adapter/handler"
	"github.com/bbrother/cafe-api/internal/adapter/messaging"
	"github.com/bbrother/cafe-api/internal/adapter/storage"
	"github.com/bbrother/cafe-api/internal/config"
	"github.com/bbrother/cafe-api/internal/core/service"
	"github.com/bbrother/cafe-api/internal/logger"
	"github.com/bbrother/cafe-api/internal/port"
)

func main() {
	cfg := config.Load()
	log := logger.New("cafe-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error("open mysql failed", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Error("ping mysql failed", "error", err)
		os.Exit(1)
	}
	log.Info("connected to mysql")

	store := storage.NewMySQLAdapter(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Error("ensure schema failed", "error", err)
		os.Exit(1)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("ping redis failed", "error", err)
		os.Exit(1)
	}
	log.Info("connected to redis")
	cache := storage.NewRedisAdapter(rdb)

	// RabbitMQ (optional)
	var (
		events    port.EventPublisher
		publisher *messaging.AMQPPublisher
	)
	deps := []handler.DependencyPinger{
		{Name: "mysql", Ping: store.Ping},
		{Name: "redis", Ping: cache.Ping},
	}
	if cfg.AMQPURL != "" {
		publisher, err = messaging.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Error("connect rabbitmq failed", "error", err)
			os.Exit(1)
		}
		events = publisher
		deps = append(deps, handler.DependencyPinger{
			Name: "rabbitmq",
			Ping: func(context.Context) error { return publisher.Ping() },
		})
		log.Info("connected to rabbitmq")
	}

	// Services and HTTP surface
	orders := service.NewOrderService(store, cache, events, log)
	catalog := service.NewCatalogService(store, cache, log)
	httpHandler := handler.NewHTTPHandler(orders, catalog, deps, log)

	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.CORS(mux),
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", "error", err)
	}
	log.Info("http server stopped")

	if publisher != nil {
		publisher.Close()
	}
	rdb.Close()
	db.Close()
	log.Info("connections closed")
}
