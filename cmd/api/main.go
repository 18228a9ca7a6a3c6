package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/config"
	"github.com/Mobile-Craft/order-manager/internal/httpx"
	kafkax "github.com/Mobile-Craft/order-manager/internal/kafka"
	"github.com/Mobile-Craft/order-manager/internal/menu"
	"github.com/Mobile-Craft/order-manager/internal/orders"
	"github.com/Mobile-Craft/order-manager/internal/postgres"
	"github.com/Mobile-Craft/order-manager/internal/redisx"
	"github.com/Mobile-Craft/order-manager/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: cfg.ServiceName, Env: cfg.Env, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error("db schema", "err", err)
		os.Exit(1)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Change-feed producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrdersChanged, 1024)
	prod.Start(ctx)

	store := &orders.Store{DB: db}
	mgr := orders.NewManager(orders.ManagerParams{
		Business: orders.BusinessContext{BusinessID: cfg.BusinessID},
		Store:    store,
		Feed:     &orders.KafkaFeed{Producer: prod},
		Redis:    rdb,
		Consumer: cfg.ServiceName,
		Producer: cfg.ServiceName,
		Log:      log,
	})

	if err := mgr.Reload(ctx); err != nil {
		log.Warn("initial reload failed, starting empty", "err", err)
	}

	// Change-feed consumer: our own writes come back through the feed,
	// same as everyone else's.
	group := getenv("CHANGE_GROUP", cfg.ServiceName)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrdersChanged, 1)
	go func() {
		log.Info("change-feed consumer started", "group", group, "topic", orders.TopicOrdersChanged)
		if err := cons.Start(ctx, mgr.HandleChange); err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()

	// HTTP
	authmw := &httpx.Auth{Secret: []byte(cfg.JWTSecret), BusinessID: cfg.BusinessID}
	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Manager: mgr, Store: store, Redis: rdb, Auth: authmw}).Register(router)
	(&httpx.SalesHandler{Manager: mgr, Auth: authmw}).Register(router)
	(&httpx.MenuHandler{Repo: &menu.Repo{DB: db}, Auth: authmw}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	cancel()
	prod.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
