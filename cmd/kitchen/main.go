package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/config"
	kafkax "github.com/Mobile-Craft/order-manager/internal/kafka"
	"github.com/Mobile-Craft/order-manager/internal/kitchen"
	"github.com/Mobile-Craft/order-manager/internal/orders"
	"github.com/Mobile-Craft/order-manager/internal/postgres"
	"github.com/Mobile-Craft/order-manager/internal/redisx"
	"github.com/Mobile-Craft/order-manager/pkg/logger"
	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
)

// The kitchen terminal is a read-only order client: it never mutates,
// it just reloads on every change notification and redraws the board.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: "kitchen-display", Env: cfg.Env, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	mgr := orders.NewManager(orders.ManagerParams{
		Business: orders.BusinessContext{BusinessID: cfg.BusinessID},
		Store:    &orders.Store{DB: db},
		Redis:    rdb,
		Consumer: "kitchen",
		Producer: "kitchen-display",
		Log:      log,
	})
	display := &kitchen.Display{Out: os.Stdout}

	if err := mgr.Reload(ctx); err != nil {
		log.Warn("initial reload failed, starting empty", "err", err)
	}
	display.Render(mgr.Active())

	group := getenv("KITCHEN_GROUP", "kitchen-display")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrdersChanged, 1)

	go func() {
		log.Info("kitchen consumer started", "group", group, "topic", orders.TopicOrdersChanged)
		err := cons.Start(ctx, func(ctx context.Context, m kafkago.Message) error {
			if err := mgr.HandleChange(ctx, m); err != nil {
				return err
			}
			display.Render(mgr.Active())
			return nil
		})
		if err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
