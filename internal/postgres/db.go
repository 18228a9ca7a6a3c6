package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// schema is executed once on startup. order_code is allocated from a
// per-store sequence so the display code survives deletes and restarts.
const schema = `
CREATE SEQUENCE IF NOT EXISTS order_code_seq;

CREATE TABLE IF NOT EXISTS orders (
    id              UUID PRIMARY KEY,
    business_id     UUID NOT NULL,
    order_code      TEXT NOT NULL,
    customer_name   TEXT NOT NULL,
    items           JSONB NOT NULL,
    total           BIGINT NOT NULL,
    status          TEXT NOT NULL,
    payment_method  TEXT,
    created_at      TIMESTAMPTZ NOT NULL,
    delivered_at    TIMESTAMPTZ,
    duration_minutes INT
);

CREATE INDEX IF NOT EXISTS idx_orders_business_status
    ON orders (business_id, status);

CREATE TABLE IF NOT EXISTS menu_items (
    id          UUID PRIMARY KEY,
    business_id UUID NOT NULL,
    name        TEXT NOT NULL,
    price       BIGINT NOT NULL,
    category    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_menu_items_business
    ON menu_items (business_id);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
