package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres order store. All queries are scoped to one
// business; cross-tenant reads are not possible through this type.
type Store struct{ DB *pgxpool.Pool }

// Insert writes a new order and allocates its display code from the
// order_code sequence inside the same transaction.
func (s *Store) Insert(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	row := s.DB.QueryRow(ctx, `
		INSERT INTO orders(id, business_id, order_code, customer_name, items, total, status, payment_method, created_at)
		VALUES ($1, $2, 'ORD-' || lpad(nextval('order_code_seq')::text, 3, '0'), $3, $4, $5, $6, NULL, $7)
		RETURNING order_code
	`, o.ID, o.BusinessID, o.CustomerName, items, o.Total, string(o.Status), o.CreatedAt)
	return row.Scan(&o.OrderCode)
}

// UpdateStatus overwrites the status field of one order.
func (s *Store) UpdateStatus(ctx context.Context, businessID, orderID string, st Status) error {
	tag, err := s.DB.Exec(ctx,
		`UPDATE orders SET status=$1 WHERE id=$2 AND business_id=$3`,
		string(st), orderID, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Complete marks an order delivered. Status, payment method and
// delivered_at land in one statement so they can never diverge;
// duration_minutes is derived from created_at in SQL.
func (s *Store) Complete(ctx context.Context, businessID, orderID string, method PaymentMethod, deliveredAt time.Time) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE orders
		SET status=$1,
		    payment_method=$2,
		    delivered_at=$3,
		    duration_minutes=GREATEST(0, floor(extract(epoch FROM ($3::timestamptz - created_at)) / 60))::int
		WHERE id=$4 AND business_id=$5
	`, string(StatusEntregada), string(method), deliveredAt, orderID, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, businessID, orderID string) (Order, error) {
	row := s.DB.QueryRow(ctx, `
		SELECT id, business_id, order_code, customer_name, items, total, status, payment_method, created_at, delivered_at, duration_minutes
		FROM orders WHERE id=$1 AND business_id=$2
	`, orderID, businessID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	return o, err
}

// ListActive returns the not-yet-delivered orders, oldest first, so the
// kitchen board shows them in arrival order.
func (s *Store) ListActive(ctx context.Context, businessID string) ([]Order, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, business_id, order_code, customer_name, items, total, status, payment_method, created_at, delivered_at, duration_minutes
		FROM orders WHERE business_id=$1 AND status <> $2
		ORDER BY created_at ASC
	`, businessID, string(StatusEntregada))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListDelivered returns delivered orders, most recent delivery first.
func (s *Store) ListDelivered(ctx context.Context, businessID string) ([]Order, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, business_id, order_code, customer_name, items, total, status, payment_method, created_at, delivered_at, duration_minutes
		FROM orders WHERE business_id=$1 AND status = $2
		ORDER BY delivered_at DESC
	`, businessID, string(StatusEntregada))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o        Order
		items    []byte
		status   string
		method   *string
		duration *int
	)
	if err := row.Scan(&o.ID, &o.BusinessID, &o.OrderCode, &o.CustomerName, &items, &o.Total,
		&status, &method, &o.CreatedAt, &o.DeliveredAt, &duration); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	if method != nil {
		o.PaymentMethod = PaymentMethod(*method)
	}
	if duration != nil {
		o.DurationMinutes = *duration
	}
	return o, nil
}
