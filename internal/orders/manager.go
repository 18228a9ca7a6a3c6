package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	kafkax "github.com/Mobile-Craft/order-manager/internal/kafka"
	"github.com/Mobile-Craft/order-manager/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// BusinessContext scopes a manager to one tenant. It is passed in
// explicitly; nothing reads ambient global state.
type BusinessContext struct {
	BusinessID string
}

// OrderStore is the remote source of truth for orders.
type OrderStore interface {
	Insert(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, businessID, orderID string, st Status) error
	Complete(ctx context.Context, businessID, orderID string, method PaymentMethod, deliveredAt time.Time) error
	Get(ctx context.Context, businessID, orderID string) (Order, error)
	ListActive(ctx context.Context, businessID string) ([]Order, error)
	ListDelivered(ctx context.Context, businessID string) ([]Order, error)
}

// ChangeFeed carries the "something changed, reload now" signal to
// every client instance, this one included.
type ChangeFeed interface {
	Announce(env Envelope)
}

type ManagerParams struct {
	Business BusinessContext
	Store    OrderStore
	Feed     ChangeFeed
	Redis    *redis.Client // event dedup for the change-feed handler; optional
	Consumer string        // dedup namespace, e.g. "pos-api" or "kitchen"
	Producer string        // stamped on outgoing envelopes
	Now      func() time.Time
	Log      *slog.Logger
}

// Manager owns the local copy of the order collections and mediates
// every mutation. Writes go to the store first; local state only moves
// when a change notification triggers Reload, so all devices converge
// on what the store actually holds.
type Manager struct {
	biz      BusinessContext
	store    OrderStore
	feed     ChangeFeed
	rdb      *redis.Client
	consumer string
	producer string
	now      func() time.Time
	log      *slog.Logger

	mu        sync.RWMutex
	active    []Order
	delivered []Order
	loading   bool
}

func NewManager(p ManagerParams) *Manager {
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Log == nil {
		p.Log = slog.Default()
	}
	if p.Consumer == "" {
		p.Consumer = p.Producer
	}
	return &Manager{
		biz:      p.Business,
		store:    p.Store,
		feed:     p.Feed,
		rdb:      p.Redis,
		consumer: p.Consumer,
		producer: p.Producer,
		now:      p.Now,
		log:      p.Log,
		loading:  true,
	}
}

// Create validates the request, stores a Pendiente order and announces
// the change. Local collections are not touched here; the reload
// triggered by the announcement is what lands the new order.
func (m *Manager) Create(ctx context.Context, customerName string, items []OrderItem) (Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return Order{}, ErrEmptyCustomer
	}
	if len(items) == 0 {
		return Order{}, ErrNoItems
	}
	for _, it := range items {
		if it.Quantity < 1 || it.Price < 0 {
			return Order{}, fmt.Errorf("%w: %s", ErrBadItem, it.Name)
		}
	}

	o := Order{
		BusinessID:   m.biz.BusinessID,
		CustomerName: strings.TrimSpace(customerName),
		Items:        items,
		Total:        ItemsTotal(items),
		Status:       StatusPendiente,
		CreatedAt:    m.now().UTC(),
	}
	if err := m.store.Insert(ctx, &o); err != nil {
		m.log.Error("order insert", "err", err)
		return Order{}, err
	}

	m.announce(EventOrderCreated, o.ID, OrderCreatedPayload{
		OrderID:    o.ID,
		BusinessID: o.BusinessID,
		OrderCode:  o.OrderCode,
		Total:      o.Total,
	})
	return o, nil
}

// AdvanceStatus moves an order one step forward. Unlike the UI-trusting
// original, illegal transitions are rejected here; delivery must go
// through CompleteOrder because it needs a payment method.
func (m *Manager) AdvanceStatus(ctx context.Context, orderID string, next Status) error {
	if !ValidStatus(next) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if next == StatusEntregada {
		return ErrInvalidTransition
	}
	cur, err := m.store.Get(ctx, m.biz.BusinessID, orderID)
	if err != nil {
		return err
	}
	if !CanTransition(cur.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, next)
	}
	if err := m.store.UpdateStatus(ctx, m.biz.BusinessID, orderID, next); err != nil {
		m.log.Error("status update", "order_id", orderID, "err", err)
		return err
	}

	m.announce(EventOrderStatusChanged, orderID, OrderStatusChangedPayload{
		OrderID:    orderID,
		BusinessID: m.biz.BusinessID,
		Status:     next,
	})
	return nil
}

// CompleteOrder delivers a Terminada order: status, payment method and
// delivered_at are set together, never separately.
func (m *Manager) CompleteOrder(ctx context.Context, orderID string, method PaymentMethod) error {
	if !ValidPaymentMethod(method) {
		return fmt.Errorf("%w: %q", ErrInvalidPayment, method)
	}
	cur, err := m.store.Get(ctx, m.biz.BusinessID, orderID)
	if err != nil {
		return err
	}
	if cur.Status != StatusTerminada {
		return fmt.Errorf("%w: status is %s", ErrNotReadyToDeliver, cur.Status)
	}
	if err := m.store.Complete(ctx, m.biz.BusinessID, orderID, method, m.now().UTC()); err != nil {
		m.log.Error("order complete", "order_id", orderID, "err", err)
		return err
	}

	m.announce(EventOrderDelivered, orderID, OrderDeliveredPayload{
		OrderID:       orderID,
		BusinessID:    m.biz.BusinessID,
		PaymentMethod: method,
		Total:         cur.Total,
	})
	return nil
}

// Reload replaces both collections wholesale from the store. On error
// the previous collections stay in place; the loading flag clears
// either way so readers never hang on a failed load. Concurrent
// reloads resolve last-write-wins, which is fine because each one
// carries a complete snapshot.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	active, err := m.store.ListActive(ctx, m.biz.BusinessID)
	if err != nil {
		m.log.Error("reload active", "err", err)
		return err
	}
	delivered, err := m.store.ListDelivered(ctx, m.biz.BusinessID)
	if err != nil {
		m.log.Error("reload delivered", "err", err)
		return err
	}

	m.mu.Lock()
	m.active = active
	m.delivered = delivered
	m.mu.Unlock()
	return nil
}

// HandleChange is the change-feed consumer handler: decode, dedup,
// reload. A reload error is returned so the offset is not committed
// and the at-least-once feed redelivers.
func (m *Manager) HandleChange(ctx context.Context, msg kafkago.Message) error {
	var env Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return err
	}
	if m.rdb != nil {
		key := fmt.Sprintf(redisx.KeyDedup, m.consumer, env.EventID)
		if seen, _ := redisx.Exists(ctx, m.rdb, key); seen {
			return nil
		}
		_ = m.rdb.Set(ctx, key, "1", redisx.TTLDedup).Err()
	}
	return m.Reload(ctx)
}

// Active returns a copy of the not-yet-delivered orders, arrival order.
func (m *Manager) Active() []Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Order(nil), m.active...)
}

// Delivered returns a copy of the delivered orders, newest first.
func (m *Manager) Delivered() []Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Order(nil), m.delivered...)
}

func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) announce(eventType, orderID string, payload any) {
	if m.feed == nil {
		return
	}
	m.feed.Announce(Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    m.now().UTC(),
		Producer:      m.producer,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	})
}
