package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderDelivered     = "OrderDelivered"
)

// Envelope wraps every change-feed message. Consumers only need the
// signal itself to trigger a reload; the payload is informational.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID    string `json:"order_id"`
	BusinessID string `json:"business_id"`
	OrderCode  string `json:"order_code"`
	Total      int    `json:"total"`
}

type OrderStatusChangedPayload struct {
	OrderID    string `json:"order_id"`
	BusinessID string `json:"business_id"`
	Status     Status `json:"status"`
}

type OrderDeliveredPayload struct {
	OrderID       string        `json:"order_id"`
	BusinessID    string        `json:"business_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         int           `json:"total"`
}
