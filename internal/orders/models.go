package orders

import "time"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentTransfer PaymentMethod = "Transferencia"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentCash || m == PaymentTransfer
}

type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"` // whole currency units
}

type Order struct {
	ID            string        `json:"id"`
	BusinessID    string        `json:"business_id"`
	OrderCode     string        `json:"order_code"` // display code, e.g. ORD-001
	CustomerName  string        `json:"customer_name"`
	Items         []OrderItem   `json:"items"`
	Total         int           `json:"total"` // stored at creation, not re-derived
	Status        Status        `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	DeliveredAt   *time.Time    `json:"delivered_at,omitempty"`
	// DurationMinutes is set at delivery: minutes between creation and
	// delivery, used only by reporting.
	DurationMinutes int `json:"duration_minutes,omitempty"`
}

// AttributionTime is the date an order counts under for reporting:
// delivery time when delivered, creation time otherwise.
func (o Order) AttributionTime() time.Time {
	if o.DeliveredAt != nil {
		return *o.DeliveredAt
	}
	return o.CreatedAt
}

// ItemsTotal recomputes the sum of price x quantity. Create stores this
// once; reads trust the stored Total.
func ItemsTotal(items []OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.Price * it.Quantity
	}
	return total
}
