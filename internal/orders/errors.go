package orders

import "errors"

var (
	ErrEmptyCustomer     = errors.New("customer name is required")
	ErrNoItems           = errors.New("order needs at least one item")
	ErrBadItem           = errors.New("item has invalid quantity or price")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidPayment    = errors.New("unknown payment method")
	ErrNotReadyToDeliver = errors.New("order is not ready for delivery")
)
