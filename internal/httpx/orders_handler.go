package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/auth"
	"github.com/Mobile-Craft/order-manager/internal/orders"
	"github.com/Mobile-Craft/order-manager/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type OrdersHandler struct {
	Manager *orders.Manager
	Store   orders.OrderStore
	Redis   *redis.Client
	Auth    *Auth
}

type CreateOrderReq struct {
	CustomerName string             `json:"customer_name"`
	Items        []orders.OrderItem `json:"items"`
}

type AdvanceStatusReq struct {
	Status orders.Status `json:"status"`
}

type CompleteOrderReq struct {
	PaymentMethod orders.PaymentMethod `json:"payment_method"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.With(h.Auth.Require(auth.CapCreateOrder)).Post("/orders", h.createOrder)
	r.With(h.Auth.Require(auth.CapAdvanceStatus)).Post("/orders/{id}/status", h.advanceStatus)
	r.With(h.Auth.Require(auth.CapCompleteOrder)).Post("/orders/{id}/complete", h.completeOrder)
	r.With(h.Auth.Require(auth.CapViewOrders)).Get("/orders", h.listActive)
	r.With(h.Auth.Require(auth.CapViewOrders)).Get("/orders/delivered", h.listDelivered)
	r.With(h.Auth.Require(auth.CapViewOrders)).Get("/orders/{id}", h.getOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, orders.ErrNotReadyToDeliver):
		return http.StatusConflict
	case errors.Is(err, orders.ErrEmptyCustomer),
		errors.Is(err, orders.ErrNoItems),
		errors.Is(err, orders.ErrBadItem),
		errors.Is(err, orders.ErrInvalidStatus),
		errors.Is(err, orders.ErrInvalidPayment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Manager.Create(ctx, req.CustomerName, req.Items)
	if err != nil {
		writeJSON(w, orderErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	h.cacheStatus(ctx, o.ID, o.Status)
	writeJSON(w, http.StatusAccepted, o)
}

func (h *OrdersHandler) advanceStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	var req AdvanceStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Manager.AdvanceStatus(ctx, orderID, req.Status); err != nil {
		writeJSON(w, orderErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	h.cacheStatus(ctx, orderID, req.Status)
	writeJSON(w, http.StatusOK, map[string]any{"id": orderID, "status": req.Status})
}

func (h *OrdersHandler) completeOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	var req CompleteOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Manager.CompleteOrder(ctx, orderID, req.PaymentMethod); err != nil {
		writeJSON(w, orderErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	h.cacheStatus(ctx, orderID, orders.StatusEntregada)
	writeJSON(w, http.StatusOK, map[string]any{"id": orderID, "status": orders.StatusEntregada})
}

func (h *OrdersHandler) listActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"loading": h.Manager.Loading(),
		"orders":  h.Manager.Active(),
	})
}

func (h *OrdersHandler) listDelivered(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"loading": h.Manager.Loading(),
		"orders":  h.Manager.Delivered(),
	})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	claims, _ := ClaimsFrom(r)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// status cache first, store second
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	o, err := h.Store.Get(ctx, claims.BusinessID, orderID)
	if err != nil {
		writeJSON(w, orderErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}
	h.cacheStatus(ctx, o.ID, o.Status)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) cacheStatus(ctx context.Context, orderID string, st orders.Status) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	body, _ := json.Marshal(map[string]any{"id": orderID, "status": st})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
}
