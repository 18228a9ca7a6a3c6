package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/auth"
	"github.com/Mobile-Craft/order-manager/internal/menu"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	Repo *menu.Repo
	Auth *Auth
}

type MenuItemReq struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
}

func (r MenuItemReq) validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Category) == "" || r.Price < 0 {
		return errors.New("name, category and a non-negative price are required")
	}
	return nil
}

func (h *MenuHandler) Register(r *chi.Mux) {
	r.With(h.Auth.Require(auth.CapViewOrders)).Get("/menu", h.list)
	r.With(h.Auth.Require(auth.CapManageMenu)).Post("/menu", h.create)
	r.With(h.Auth.Require(auth.CapManageMenu)).Put("/menu/{id}", h.update)
	r.With(h.Auth.Require(auth.CapManageMenu)).Delete("/menu/{id}", h.delete)
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r)
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.List(ctx, claims.BusinessID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r)
	var req MenuItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := req.validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it := menu.Item{
		BusinessID: claims.BusinessID,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price,
		Category:   strings.TrimSpace(req.Category),
	}
	if err := h.Repo.Create(ctx, &it); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *MenuHandler) update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r)
	var req MenuItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := req.validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it := menu.Item{
		ID:         chi.URLParam(r, "id"),
		BusinessID: claims.BusinessID,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price,
		Category:   strings.TrimSpace(req.Category),
	}
	if err := h.Repo.Update(ctx, it); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, menu.ErrItemNotFound) {
			code = http.StatusNotFound
		}
		writeJSON(w, code, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *MenuHandler) delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r)
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, claims.BusinessID, chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, menu.ErrItemNotFound) {
			code = http.StatusNotFound
		}
		writeJSON(w, code, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
