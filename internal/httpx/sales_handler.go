package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/auth"
	"github.com/Mobile-Craft/order-manager/internal/orders"
	"github.com/Mobile-Craft/order-manager/internal/sales"
	"github.com/go-chi/chi/v5"
)

type SalesHandler struct {
	Manager *orders.Manager
	Auth    *Auth
	Now     func() time.Time
}

func (h *SalesHandler) Register(r *chi.Mux) {
	r.With(h.Auth.Require(auth.CapViewSales)).Get("/sales", h.getSales)
}

// getSales reports over the delivered orders. Filter query params:
//
//	?filter=week
//	?filter=month&year=2024&month=1   (1-12)
//	?filter=range&start=2024-01-01&end=2024-01-31
//	?filter=all (or absent)
func (h *SalesHandler) getSales(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	writeJSON(w, http.StatusOK, sales.Summarize(h.Manager.Delivered(), f, now))
}

func parseFilter(r *http.Request) (sales.DateFilter, error) {
	q := r.URL.Query()
	switch q.Get("filter") {
	case "", "all":
		return sales.DateFilter{Type: sales.FilterAll}, nil
	case "week":
		return sales.DateFilter{Type: sales.FilterWeek}, nil
	case "month":
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			return sales.DateFilter{}, badParam("year")
		}
		month, err := strconv.Atoi(q.Get("month"))
		if err != nil || month < 1 || month > 12 {
			return sales.DateFilter{}, badParam("month")
		}
		return sales.DateFilter{Type: sales.FilterMonth, Year: year, Month: time.Month(month)}, nil
	case "range":
		start, err := time.Parse("2006-01-02", q.Get("start"))
		if err != nil {
			return sales.DateFilter{}, badParam("start")
		}
		end, err := time.Parse("2006-01-02", q.Get("end"))
		if err != nil {
			return sales.DateFilter{}, badParam("end")
		}
		return sales.DateFilter{Type: sales.FilterRange, Start: start, End: end}, nil
	default:
		return sales.DateFilter{}, badParam("filter")
	}
}

type paramError string

func badParam(name string) error { return paramError(name) }

func (e paramError) Error() string { return "invalid or missing param: " + string(e) }
