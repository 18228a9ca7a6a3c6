package httpx

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/sales"
)

func TestParseFilter(t *testing.T) {
	t.Run("absent means all", func(t *testing.T) {
		f, err := parseFilter(httptest.NewRequest("GET", "/sales", nil))
		if err != nil {
			t.Fatal(err)
		}
		if f.Type != sales.FilterAll {
			t.Errorf("type = %s, want all", f.Type)
		}
	})

	t.Run("week", func(t *testing.T) {
		f, err := parseFilter(httptest.NewRequest("GET", "/sales?filter=week", nil))
		if err != nil {
			t.Fatal(err)
		}
		if f.Type != sales.FilterWeek {
			t.Errorf("type = %s, want week", f.Type)
		}
	})

	t.Run("month", func(t *testing.T) {
		f, err := parseFilter(httptest.NewRequest("GET", "/sales?filter=month&year=2024&month=1", nil))
		if err != nil {
			t.Fatal(err)
		}
		if f.Year != 2024 || f.Month != time.January {
			t.Errorf("got %d/%v", f.Year, f.Month)
		}
	})

	t.Run("month out of range", func(t *testing.T) {
		if _, err := parseFilter(httptest.NewRequest("GET", "/sales?filter=month&year=2024&month=13", nil)); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("range", func(t *testing.T) {
		f, err := parseFilter(httptest.NewRequest("GET", "/sales?filter=range&start=2024-01-01&end=2024-01-31", nil))
		if err != nil {
			t.Fatal(err)
		}
		if f.Start.IsZero() || f.End.IsZero() {
			t.Error("range bounds not parsed")
		}
	})

	t.Run("range missing end", func(t *testing.T) {
		if _, err := parseFilter(httptest.NewRequest("GET", "/sales?filter=range&start=2024-01-01", nil)); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		if _, err := parseFilter(httptest.NewRequest("GET", "/sales?filter=decade", nil)); err == nil {
			t.Fatal("expected error")
		}
	})
}
