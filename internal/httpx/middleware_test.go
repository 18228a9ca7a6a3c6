package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func token(t *testing.T, businessID string, role auth.Role) string {
	t.Helper()
	claims := auth.Claims{
		BusinessID: businessID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAuthRequire(t *testing.T) {
	a := &Auth{Secret: testSecret, BusinessID: "biz-1"}

	var gotClaims auth.Claims
	handler := a.Require(auth.CapViewSales)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	do := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/sales", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no token -> 401", func(t *testing.T) {
		if rec := do(""); rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %d", rec.Code)
		}
	})

	t.Run("not bearer -> 401", func(t *testing.T) {
		if rec := do("Basic abc"); rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %d", rec.Code)
		}
	})

	t.Run("garbage token -> 401", func(t *testing.T) {
		if rec := do("Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %d", rec.Code)
		}
	})

	t.Run("wrong business -> 403", func(t *testing.T) {
		if rec := do("Bearer " + token(t, "biz-2", auth.RoleAdmin)); rec.Code != http.StatusForbidden {
			t.Errorf("code = %d", rec.Code)
		}
	})

	t.Run("role without capability -> 403", func(t *testing.T) {
		if rec := do("Bearer " + token(t, "biz-1", auth.RoleCocina)); rec.Code != http.StatusForbidden {
			t.Errorf("code = %d", rec.Code)
		}
	})

	t.Run("admin -> 200 with claims", func(t *testing.T) {
		if rec := do("Bearer " + token(t, "biz-1", auth.RoleAdmin)); rec.Code != http.StatusOK {
			t.Fatalf("code = %d", rec.Code)
		}
		if gotClaims.BusinessID != "biz-1" || gotClaims.Role != auth.RoleAdmin {
			t.Errorf("claims = %+v", gotClaims)
		}
	})
}
