package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims Claims, secret []byte) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCapabilities(t *testing.T) {
	t.Run("admin does everything", func(t *testing.T) {
		for _, c := range []Capability{CapCreateOrder, CapAdvanceStatus, CapCompleteOrder, CapViewOrders, CapViewSales, CapManageMenu} {
			if !RoleAdmin.Can(c) {
				t.Errorf("Admin lacks %s", c)
			}
		}
	})

	t.Run("cajero", func(t *testing.T) {
		if !RoleCajero.Can(CapCreateOrder) || !RoleCajero.Can(CapCompleteOrder) {
			t.Error("Cajero must take and deliver orders")
		}
		if RoleCajero.Can(CapAdvanceStatus) {
			t.Error("Cajero must not move kitchen statuses")
		}
		if RoleCajero.Can(CapViewSales) {
			t.Error("only Admin sees sales")
		}
	})

	t.Run("cocina", func(t *testing.T) {
		if !RoleCocina.Can(CapAdvanceStatus) {
			t.Error("Cocina must move kitchen statuses")
		}
		if RoleCocina.Can(CapCreateOrder) || RoleCocina.Can(CapCompleteOrder) || RoleCocina.Can(CapViewSales) {
			t.Error("Cocina capability set too wide")
		}
	})

	t.Run("unknown role has nothing", func(t *testing.T) {
		if Role("Gerente").Can(CapViewOrders) {
			t.Error("unknown role granted a capability")
		}
	})
}

func TestParseToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := Claims{
		BusinessID: "biz-1",
		Role:       RoleCajero,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("roundtrip", func(t *testing.T) {
		got, err := ParseToken(signToken(t, claims, secret), secret)
		if err != nil {
			t.Fatal(err)
		}
		if got.BusinessID != "biz-1" || got.Role != RoleCajero {
			t.Errorf("claims = %+v", got)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := ParseToken(signToken(t, claims, secret), []byte("other")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		old := claims
		old.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		if _, err := ParseToken(signToken(t, old, secret), secret); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing business", func(t *testing.T) {
		bad := claims
		bad.BusinessID = ""
		if _, err := ParseToken(signToken(t, bad, secret), secret); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		bad := claims
		bad.Role = "Gerente"
		if _, err := ParseToken(signToken(t, bad, secret), secret); err == nil {
			t.Fatal("expected error")
		}
	})
}
