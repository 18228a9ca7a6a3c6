// Package auth gates HTTP access by role. The order core itself is not
// role-aware; every check happens at this boundary.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleCajero Role = "Cajero"
	RoleCocina Role = "Cocina"
)

type Capability string

const (
	CapCreateOrder   Capability = "orders:create"
	CapAdvanceStatus Capability = "orders:advance"
	CapCompleteOrder Capability = "orders:complete"
	CapViewOrders    Capability = "orders:view"
	CapViewSales     Capability = "sales:view"
	CapManageMenu    Capability = "menu:manage"
)

// grants maps each role to its capability set. Cajero takes and hands
// out orders, Cocina moves them through the kitchen, Admin does
// everything including reports and catalog changes.
var grants = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapCreateOrder: true, CapAdvanceStatus: true, CapCompleteOrder: true,
		CapViewOrders: true, CapViewSales: true, CapManageMenu: true,
	},
	RoleCajero: {
		CapCreateOrder: true, CapCompleteOrder: true, CapViewOrders: true,
	},
	RoleCocina: {
		CapAdvanceStatus: true, CapViewOrders: true,
	},
}

func (r Role) Can(c Capability) bool {
	return grants[r][c]
}

func ValidRole(r Role) bool {
	_, ok := grants[r]
	return ok
}

type Claims struct {
	BusinessID string `json:"business_id"`
	Role       Role   `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// ParseToken validates an HMAC-signed token and returns its claims.
func ParseToken(tokenStr string, secret []byte) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.BusinessID == "" || !ValidRole(claims.Role) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
