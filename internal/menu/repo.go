// Package menu is the catalog backing the POS item picker. The order
// lifecycle never writes here; catalog management is an admin concern.
package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Item struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	Category   string `json:"category"`
}

var ErrItemNotFound = errors.New("menu item not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context, businessID string) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, business_id, name, price, category
		FROM menu_items WHERE business_id=$1
		ORDER BY category, name
	`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.BusinessID, &it.Name, &it.Price, &it.Category); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, it *Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO menu_items(id, business_id, name, price, category)
		VALUES ($1, $2, $3, $4, $5)
	`, it.ID, it.BusinessID, it.Name, it.Price, it.Category)
	return err
}

func (r *Repo) Update(ctx context.Context, it Item) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE menu_items SET name=$1, price=$2, category=$3
		WHERE id=$4 AND business_id=$5
	`, it.Name, it.Price, it.Category, it.ID, it.BusinessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM menu_items WHERE id=$1 AND business_id=$2`, id, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
