package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, icon, color FROM categories WHERE id = ?`, id)

	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("category get: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Insert(ctx context.Context, c Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color) VALUES (?, ?, ?, ?)
	`, c.ID, c.Name, c.Icon, c.Color)
	if err != nil {
		return fmt.Errorf("category insert: %w", err)
	}
	return nil
}

// UpdateCosmetics changes the display fields only; the id is immutable once
// missions reference it.
func (r *CategoryRepo) UpdateCosmetics(ctx context.Context, id, name, icon, color string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?
	`, name, icon, color, id)
	if err != nil {
		return fmt.Errorf("category update: %w", err)
	}
	return nil
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, icon, color FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("category list: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("category scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category rows: %w", err)
	}
	return out, nil
}
