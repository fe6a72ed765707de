package products

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new product.
func (r *PGRepo) Create(ctx context.Context, p Product) error {
	const query = `
INSERT INTO products (id, name, article_number, manufacturing_duration_min, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.ArticleNumber, p.ManufacturingDurationMin, p.CreatedAt)
	return err
}

// Update replaces an existing product's fields.
func (r *PGRepo) Update(ctx context.Context, p Product) error {
	const query = `
UPDATE products
SET name = $2, article_number = $3, manufacturing_duration_min = $4
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.ArticleNumber, p.ManufacturingDurationMin)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM products WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a product by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Product, error) {
	const query = `
SELECT id, name, article_number, manufacturing_duration_min, created_at
FROM products
WHERE id = $1`

	var p Product
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.ArticleNumber,
		&p.ManufacturingDurationMin,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// List returns all products sorted by name.
func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	const query = `
SELECT id, name, article_number, manufacturing_duration_min, created_at
FROM products
ORDER BY name ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ArticleNumber, &p.ManufacturingDurationMin, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
