package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"backoffice/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	db *sql.DB
}

func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns every product joined with its category name, the way the
// admin product grid consumes it.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.image, p.options_title, p.options,
		       p.category_id, c.name, p.visible, p.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		var options []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.OptionsTitle,
			&options, &p.CategoryID, &p.CategoryName, &p.Visible, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if err := json.Unmarshal(options, &p.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return products, nil
}

func (s *ProductService) Create(ctx context.Context, p model.Product) (model.Product, error) {
	options, err := json.Marshal(p.Options)
	if err != nil {
		return model.Product{}, fmt.Errorf("marshal options: %w", err)
	}

	p.ID = uuid.New()
	p.Visible = true
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, image, options_title, options, category_id, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, p.ID, p.Name, p.Description, p.Image, p.OptionsTitle, options, p.CategoryID, p.Visible)

	if err := row.Scan(&p.CreatedAt); err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, p model.Product) error {
	options, err := json.Marshal(p.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, image = $3, options_title = $4, options = $5, category_id = $6
		WHERE id = $7
	`, p.Name, p.Description, p.Image, p.OptionsTitle, options, p.CategoryID, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ToggleVisible flips whether the product shows up in the storefront menu.
func (s *ProductService) ToggleVisible(ctx context.Context, id uuid.UUID) (bool, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE products SET visible = NOT visible WHERE id = $1 RETURNING visible
	`, id)

	var visible bool
	if err := row.Scan(&visible); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("toggle visible: %w", err)
	}
	return visible, nil
}
