package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"backoffice/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryTaken    = errors.New("category name already exists")
)

type CategoryService struct {
	db *sql.DB
}

func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image, extras, created_at FROM categories ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var extras []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &extras, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if err := json.Unmarshal(extras, &c.Extras); err != nil {
			return nil, fmt.Errorf("unmarshal extras: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, c model.Category) (model.Category, error) {
	extras, err := json.Marshal(c.Extras)
	if err != nil {
		return model.Category{}, fmt.Errorf("marshal extras: %w", err)
	}

	c.ID = uuid.New()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, image, extras) VALUES ($1, $2, $3, $4) RETURNING created_at
	`, c.ID, c.Name, c.Image, extras)

	if err := row.Scan(&c.CreatedAt); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return model.Category{}, ErrCategoryTaken
		}
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, c model.Category) error {
	extras, err := json.Marshal(c.Extras)
	if err != nil {
		return fmt.Errorf("marshal extras: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, image = $2, extras = $3 WHERE id = $4
	`, c.Name, c.Image, extras, c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCategoryTaken
		}
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category and, through the schema, every product in it.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
