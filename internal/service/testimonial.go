package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"backoffice/internal/model"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

type TestimonialService struct {
	db *sql.DB
}

func NewTestimonialService(db *sql.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

func (s *TestimonialService) List(ctx context.Context) ([]model.Testimonial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author, content, created_at FROM testimonials ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query testimonials: %w", err)
	}
	defer rows.Close()

	var testimonials []model.Testimonial
	for rows.Next() {
		var t model.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		testimonials = append(testimonials, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return testimonials, nil
}

func (s *TestimonialService) Create(ctx context.Context, t model.Testimonial) (model.Testimonial, error) {
	t.ID = uuid.New()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (id, author, content) VALUES ($1, $2, $3) RETURNING created_at
	`, t.ID, t.Author, t.Content)

	if err := row.Scan(&t.CreatedAt); err != nil {
		return model.Testimonial{}, fmt.Errorf("insert testimonial: %w", err)
	}
	return t, nil
}

func (s *TestimonialService) Update(ctx context.Context, t model.Testimonial) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE testimonials SET author = $1, content = $2 WHERE id = $3
	`, t.Author, t.Content, t.ID)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

func (s *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}
