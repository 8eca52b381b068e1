package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"backoffice/internal/model"
)

type ContactService struct {
	db *sql.DB
}

func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return contacts, nil
}

// Create stores a message submitted through the storefront contact form.
func (s *ContactService) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	c.ID = uuid.New()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO contacts (id, name, email, message) VALUES ($1, $2, $3, $4) RETURNING created_at
	`, c.ID, c.Name, c.Email, c.Message)

	if err := row.Scan(&c.CreatedAt); err != nil {
		return model.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}
