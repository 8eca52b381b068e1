package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Extra is an add-on a customer can pick for any product in the category.
type Extra struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Extras    []Extra   `json:"extras"`
	CreatedAt time.Time `json:"created_at"`
}
