package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductOption is one purchasable size of a product.
type ProductOption struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	OptionsTitle string          `json:"optionsTitle"`
	Options      []ProductOption `json:"options"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Visible      bool            `json:"visible"`
	CreatedAt    time.Time       `json:"created_at"`
}
