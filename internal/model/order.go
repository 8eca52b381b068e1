package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderProduct is a single line item: a product reference with the quantity,
// the extras chosen from the product's category and the unit price at order time.
type OrderProduct struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Extras    []string        `json:"extras,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type Delivery struct {
	Street   string `json:"street"`
	Postcode string `json:"postcode"`
	Note     string `json:"note,omitempty"`
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber int64           `json:"orderNumber"`
	Products    []OrderProduct  `json:"products"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Customer    Customer        `json:"customer"`
	Delivery    Delivery        `json:"delivery"`
	Payment     string          `json:"payment"` // cash, card, paypal
	Time        time.Time       `json:"time"`
}
