package handler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"backoffice/internal/model"
)

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		Products: []orderProductRequest{
			{ProductID: uuid.New(), Name: "Margherita", Quantity: 2, Price: decimal.NewFromFloat(8.50)},
			{ProductID: uuid.New(), Name: "Cola", Quantity: 1, Price: decimal.NewFromFloat(2.50)},
		},
		TotalPrice: decimal.NewFromFloat(19.50),
		Customer:   model.Customer{Name: "Max", Phone: "0151 2345678"},
		Delivery:   model.Delivery{Street: "Leopoldstr. 1", Postcode: "80802"},
		Payment:    "cash",
	}
}

func TestCreateOrderValidation(t *testing.T) {
	validate := NewValidator()

	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validate.Struct(validOrderRequest()))
	})

	t.Run("total must match items", func(t *testing.T) {
		req := validOrderRequest()
		req.TotalPrice = decimal.NewFromFloat(20.00)
		assert.Error(t, validate.Struct(req))
	})

	t.Run("at least one line item", func(t *testing.T) {
		req := validOrderRequest()
		req.Products = nil
		assert.Error(t, validate.Struct(req))
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		req := validOrderRequest()
		req.Products[0].Quantity = 0
		assert.Error(t, validate.Struct(req))
	})

	t.Run("price must be positive", func(t *testing.T) {
		req := validOrderRequest()
		req.Products[0].Price = decimal.NewFromInt(-1)
		assert.Error(t, validate.Struct(req))
	})

	t.Run("unknown payment method rejected", func(t *testing.T) {
		req := validOrderRequest()
		req.Payment = "bitcoin"
		assert.Error(t, validate.Struct(req))
	})
}
