package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator wires the request validator, including the struct-level check
// that an order's claimed total matches the sum of its line items.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(createOrderStructValidation, createOrderRequest{})
	return v
}

func createOrderStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(createOrderRequest)

	sum := decimal.Zero
	for _, p := range req.Products {
		if p.Price.Sign() <= 0 {
			sl.ReportError(p.Price, "price", "Price", "price_positive", "")
			return
		}
		sum = sum.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	if !sum.Equal(req.TotalPrice) {
		sl.ReportError(req.TotalPrice, "totalPrice", "TotalPrice", "total_match_items", "")
	}
}
