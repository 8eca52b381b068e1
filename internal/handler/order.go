package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backoffice/internal/export"
	"backoffice/internal/model"
	"backoffice/internal/service"
)

type orderProductRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Extras    []string        `json:"extras" validate:"omitempty,dive,required"`
	Price     decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	Products   []orderProductRequest `json:"products" validate:"required,min=1,dive"`
	TotalPrice decimal.Decimal       `json:"totalPrice"`
	Customer   model.Customer        `json:"customer" validate:"required"`
	Delivery   model.Delivery        `json:"delivery" validate:"required"`
	Payment    string                `json:"payment" validate:"required,oneof=cash card paypal"`
}

// CreateOrderHandler accepts a storefront checkout. The backing service
// publishes the new-order event that drives the live board and websocket
// clients.
func CreateOrderHandler(orderSvc *service.OrderService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		order := model.Order{
			TotalPrice: req.TotalPrice,
			Customer:   req.Customer,
			Delivery:   req.Delivery,
			Payment:    req.Payment,
		}
		for _, p := range req.Products {
			order.Products = append(order.Products, model.OrderProduct{
				ProductID: p.ProductID,
				Name:      p.Name,
				Quantity:  p.Quantity,
				Extras:    p.Extras,
				Price:     p.Price,
			})
		}

		created, err := orderSvc.Create(r.Context(), order)
		if err != nil {
			slog.Error("order create failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 10)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 10
		}

		filter := service.ListFilter{
			OrderNumber: r.URL.Query().Get("orderNumber"),
			Date:        r.URL.Query().Get("date"),
		}

		orders, total, err := orderSvc.List(r.Context(), page, limit, filter)
		if err != nil {
			slog.Error("order list failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"orders": orders,
			"total":  total,
		})
	}
}

func TodayOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.TodayOrders(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if orders == nil {
			orders = []model.Order{}
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func DashboardOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.DashboardOrders(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func SalesHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := orderSvc.Sales(r.Context())
		if err != nil {
			slog.Error("sales query failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func GetOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.ParseInt(chi.URLParam(r, "orderNumber"), 10, 64)
		if err != nil {
			http.Error(w, "invalid order number", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.GetByNumber(r.Context(), number)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

// ExportOrdersHandler streams every order as a CSV download.
func ExportOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.All(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := export.WriteOrdersCSV(w, orders); err != nil {
			slog.Error("orders export failed", "error", err)
		}
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("invalid field %s (%s)", fe.Field(), fe.Tag())
	}
	return err.Error()
}
