package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backoffice/internal/events"
	"backoffice/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	db  *sql.DB
	hub *events.Hub
}

func NewOrderService(db *sql.DB, hub *events.Hub) *OrderService {
	return &OrderService{db: db, hub: hub}
}

const orderColumns = `id, order_number, products, total_price, customer, delivery, payment, created_at`

// Create persists a new order and announces it on the event hub.
func (s *OrderService) Create(ctx context.Context, order model.Order) (model.Order, error) {
	products, err := json.Marshal(order.Products)
	if err != nil {
		return model.Order{}, fmt.Errorf("marshal products: %w", err)
	}
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return model.Order{}, fmt.Errorf("marshal customer: %w", err)
	}
	delivery, err := json.Marshal(order.Delivery)
	if err != nil {
		return model.Order{}, fmt.Errorf("marshal delivery: %w", err)
	}

	order.ID = uuid.New()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (id, products, total_price, customer, delivery, payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING order_number, created_at
	`, order.ID, products, order.TotalPrice, customer, delivery, order.Payment)

	if err := row.Scan(&order.OrderNumber, &order.Time); err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", err)
	}

	s.hub.Publish(events.EventNewOrder, order)
	return order, nil
}

// ListFilter narrows the paginated order listing.
type ListFilter struct {
	OrderNumber string
	Date        string // YYYY-MM-DD
}

// List returns one page of orders, newest first, and the total matching count.
func (s *OrderService) List(ctx context.Context, page, limit int, filter ListFilter) ([]model.Order, int, error) {
	where := "TRUE"
	args := []any{}

	if filter.OrderNumber != "" {
		n, err := strconv.ParseInt(filter.OrderNumber, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid order number filter: %w", err)
		}
		args = append(args, n)
		where += fmt.Sprintf(" AND order_number = $%d", len(args))
	}
	if filter.Date != "" {
		day, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date filter: %w", err)
		}
		args = append(args, day)
		where += fmt.Sprintf(" AND created_at >= $%d AND created_at < $%d + INTERVAL '1 day'", len(args), len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, len(args)-1, len(args))

	orders, err := s.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// TodayOrders is the bulk snapshot consumed by the live board: every order
// created since local midnight, oldest first.
func (s *OrderService) TodayOrders(ctx context.Context) ([]model.Order, error) {
	return s.queryOrders(ctx, fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE created_at >= date_trunc('day', now())
		ORDER BY created_at ASC
	`, orderColumns))
}

// DashboardOrders returns the most recent orders for the dashboard table.
func (s *OrderService) DashboardOrders(ctx context.Context) ([]model.Order, error) {
	return s.queryOrders(ctx, fmt.Sprintf(`
		SELECT %s FROM orders
		ORDER BY created_at DESC
		LIMIT 10
	`, orderColumns))
}

// All returns every order, newest first. Used by the CSV export.
func (s *OrderService) All(ctx context.Context) ([]model.Order, error) {
	return s.queryOrders(ctx, fmt.Sprintf(`
		SELECT %s FROM orders
		ORDER BY created_at DESC
	`, orderColumns))
}

func (s *OrderService) GetByNumber(ctx context.Context, number int64) (model.Order, error) {
	orders, err := s.queryOrders(ctx, fmt.Sprintf(`
		SELECT %s FROM orders WHERE order_number = $1
	`, orderColumns), number)
	if err != nil {
		return model.Order{}, err
	}
	if len(orders) == 0 {
		return model.Order{}, ErrOrderNotFound
	}
	return orders[0], nil
}

// SalesStats aggregates revenue for the dashboard chart.
type SalesStats struct {
	YearTotalSales     decimal.Decimal   `json:"yearTotalSales"`
	MonthTotalSales    decimal.Decimal   `json:"monthTotalSales"`
	WeekTotalSales     decimal.Decimal   `json:"weekTotalSales"`
	DayTotalSales      decimal.Decimal   `json:"dayTotalSales"`
	MonthlyOrderTotals []decimal.Decimal `json:"monthlyOrderTotals"` // Jan..Dec of the current year
}

func (s *OrderService) Sales(ctx context.Context) (SalesStats, error) {
	stats := SalesStats{MonthlyOrderTotals: make([]decimal.Decimal, 12)}
	for i := range stats.MonthlyOrderTotals {
		stats.MonthlyOrderTotals[i] = decimal.Zero
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(total_price) FILTER (WHERE created_at >= date_trunc('year',  now())), 0),
			COALESCE(SUM(total_price) FILTER (WHERE created_at >= date_trunc('month', now())), 0),
			COALESCE(SUM(total_price) FILTER (WHERE created_at >= date_trunc('week',  now())), 0),
			COALESCE(SUM(total_price) FILTER (WHERE created_at >= date_trunc('day',   now())), 0)
		FROM orders
	`)
	if err := row.Scan(&stats.YearTotalSales, &stats.MonthTotalSales, &stats.WeekTotalSales, &stats.DayTotalSales); err != nil {
		return SalesStats{}, fmt.Errorf("query sales totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT EXTRACT(MONTH FROM created_at)::int, SUM(total_price)
		FROM orders
		WHERE created_at >= date_trunc('year', now())
		GROUP BY 1
	`)
	if err != nil {
		return SalesStats{}, fmt.Errorf("query monthly totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month int
		var total decimal.Decimal
		if err := rows.Scan(&month, &total); err != nil {
			return SalesStats{}, fmt.Errorf("scan monthly total: %w", err)
		}
		if month >= 1 && month <= 12 {
			stats.MonthlyOrderTotals[month-1] = total
		}
	}
	if err := rows.Err(); err != nil {
		return SalesStats{}, fmt.Errorf("rows iteration failed: %w", err)
	}

	return stats, nil
}

func (s *OrderService) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var products, customer, delivery []byte
		if err := rows.Scan(&o.ID, &o.OrderNumber, &products, &o.TotalPrice, &customer, &delivery, &o.Payment, &o.Time); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(products, &o.Products); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
		if err := json.Unmarshal(customer, &o.Customer); err != nil {
			return nil, fmt.Errorf("unmarshal customer: %w", err)
		}
		if err := json.Unmarshal(delivery, &o.Delivery); err != nil {
			return nil, fmt.Errorf("unmarshal delivery: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}
