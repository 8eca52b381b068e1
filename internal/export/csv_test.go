package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/model"
)

func TestWriteOrdersCSV(t *testing.T) {
	order := model.Order{
		ID:          uuid.New(),
		OrderNumber: 1042,
		Products: []model.OrderProduct{
			{Name: "Margherita", Quantity: 2, Price: decimal.NewFromFloat(8.50)},
			{Name: "Cola", Quantity: 1, Price: decimal.NewFromFloat(2.50)},
		},
		TotalPrice: decimal.NewFromFloat(19.50),
		Customer:   model.Customer{Name: "Max Mustermann"},
		Delivery:   model.Delivery{Note: "2nd floor"},
		Payment:    "cash",
		Time:       time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, []model.Order{order}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Order Number", records[0][0])
	assert.Equal(t, []string{
		"1042", "Max Mustermann", "19.50", "cash", "14.03.2025 18:30",
		"Margherita (x2), Cola (x1)", "2nd floor",
	}, records[1])
}

func TestWriteContactsCSV(t *testing.T) {
	contacts := []model.Contact{
		{
			ID:        uuid.New(),
			Name:      "Erika",
			Email:     "erika@example.com",
			Message:   "Great pizza, thanks!",
			CreatedAt: time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteContactsCSV(&buf, contacts))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Erika", "erika@example.com", "Great pizza, thanks!", "02.01.2025 12:00"}, records[1])
}
