package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"backoffice/internal/model"
)

// WriteOrdersCSV streams the order listing in the column layout of the admin
// panel's download button.
func WriteOrdersCSV(w io.Writer, orders []model.Order) error {
	cw := csv.NewWriter(w)

	header := []string{"Order Number", "Customer", "Total Price", "Payment Method", "Order Date", "Products", "Note"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, o := range orders {
		products := make([]string, 0, len(o.Products))
		for _, p := range o.Products {
			products = append(products, fmt.Sprintf("%s (x%d)", p.Name, p.Quantity))
		}

		record := []string{
			fmt.Sprintf("%d", o.OrderNumber),
			o.Customer.Name,
			o.TotalPrice.StringFixed(2),
			o.Payment,
			o.Time.Format("02.01.2006 15:04"),
			strings.Join(products, ", "),
			o.Delivery.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write order %d: %w", o.OrderNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteContactsCSV streams contact form submissions.
func WriteContactsCSV(w io.Writer, contacts []model.Contact) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Email", "Message", "CreatedAt"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, c := range contacts {
		record := []string{c.Name, c.Email, c.Message, c.CreatedAt.Format("02.01.2006 15:04")}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write contact %s: %w", c.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
