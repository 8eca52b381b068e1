package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"backoffice/internal/export"
	"backoffice/internal/model"
	"backoffice/internal/service"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func ListContactsHandler(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := contactSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if contacts == nil {
			contacts = []model.Contact{}
		}
		writeJSON(w, http.StatusOK, contacts)
	}
}

// CreateContactHandler accepts the public storefront contact form.
func CreateContactHandler(contactSvc *service.ContactService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		contact, err := contactSvc.Create(r.Context(), model.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, contact)
	}
}

func ExportContactsHandler(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := contactSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
		if err := export.WriteContactsCSV(w, contacts); err != nil {
			slog.Error("contacts export failed", "error", err)
		}
	}
}
