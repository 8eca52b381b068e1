package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"backoffice/internal/model"
	"backoffice/internal/service"
)

type productRequest struct {
	Name         string                `json:"name" validate:"required"`
	Description  string                `json:"description"`
	Image        string                `json:"image" validate:"required,url"`
	OptionsTitle string                `json:"optionsTitle"`
	Options      []model.ProductOption `json:"options" validate:"required,min=1,dive"`
	CategoryID   uuid.UUID             `json:"menuId" validate:"required"`
}

func ListProductsHandler(productSvc *service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := productSvc.List(r.Context())
		if err != nil {
			slog.Error("product list failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if products == nil {
			products = []model.Product{}
		}
		writeJSON(w, http.StatusOK, products)
	}
}

func CreateProductHandler(productSvc *service.ProductService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		product, err := productSvc.Create(r.Context(), toProduct(req))
		if err != nil {
			slog.Error("product create failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, product)
	}
}

func UpdateProductHandler(productSvc *service.ProductService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		var req productRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		product := toProduct(req)
		product.ID = id
		if err := productSvc.Update(r.Context(), product); err != nil {
			switch {
			case errors.Is(err, service.ErrProductNotFound):
				http.Error(w, "product not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteProductHandler(productSvc *service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		if err := productSvc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrProductNotFound):
				http.Error(w, "product not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleProductVisibleHandler(productSvc *service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		visible, err := productSvc.ToggleVisible(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrProductNotFound):
				http.Error(w, "product not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"visible": visible})
	}
}

func toProduct(req productRequest) model.Product {
	title := req.OptionsTitle
	if title == "" {
		title = "Select a size"
	}
	return model.Product{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		OptionsTitle: title,
		Options:      req.Options,
		CategoryID:   req.CategoryID,
	}
}
