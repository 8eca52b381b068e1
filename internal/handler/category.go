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

type categoryRequest struct {
	Name   string        `json:"name" validate:"required"`
	Image  string        `json:"image"`
	Extras []model.Extra `json:"extras" validate:"omitempty,dive"`
}

func ListCategoriesHandler(categorySvc *service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := categorySvc.List(r.Context())
		if err != nil {
			slog.Error("category list failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if categories == nil {
			categories = []model.Category{}
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func CreateCategoryHandler(categorySvc *service.CategoryService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		category, err := categorySvc.Create(r.Context(), model.Category{
			Name:   req.Name,
			Image:  req.Image,
			Extras: req.Extras,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCategoryTaken):
				http.Error(w, "category name already exists", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, category)
	}
}

func UpdateCategoryHandler(categorySvc *service.CategoryService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		var req categoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		err = categorySvc.Update(r.Context(), model.Category{
			ID:     id,
			Name:   req.Name,
			Image:  req.Image,
			Extras: req.Extras,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCategoryNotFound):
				http.Error(w, "category not found", http.StatusNotFound)
			case errors.Is(err, service.ErrCategoryTaken):
				http.Error(w, "category name already exists", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteCategoryHandler(categorySvc *service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		if err := categorySvc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrCategoryNotFound):
				http.Error(w, "category not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
