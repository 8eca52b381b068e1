package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"backoffice/internal/model"
	"backoffice/internal/service"
)

type testimonialRequest struct {
	Author  string `json:"author" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func ListTestimonialsHandler(testimonialSvc *service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := testimonialSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if testimonials == nil {
			testimonials = []model.Testimonial{}
		}
		writeJSON(w, http.StatusOK, testimonials)
	}
}

func CreateTestimonialHandler(testimonialSvc *service.TestimonialService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req testimonialRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		testimonial, err := testimonialSvc.Create(r.Context(), model.Testimonial{
			Author:  req.Author,
			Content: req.Content,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, testimonial)
	}
}

func UpdateTestimonialHandler(testimonialSvc *service.TestimonialService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid testimonial id", http.StatusBadRequest)
			return
		}

		var req testimonialRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		err = testimonialSvc.Update(r.Context(), model.Testimonial{
			ID:      id,
			Author:  req.Author,
			Content: req.Content,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTestimonialNotFound):
				http.Error(w, "testimonial not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteTestimonialHandler(testimonialSvc *service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid testimonial id", http.StatusBadRequest)
			return
		}

		if err := testimonialSvc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrTestimonialNotFound):
				http.Error(w, "testimonial not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
