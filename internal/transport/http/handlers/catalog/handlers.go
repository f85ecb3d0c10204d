package cataloghandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/catalog"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/appraisal-types", h.handleListTypes)
		r.Get("/appraisal-types/{typeID}/ranges", h.handleListRanges)
		r.Get("/categories", h.handleListCategories)
		r.Get("/goal-templates", h.handleListTemplates)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_failed", "failed to list appraisal types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRanges(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.Service.ListRanges(r.Context(), chi.URLParam(r, "typeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_failed", "failed to list appraisal ranges", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, ranges, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_failed", "failed to list goal templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}
