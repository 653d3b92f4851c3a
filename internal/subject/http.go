package subject

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/subjects", h.GetAllSubjects)
	router.Get("/subjects/{id}", h.GetSubject)
}

func (h *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/subjects", h.CreateSubject)
	router.Put("/subjects/{id}", h.UpdateSubject)
	router.Delete("/subjects/{id}", h.DeleteSubject)
}

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var subject Subject
	if err := json.NewDecoder(r.Body).Decode(&subject); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&subject); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "creating subject", "name", subject.Name)
	created, err := h.service.CreateSubject(r.Context(), &subject)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAllSubjects(w http.ResponseWriter, r *http.Request) {
	offset, limit := httputil.ListParams(r)

	subjects, err := h.service.GetAllSubjects(r.Context(), offset, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, subjects)
}

func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid subject ID")
		return
	}

	subject, err := h.service.GetSubjectByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, subject)
}

func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid subject ID")
		return
	}

	var subject Subject
	if err := json.NewDecoder(r.Body).Decode(&subject); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&subject); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	subject.ID = id

	h.logger.InfoContext(r.Context(), "updating subject", "id", id)
	if err := h.service.UpdateSubject(r.Context(), &subject); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, subject)
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid subject ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting subject", "id", id)
	if err := h.service.DeleteSubject(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrSubjectNotFound) {
		httputil.RespondWithError(w, http.StatusNotFound, "subject not found")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "subject request failed", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
