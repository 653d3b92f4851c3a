package mark

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
	router.Get("/marks", h.GetAllMarks)
	router.Get("/marks/{id}", h.GetMark)
}

func (h *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/marks", h.CreateMark)
	router.Put("/marks/{id}", h.UpdateMark)
	router.Delete("/marks/{id}", h.DeleteMark)
}

func (h *Handler) CreateMark(w http.ResponseWriter, r *http.Request) {
	var mark Mark
	if err := json.NewDecoder(r.Body).Decode(&mark); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&mark); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "creating mark",
		"student_id", mark.StudentID, "subject_id", mark.SubjectID, "value", mark.Value)
	created, err := h.service.CreateMark(r.Context(), &mark)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAllMarks(w http.ResponseWriter, r *http.Request) {
	offset, limit := httputil.ListParams(r)

	marks, err := h.service.GetAllMarks(r.Context(), offset, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, marks)
}

func (h *Handler) GetMark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid mark ID")
		return
	}

	mark, err := h.service.GetMarkByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, mark)
}

func (h *Handler) UpdateMark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid mark ID")
		return
	}

	var mark Mark
	if err := json.NewDecoder(r.Body).Decode(&mark); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&mark); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	mark.ID = id

	h.logger.InfoContext(r.Context(), "updating mark", "id", id)
	if err := h.service.UpdateMark(r.Context(), &mark); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, mark)
}

func (h *Handler) DeleteMark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid mark ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting mark", "id", id)
	if err := h.service.DeleteMark(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrMarkNotFound) {
		httputil.RespondWithError(w, http.StatusNotFound, "mark not found")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "mark request failed", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
