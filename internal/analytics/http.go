package analytics

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/httputil"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/average_grade/calculate-average-grade", h.CalculateAverageGrade)
}

func (h *Handler) CalculateAverageGrade(w http.ResponseWriter, r *http.Request) {
	var req AverageGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "computing average grades",
		"filter_by", req.FilterBy, "start_date", req.StartDate, "end_date", req.EndDate)

	result, err := h.service.ComputeAverages(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownDimension) || errors.Is(err, ErrInvalidDate) {
			httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "average grade computation failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.RecordAverageComputed(r.Context(), req.FilterBy)

	httputil.RespondWithJSON(w, http.StatusOK, result)
}
