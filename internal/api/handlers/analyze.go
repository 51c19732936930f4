package handlers

import (
	"net/http"

	"github.com/lumenlearn/skillaudit/internal/service"
	"go.uber.org/zap"
)

type AnalyzeRequest struct {
	Profile        ProfilePayload `json:"profile" validate:"required"`
	SkipActionPlan bool           `json:"skip_action_plan"`
}

// AnalyzeHandler serves single-profile pipeline runs without perturbation.
type AnalyzeHandler struct {
	batches *service.BatchService
	logger  *zap.Logger
}

func NewAnalyzeHandler(batches *service.BatchService, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{batches: batches, logger: logger}
}

// Analyze handles POST /v1/profiles/analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	profile, err := req.Profile.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := h.batches.AnalyzeProfile(r.Context(), &profile, service.RunConfig{SkipActionPlan: req.SkipActionPlan})
	if err != nil {
		h.logger.Error("profile analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "profile analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, run)
}
