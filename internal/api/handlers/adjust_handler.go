package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/markdave123-py/Comparo/internal/core/adjust"
	"github.com/markdave123-py/Comparo/internal/models"
)

type AdjustHandler struct {
	logger *slog.Logger
}

func NewAdjustHandler(logger *slog.Logger) *AdjustHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdjustHandler{logger: logger}
}

type AdjustRequest struct {
	Subject    adjust.Subject          `json:"subject"`
	Comps      []models.PropertyRecord `json:"comps"`
	Conditions []int                   `json:"conditions"`
}

// Adjust prices previously extracted comps against a subject property.
func (h *AdjustHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := adjust.Adjust(req.Subject, req.Comps, req.Conditions)
	if err != nil {
		h.logger.Debug("rejected adjustment request", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
