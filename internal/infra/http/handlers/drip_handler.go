package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/infra/http/middleware"
	"github.com/summitview/outreach/internal/usecase"
)

type DripProcessor interface {
	ProcessDue(ctx context.Context, now time.Time) (usecase.ProcessResult, error)
}

type DripHandler struct {
	Engine DripProcessor
	Log    *zap.SugaredLogger
}

func NewDripHandler(engine DripProcessor, log *zap.SugaredLogger) *DripHandler {
	return &DripHandler{Engine: engine, Log: log}
}

// HandleProcess is the cron-triggered advance-and-send pass. Auth lives in
// the router's CronAuth middleware.
func (h *DripHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	result, err := h.Engine.ProcessDue(r.Context(), now)
	if err != nil {
		h.Log.Errorw("drip processing failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Drip processing failed")
		return
	}

	middleware.RecordDripRun(result.Sent, result.Errors)
	h.Log.Infow("drip run finished", "sent", result.Sent, "errors", result.Errors)

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"sent":        result.Sent,
		"errors":      result.Errors,
		"processedAt": now.UTC().Format(time.RFC3339),
	})
}
