package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/infra/http/middleware"
	"github.com/summitview/outreach/internal/usecase"
)

type LeadHandler struct {
	Capture  *usecase.CaptureLeadUseCase
	LeadRepo entity.LeadRepositoryInterface
	LogRepo  entity.MessageLogRepositoryInterface
	Log      *zap.SugaredLogger
}

func NewLeadHandler(
	capture *usecase.CaptureLeadUseCase,
	leadRepo entity.LeadRepositoryInterface,
	logRepo entity.MessageLogRepositoryInterface,
	log *zap.SugaredLogger,
) *LeadHandler {
	return &LeadHandler{Capture: capture, LeadRepo: leadRepo, LogRepo: logRepo, Log: log}
}

// HandleCapture is the public lead-capture endpoint. 201 once the lead row
// is stored; welcome sends and enrollment happen best-effort before the
// response but never change the outcome.
func (h *LeadHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadSubmission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.Capture.Execute(r.Context(), input)
	if err != nil {
		var verrs usecase.ValidationErrors
		if errors.As(err, &verrs) {
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Validation failed",
				"details": verrs.Fields(),
			})
			return
		}
		h.Log.Errorw("lead capture failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to capture lead")
		return
	}

	middleware.RecordLeadCaptured()
	respondJSON(w, http.StatusCreated, output)
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.List(r.Context())
	if err != nil {
		h.Log.Errorw("failed to list leads", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	respondJSON(w, http.StatusOK, leads)
}

type updateLeadRequest struct {
	ID string `json:"id"`
	entity.LeadPatch
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.LeadRepo.Update(r.Context(), req.ID, req.LeadPatch); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.Log.Errorw("failed to update lead", "lead_id", req.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.LeadRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.Log.Errorw("failed to delete lead", "lead_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete lead")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// HandleUpdateStatus backs the pipeline drag-and-drop: a status-only write.
func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == "" || req.Status == "" {
		respondError(w, http.StatusBadRequest, "id and status are required")
		return
	}

	if err := h.LeadRepo.UpdateStatus(r.Context(), req.ID, req.Status); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.Log.Errorw("failed to update lead status", "lead_id", req.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleMessages returns the lead's conversation history.
func (h *LeadHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	logs, err := h.LogRepo.ListByLead(r.Context(), leadID)
	if err != nil {
		h.Log.Errorw("failed to list messages", "lead_id", leadID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}
	if logs == nil {
		logs = []*entity.MessageLog{}
	}
	respondJSON(w, http.StatusOK, logs)
}
