package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
)

type CampaignHandler struct {
	Repo entity.CampaignRepositoryInterface
	Log  *zap.SugaredLogger
}

func NewCampaignHandler(repo entity.CampaignRepositoryInterface, log *zap.SugaredLogger) *CampaignHandler {
	return &CampaignHandler{Repo: repo, Log: log}
}

type campaignRequest struct {
	ID       string               `json:"id,omitempty"`
	Name     string               `json:"name"`
	Channel  string               `json:"channel"`
	Messages []entity.DripMessage `json:"messages"`
	IsActive *bool                `json:"is_active,omitempty"`
}

func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.Errorw("failed to list campaigns", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*entity.DripCampaign{}
	}
	respondJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	campaign, err := entity.NewDripCampaign(req.Name, req.Channel, req.Messages)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}

	if err := h.Repo.Create(r.Context(), campaign); err != nil {
		h.Log.Errorw("failed to create campaign", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create campaign")
		return
	}
	respondJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	campaign, err := h.Repo.FindByID(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			respondError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		h.Log.Errorw("failed to load campaign", "campaign_id", req.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load campaign")
		return
	}

	if req.Name != "" {
		campaign.Name = req.Name
	}
	if req.Channel != "" {
		campaign.Channel = req.Channel
	}
	if req.Messages != nil {
		campaign.Messages = req.Messages
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}

	if err := campaign.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), campaign); err != nil {
		h.Log.Errorw("failed to update campaign", "campaign_id", req.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update campaign")
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			respondError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		h.Log.Errorw("failed to delete campaign", "campaign_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete campaign")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
