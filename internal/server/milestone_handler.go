package server

import (
	"net/http"

	"github.com/fundroom/crm-api/internal/model"
)

type milestoneResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message,omitempty"`
	Milestone *model.Milestone `json:"milestone"`
}

type milestonesResponse struct {
	Success    bool              `json:"success"`
	Milestones []model.Milestone `json:"milestones"`
}

// handleMilestoneUpsert creates or fully overwrites the milestone for a
// lead. The lead id keys the upsert.
func (s *Server) handleMilestoneUpsert(w http.ResponseWriter, r *http.Request) {
	var in model.MilestoneInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.LeadID <= 0 {
		writeError(w, http.StatusBadRequest, "aSheetId is required")
		return
	}

	m, created, err := s.store.UpsertMilestone(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	status := http.StatusOK
	message := "milestone updated"
	if created {
		status = http.StatusCreated
		message = "milestone created"
	}
	writeJSON(w, status, milestoneResponse{Success: true, Message: message, Milestone: m})
}

// handleMilestoneUpdate applies an allow-listed partial update.
func (s *Server) handleMilestoneUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid milestone id")
		return
	}

	var raw map[string]any
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := model.NewMilestonePatch(raw)
	if patch.Len() == 0 {
		writeError(w, http.StatusBadRequest, "no updatable fields provided")
		return
	}

	m, err := s.store.UpdateMilestone(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milestoneResponse{Success: true, Milestone: m})
}

func (s *Server) handleMilestoneGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid milestone id")
		return
	}
	m, err := s.store.GetMilestone(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milestoneResponse{Success: true, Milestone: m})
}

// handleMilestonesByUser lists milestones whose lead is owned by the user.
func (s *Server) handleMilestonesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	ms, err := s.store.ListMilestonesByUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milestonesResponse{Success: true, Milestones: ms})
}

func (s *Server) handleMilestoneList(w http.ResponseWriter, r *http.Request) {
	ms, err := s.store.ListMilestones(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milestonesResponse{Success: true, Milestones: ms})
}
