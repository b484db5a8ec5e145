package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fundroom/crm-api/internal/ingest"
	"github.com/fundroom/crm-api/internal/model"
	"github.com/fundroom/crm-api/internal/sheet"
)

// maxUploadBytes caps spreadsheet uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type reportResponse struct {
	Success bool              `json:"success"`
	Summary ingest.Summary    `json:"summary"`
	Data    ingest.ReportData `json:"data"`
}

type leadResponse struct {
	Success bool        `json:"success"`
	Lead    *model.Lead `json:"lead"`
}

type leadListResponse struct {
	Success bool            `json:"success"`
	Leads   []model.Lead    `json:"leads"`
	Users   []model.UserRef `json:"users"`
}

type leadsResponse struct {
	Success bool         `json:"success"`
	Leads   []model.Lead `json:"leads"`
}

type userLeadsResponse struct {
	Success      bool         `json:"success"`
	UserID       int64        `json:"userId"`
	UserName     string       `json:"userName"`
	TotalRecords int          `json:"totalRecords"`
	Leads        []model.Lead `json:"leads"`
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// handleLeadAdd ingests a batch of leads from a JSON body. A single
// object counts as a batch of one.
func (s *Server) handleLeadAdd(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	rows, err := decodeLeadRows(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "no data provided")
		return
	}

	s.ingestAndRespond(w, r, rows)
}

// handleLeadUpload ingests a batch of leads from an uploaded XLSX file.
func (s *Server) handleLeadUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file")
		return
	}

	rows, err := sheet.ReadLeads(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "not a readable spreadsheet")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "no data provided")
		return
	}

	s.ingestAndRespond(w, r, rows)
}

func (s *Server) ingestAndRespond(w http.ResponseWriter, r *http.Request, rows []ingest.RawLead) {
	report, err := s.processor.Ingest(r.Context(), rows, callerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "no data provided")
		return
	}

	recordIngest("created", report.Summary.Created)
	recordIngest("duplicate", report.Summary.Duplicates)
	recordIngest("failed", report.Summary.Invalid)

	writeJSON(w, http.StatusCreated, reportResponse{
		Success: true,
		Summary: report.Summary,
		Data:    report.Data,
	})
}

// decodeLeadRows accepts either a JSON array of rows or a single object.
func decodeLeadRows(body []byte) ([]ingest.RawLead, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var rows []ingest.RawLead
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
		kept := rows[:0]
		for _, r := range rows {
			if r != nil {
				kept = append(kept, r)
			}
		}
		return kept, nil
	}

	var row ingest.RawLead
	if err := json.Unmarshal(trimmed, &row); err != nil {
		return nil, err
	}
	if row == nil {
		// A literal null decodes without error but carries no fields.
		return nil, nil
	}
	return []ingest.RawLead{row}, nil
}

// handleLeadUpdate applies an allow-listed partial update to one lead.
func (s *Server) handleLeadUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var raw map[string]any
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := model.NewLeadPatch(raw)
	if patch.Len() == 0 {
		writeError(w, http.StatusBadRequest, "no updatable fields provided")
		return
	}

	lead, err := s.store.UpdateLead(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leadResponse{Success: true, Lead: lead})
}

// handleLeadList returns all leads plus the active users for assignment.
func (s *Server) handleLeadList(w http.ResponseWriter, r *http.Request) {
	leads, err := s.store.ListLeads(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	users, err := s.store.ListActiveUserRefs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leadListResponse{Success: true, Leads: leads, Users: users})
}

func (s *Server) handleLeadGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lead id")
		return
	}
	lead, err := s.store.GetLead(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leadResponse{Success: true, Lead: lead})
}

func (s *Server) handleLeadDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lead id")
		return
	}
	if err := s.store.DeleteLead(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "lead deleted"})
}

// handleLeadsByUser lists the leads sourced by the given user, matched on
// the user's full name.
func (s *Server) handleLeadsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	leads, err := s.store.ListLeadsBySourcedBy(r.Context(), user.FullName())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userLeadsResponse{
		Success:      true,
		UserID:       user.ID,
		UserName:     user.FullName(),
		TotalRecords: len(leads),
		Leads:        leads,
	})
}

// handleLeadAnalysis lists the leads currently in C1 Scheduled state.
func (s *Server) handleLeadAnalysis(w http.ResponseWriter, r *http.Request) {
	leads, err := s.store.ListLeadsByMeetingStatus(r.Context(), "C1 Scheduled")
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leadsResponse{Success: true, Leads: leads})
}
