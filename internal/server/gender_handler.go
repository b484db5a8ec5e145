package server

import (
	"net/http"
	"strings"

	"github.com/fundroom/crm-api/internal/model"
)

type genderResponse struct {
	Success bool          `json:"success"`
	Gender  *model.Gender `json:"gender"`
}

type gendersResponse struct {
	Success bool           `json:"success"`
	Genders []model.Gender `json:"genders"`
}

type genderRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGenderAdd(w http.ResponseWriter, r *http.Request) {
	var req genderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	g, err := s.store.CreateGender(r.Context(), name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, genderResponse{Success: true, Gender: g})
}

func (s *Server) handleGenderList(w http.ResponseWriter, r *http.Request) {
	gs, err := s.store.ListGenders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gendersResponse{Success: true, Genders: gs})
}

func (s *Server) handleGenderGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid gender id")
		return
	}
	g, err := s.store.GetGender(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genderResponse{Success: true, Gender: g})
}

func (s *Server) handleGenderUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid gender id")
		return
	}

	var req genderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	g, err := s.store.UpdateGender(r.Context(), id, name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genderResponse{Success: true, Gender: g})
}

func (s *Server) handleGenderDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid gender id")
		return
	}
	if err := s.store.SoftDeleteGender(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "gender deleted"})
}
