package server

import (
	"net/http"

	"github.com/fundroom/crm-api/internal/model"
)

type userResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
}

type usersResponse struct {
	Success bool         `json:"success"`
	Users   []model.User `json:"users"`
}

type userUpdateRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	GenderID    *int64  `json:"gender"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

// handleUserRegister creates a user. The gender reference, when present,
// must point at an existing gender. Credentials and the welcome mail are
// the auth gateway's job.
func (s *Server) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if u.FirstName == "" {
		writeError(w, http.StatusBadRequest, "firstName is required")
		return
	}
	if u.GenderID != nil {
		if _, err := s.store.GetGender(r.Context(), *u.GenderID); err != nil {
			writeError(w, http.StatusBadRequest, "unknown gender")
			return
		}
	}

	created, err := s.store.CreateUser(r.Context(), u)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{Success: true, User: created})
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usersResponse{Success: true, Users: users})
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: u})
}

// handleUserUpdate merges the provided fields onto the stored user.
func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req userUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.GenderID != nil {
		if _, err := s.store.GetGender(r.Context(), *req.GenderID); err != nil {
			writeError(w, http.StatusBadRequest, "unknown gender")
			return
		}
		u.GenderID = req.GenderID
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = req.PhoneNumber
	}

	updated, err := s.store.UpdateUser(r.Context(), *u)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: updated})
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := s.store.SoftDeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "user deleted"})
}
