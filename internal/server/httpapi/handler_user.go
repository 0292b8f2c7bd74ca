package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.WithMessage(common.ErrorValidation, "Invalid request body.")
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		envelope: envelope{Success: true, Message: "Registered successfully."},
		Token:    token,
		User:     newUserView(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		envelope: envelope{Success: true, Message: "Logged in successfully."},
		Token:    token,
		User:     newUserView(user),
	})
}

// handleCurrentUser re-reads the account so the response reflects the stored
// state, not the snapshot the gate resolved.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	user, err := s.users.GetByID(r.Context(), principal.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		envelope: envelope{Success: true},
		User:     newUserView(user),
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), principal.ID, req.Name, req.Email)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		envelope: envelope{Success: true, Message: "Profile updated successfully"},
		User:     newUserView(user),
	})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	var req updatePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.users.UpdatePassword(r.Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Password updated successfully"})
}
