package server

import (
	"net/http"
	"time"

	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/storage"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      auth.Principal `json:"user"`
}

// profileRequest tolerates the email a profile form sends back; the address
// itself cannot be changed here.
type profileRequest struct {
	storage.ProfileInput
	Email string `json:"email,omitempty"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var in storage.SignUpInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, "signUp", err)
		return
	}

	client, err := s.storage.SignUp(r.Context(), in)
	if err != nil {
		s.writeError(w, r, "signUp", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    client,
	})
}

func (s *Server) handleClientLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "clientLogin", err)
		return
	}

	client, err := s.storage.AuthenticateClient(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, "clientLogin", err)
		return
	}

	s.issueToken(w, r, "clientLogin", auth.Principal{
		ID:    client.ID,
		Email: client.Email,
		Name:  client.Name,
		Kind:  auth.KindClient,
	})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "adminLogin", err)
		return
	}

	admin, err := s.storage.AuthenticateAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, "adminLogin", err)
		return
	}

	s.issueToken(w, r, "adminLogin", auth.Principal{
		ID:         admin.ID,
		Email:      admin.Email,
		Name:       admin.Name,
		Kind:       auth.KindAdmin,
		SuperAdmin: admin.IsSuperAdmin,
	})
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, operation string, p auth.Principal) {
	token, expiresAt, err := s.tokens.Issue(p)
	if err != nil {
		s.writeError(w, r, operation, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt, User: p})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	client, err := s.storage.GetProfile(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, "getProfile", err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "updateProfile", err)
		return
	}

	client, err := s.storage.UpdateProfile(r.Context(), principal(r), req.ProfileInput)
	if err != nil {
		s.writeError(w, r, "updateProfile", err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}
