package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/middleware"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		respondError(w, errs.Validation("a valid email is required"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, errs.Validation("name is required"))
		return
	}

	user, token, err := s.authSvc.Register(r.Context(), email, strings.TrimSpace(req.Name), req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, token, err := s.authSvc.Login(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.jwtManager.TokenDuration()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
