package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"blog/internal/models"
)

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", map[string]any{"User": s.currentUser(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := parseRegisterForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.UserExists(s.DB, form.Email, form.Username); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) || errors.Is(err, models.ErrDuplicateUsername) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.serverError(w, r, err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	id, err := models.CreateUser(s.DB, form.Email, form.Username, string(hash))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) || errors.Is(err, models.ErrDuplicateUsername) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.logger.Info("user registered", zap.Int64("userID", id), zap.String("username", form.Username))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", map[string]any{"User": s.currentUser(r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := parseLoginForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, models.ErrInvalidCredentials.Error(), http.StatusBadRequest)
		return
	}
	user, err := models.GetUserByEmail(s.DB, form.Email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.serverError(w, r, err)
			return
		}
		http.Error(w, models.ErrInvalidCredentials.Error(), http.StatusBadRequest)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		http.Error(w, models.ErrInvalidCredentials.Error(), http.StatusBadRequest)
		return
	}
	sid := uuid.NewString()
	expires := time.Now().Add(s.cfg.SessionTTL)
	if err := models.CreateSession(s.DB, user.ID, sid, expires); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    sid,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err == nil {
		if err := models.RevokeSession(s.DB, cookie.Value); err != nil {
			s.logger.Warn("revoke session", zap.Error(err))
		}
		http.SetCookie(w, &http.Cookie{Name: s.cfg.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
