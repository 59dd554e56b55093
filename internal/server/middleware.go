package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"blog/internal/access"
	"blog/internal/models"
)

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", middleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}

type authedHandler func(http.ResponseWriter, *http.Request, *models.User)

// requireAuth sends anonymous viewers to the login page.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

// currentUser resolves the session cookie, or returns nil for anonymous
// requests and stale sessions.
func (s *Server) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || !sess.Active(time.Now()) {
		return nil
	}
	u, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return u
}

func viewerOf(u *models.User) access.Viewer {
	if u == nil {
		return access.Anonymous
	}
	return access.Authenticated(u.ID)
}
