package middleware

import (
	"net/http"

	"corpsite/internal/service"

	"go.uber.org/zap"
)

// SessionCookieName is the cookie the login handler sets and the admin gate
// reads.
const SessionCookieName = "token"

// AdminGate protects the /admin page routes. A missing cookie redirects to
// the login page; an invalid or expired token clears the cookie and
// redirects; a valid token passes the request through unmodified.
func AdminGate(auth service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				logger.Debug("No session cookie, redirecting to login",
					zap.String("path", r.URL.Path),
				)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if _, err := auth.ValidateToken(cookie.Value); err != nil {
				logger.Debug("Session cookie rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				ClearSessionCookie(w)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
