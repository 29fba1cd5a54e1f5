package ui

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"evidencija/internal/errors"
	"evidencija/models"
)

type contextKey int

const userKey contextKey = iota

// userFrom returns the signed-in user of the request, nil when anonymous
func userFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// loadUser resolves the session cookie on every request
func (a *App) loadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(a.config.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.deps.Sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, errors.CodeUnauthorized) {
				a.logger.Warn("session lookup failed: %v", err)
			}
			a.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// requirePageUser sends anonymous visitors to the login page, remembering where they were going
func (a *App) requirePageUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login?from="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAPIUser answers 401 before any document work starts
func (a *App) requireAPIUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) authorized(r *http.Request) bool {
	return userFrom(r.Context()) != nil
}

func (a *App) setSessionCookie(w http.ResponseWriter, s *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.config.CookieName,
		Value:    s.Token.String(),
		Path:     "/",
		Expires:  time.Unix(s.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   a.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *App) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirect keeps post-login redirects on this site
func safeRedirect(from string) string {
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return "/dashboard"
	}
	return from
}
