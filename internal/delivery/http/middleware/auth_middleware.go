package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"hospitron/internal/domain/entity"
	"hospitron/internal/usecase"
	"hospitron/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenKey   contextKey = "token"
)

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
	log         *logrus.Logger
	cookieName  string
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase, log *logrus.Logger, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		log:         log,
		cookieName:  cookieName,
	}
}

// Authenticate guards JSON API routes.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, problem := m.extractToken(r)
		if problem != "" {
			response.Unauthorized(w, problem)
			return
		}

		session, err := m.authUsecase.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidToken):
				response.Unauthorized(w, "Invalid or expired token")
			case errors.Is(err, usecase.ErrSessionNotFound):
				response.Unauthorized(w, "Session has expired")
			default:
				response.InternalServerError(w, "Failed to validate session")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session, token)))
	})
}

// RequireSession guards HTML pages; anonymous visitors are sent to the login page.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, problem := m.extractToken(r)
		if problem != "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		session, err := m.authUsecase.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, usecase.ErrInvalidToken) && !errors.Is(err, usecase.ErrSessionNotFound) {
				m.log.Warnf("Failed to validate session: %+v", err)
			}
			m.ClearCookie(w)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session, token)))
	})
}

func (m *AuthMiddleware) CookieName() string {
	return m.cookieName
}

// SetCookie stores the session token for page requests.
func (m *AuthMiddleware) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *AuthMiddleware) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// extractToken prefers the Authorization header and falls back to the cookie.
// problem is the client-facing reason when no usable token is present.
func (m *AuthMiddleware) extractToken(r *http.Request) (token string, problem string) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", "Invalid authorization header format"
		}
		return parts[1], ""
	}

	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, ""
	}

	return "", "Authorization header is required"
}

func withSession(ctx context.Context, session *entity.Session, token string) context.Context {
	ctx = context.WithValue(ctx, SessionKey, session)
	return context.WithValue(ctx, TokenKey, token)
}

// GetSessionFromContext extracts the authenticated session from context
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	return session, ok && session != nil
}

// GetToken returns the session token of the request in ctx, or "".
// It satisfies api.TokenSource.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}
