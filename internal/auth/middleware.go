package auth

import (
	"context"
	"net/http"
	"strings"

	"example.com/fitjournal/internal/domain"
)

// UserFinder looks up a user by id; (nil, nil) means no such user.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// Skipper allows callers to bypass authentication for specific requests.
type Skipper func(r *http.Request) bool

// Middleware resolves the bearer token on each request into an authenticated
// user. Every failure mode (missing header, bad token, expired token, unknown
// user) produces the same 401 response.
type Middleware struct {
	tokens  *TokenService
	users   UserFinder
	skipper Skipper
}

// NewMiddleware constructs a middleware with optional skipper.
func NewMiddleware(tokens *TokenService, users UserFinder, skipper Skipper) Middleware {
	return Middleware{tokens: tokens, users: users, skipper: skipper}
}

// Wrap wraps an http.Handler with authentication.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipper != nil && m.skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.resolve(r)
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m Middleware) resolve(r *http.Request) (*domain.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	token := strings.TrimSpace(header[len("Bearer "):])

	userID, err := m.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.FindByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"type":"unauthorized","detail":"could not validate credentials"}`))
}
