package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "dev_secret_change_me"

// Caller is placed into the request context by requireAuth.
type Caller struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ctxCallerKey is the context key type for storing Caller.
type ctxCallerKey struct{}

// CallerFrom returns the authenticated caller, if any.
func CallerFrom(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(ctxCallerKey{}).(*Caller)
	return c, ok && c != nil
}

// SignToken creates an HS256 JWT with id/username that expires after days.
func SignToken(secret, id, username string, days int) (string, time.Time, error) {
	if secret == "" {
		secret = defaultSecret
	}
	if days <= 0 {
		days = 14
	}
	exp := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(secret))
	return ss, exp, err
}

// ParseToken verifies tokenStr and returns its caller.
func ParseToken(secret, tokenStr string) (*Caller, error) {
	if secret == "" {
		secret = defaultSecret
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return nil, errors.New("token missing id or username")
	}
	return &Caller{ID: id, Username: username}, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireAuth enforces a valid JWT and injects the Caller into the request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			c, err := ParseToken(s.deps.JWTSecret, tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxCallerKey{}, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
