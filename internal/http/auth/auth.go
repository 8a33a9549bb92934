package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/http/render"
)

type ctxKey struct{}

var errNoSubject = errors.New("token carries no user id")

// Middleware accepts HS256 bearer tokens signed with secret and puts the
// user id from the "sub" (or legacy "user_id") claim into the context.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				render.JSON(w, http.StatusUnauthorized, render.ErrorResponse{Error: "authorization header required"})
				return
			}

			userID, err := parse(token, secret)
			if err != nil {
				render.JSON(w, http.StatusUnauthorized, render.ErrorResponse{Error: "invalid token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func parse(token string, secret []byte) (uuid.UUID, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		subject, _ = claims["user_id"].(string)
	}

	if subject == "" {
		return uuid.Nil, errNoSubject
	}

	return uuid.Parse(subject)
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the authenticated user. Handlers are only mounted behind
// Middleware, so a missing value is a wiring bug.
func UserID(ctx context.Context) uuid.UUID {
	userID, _ := ctx.Value(ctxKey{}).(uuid.UUID)
	return userID
}

// Sign issues a token for userID. It is used by tests and local tooling.
func Sign(secret []byte, userID uuid.UUID) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID.String(),
	}).SignedString(secret)
}
