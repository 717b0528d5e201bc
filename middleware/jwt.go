package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Claims are the custom payload of a surveyor token.
type Claims struct {
	SurveyorID string `json:"surveyorId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// unexported type prevents collisions in context
type ctxKey int

const (
	claimsKey ctxKey = iota
)

// JWT signs and checks HS256 surveyor tokens.
type JWT struct {
	key []byte
	now func() time.Time
}

func NewJWT(secret string) *JWT {
	return &JWT{key: []byte(secret), now: time.Now}
}

// GenerateToken creates a signed JWT valid for 24 h.
func (j *JWT) GenerateToken(surveyorID, name, email string) (string, error) {
	now := j.now()
	claims := Claims{
		SurveyorID: surveyorID,
		Name:       name,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   surveyorID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.key)
}

func (j *JWT) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Middleware validates the bearer token and stashes the Claims in ctx.
func (j *JWT) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeDetail(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeDetail(w, http.StatusUnauthorized, "invalid auth header")
			return
		}
		claims, err := j.parse(parts[1])
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims pulls the *Claims out of the request context (or nil).
func GetClaims(r *http.Request) *Claims {
	if c, ok := r.Context().Value(claimsKey).(*Claims); ok {
		return c
	}
	return nil
}

// Author names the surveyor behind the request, "" when anonymous.
func Author(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.Email
	}
	return ""
}
