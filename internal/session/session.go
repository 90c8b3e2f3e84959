package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cleanproservices/cleanpro-api/internal/models"
)

const (
	CookieName = "cleanpro_session"

	// Sessions are stateless JWTs; reuse within the validity window keeps
	// the user logged in for up to 30 days.
	TTL = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Session is the decoded, immutable identity attached to a request after a
// successful token verification.
type Session struct {
	UserID uint
	Role   string
}

func (s *Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// IssueToken signs a session token for the given user.
func IssueToken(user *models.User, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(TTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and decodes the claims into a
// Session.
func ParseToken(tokenString, secret string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return &Session{UserID: uint(sub), Role: role}, nil
}

// FromRequest extracts the session from an inbound request. The Authorization
// bearer header wins over the cookie, so API clients and the browser can
// coexist. Returns nil when no valid session is present.
func FromRequest(r *http.Request, secret string) *Session {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if s, err := ParseToken(parts[1], secret); err == nil {
				return s
			}
		}
		return nil
	}

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if s, err := ParseToken(cookie.Value, secret); err == nil {
			return s
		}
	}

	return nil
}
