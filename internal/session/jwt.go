// Package session signs and verifies the token that carries an
// authenticated session through the REPL.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the registered claims plus the session descriptor.
type Claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"uid"`
	FirstName  string `json:"fn,omitempty"`
	LastName   string `json:"ln,omitempty"`
	MiddleName string `json:"mn,omitempty"`
	RoleID     int64  `json:"rid"`
	RoleName   string `json:"role"`
	Label      string `json:"label"`
}

// Manager issues HS256 session tokens. A zero TTL issues tokens without an
// expiry claim.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs s and fills its IssuedAt and ExpiresAt.
func (m *Manager) Issue(s *models.Session) (string, error) {
	now := m.now()
	s.IssuedAt = now
	s.ExpiresAt = time.Time{}

	rc := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  s.Login,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
		rc.ExpiresAt = jwt.NewNumericDate(s.ExpiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: rc,
		UserID:           s.UserID,
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		MiddleName:       s.MiddleName,
		RoleID:           s.RoleID,
		RoleName:         s.RoleName,
		Label:            s.Label,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and rebuilds the session. Expired tokens return
// common.ErrTokenExpired, anything else that fails returns
// common.ErrInvalidToken.
func (m *Manager) Parse(tokenString string) (*models.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	s := &models.Session{
		UserID:     claims.UserID,
		Login:      claims.Subject,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		MiddleName: claims.MiddleName,
		RoleID:     claims.RoleID,
		RoleName:   claims.RoleName,
		Label:      claims.Label,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
