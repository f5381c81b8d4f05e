package token

import (
	"errors"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTTL  = 1 * time.Hour
	refreshTTL = 30 * 24 * time.Hour
)

// Claims is the typed payload carried by both token kinds.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Service signs and verifies stateless HS256 bearer tokens. Access and
// refresh tokens use distinct secrets; refresh tokens are additionally
// cross-checked against the value stored on the user record by the caller.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewService(accessSecret, refreshSecret []byte) *Service {
	return &Service{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
	}
}

func (s *Service) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, s.accessSecret, accessTTL)
}

func (s *Service) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, s.refreshSecret, refreshTTL)
}

func (s *Service) issue(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every token unique. iat/exp alone have second
			// granularity, which would let two tokens issued in the same
			// second collide and survive rotation.
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *Service) VerifyAccessToken(raw string) (*Claims, error) {
	return verify(raw, s.accessSecret)
}

func (s *Service) VerifyRefreshToken(raw string) (*Claims, error) {
	return verify(raw, s.refreshSecret)
}

// verify maps every failure mode (bad signature, expiry, malformed token) to
// the same ErrTokenInvalid so callers cannot distinguish which check failed.
func verify(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
