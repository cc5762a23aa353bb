package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-cms-backend/models"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims are the JWT claims this service mints. IsSuperuser rides along so
// the frontend can gate admin views without a profile round trip.
type Claims struct {
	UserID      uint   `json:"user_id"`
	IsSuperuser bool   `json:"is_superuser"`
	TokenType   string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService mints and parses HMAC-signed access and refresh tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) mint(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      user.ID,
		IsSuperuser: user.IsSuperuser,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// MintAccess returns a signed access token for user.
func (s *TokenService) MintAccess(user *models.User) (string, error) {
	return s.mint(user, TokenTypeAccess, s.accessTTL)
}

// MintPair returns a signed access and refresh token for user.
func (s *TokenService) MintPair(user *models.User) (access, refresh string, err error) {
	if access, err = s.mint(user, TokenTypeAccess, s.accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = s.mint(user, TokenTypeRefresh, s.refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *TokenService) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, wantType)
	}
	return claims, nil
}

// ParseAccess validates an access token and returns its claims.
func (s *TokenService) ParseAccess(tokenString string) (*Claims, error) {
	return s.parse(tokenString, TokenTypeAccess)
}

// ParseRefresh validates a refresh token and returns its claims.
func (s *TokenService) ParseRefresh(tokenString string) (*Claims, error) {
	return s.parse(tokenString, TokenTypeRefresh)
}
