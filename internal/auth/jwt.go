package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims of both access and refresh tokens.
type Claims struct {
	Username string    `json:"username"`
	Roles    []string  `json:"roles"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Identity turns verified claims into the caller identity.
func (c *Claims) Identity() (Identity, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return Identity{UserID: id, Username: c.Username, Roles: c.Roles}, nil
}

type TokenPair struct {
	Access  string
	Refresh string
}

// Issuer signs and verifies HS256 access and refresh tokens.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	refresh    RefreshStore
	now        func() time.Time
}

// NewIssuer returns error if the secret is empty, a TTL is not positive or store is nil.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration, store RefreshStore) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	if store == nil {
		return nil, errors.New("refresh token store is required")
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		refresh:    store,
		now:        time.Now,
	}, nil
}

// SetClock replaces time.Now for issuing and verifying.
func (i *Issuer) SetClock(now func() time.Time) {
	i.now = now
}

func (i *Issuer) sign(sub, username string, roles []string, typ TokenType, ttl time.Duration, jti string) (string, error) {
	now := i.now()
	claims := Claims{
		Username: username,
		Roles:    roles,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) GenerateAccessToken(user models.User) (string, error) {
	return i.sign(strconv.Itoa(user.ID), user.Username, user.Roles, AccessToken, i.accessTTL, "")
}

// IssuePair signs an access and a refresh token and remembers the refresh token id.
func (i *Issuer) IssuePair(ctx context.Context, user models.User) (TokenPair, error) {
	access, err := i.GenerateAccessToken(user)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	jti := uuid.NewString()
	refresh, err := i.sign(strconv.Itoa(user.ID), user.Username, user.Roles, RefreshToken, i.refreshTTL, jti)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := i.refresh.Save(ctx, jti, user.ID, i.refreshTTL); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) parse(tokenStr string, typ TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, typ)
	}
	return claims, nil
}

// ParseAccessToken verifies an access token.
func (i *Issuer) ParseAccessToken(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, AccessToken)
}

// Refresh exchanges a valid, known refresh token for a new access token.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := i.parse(refreshToken, RefreshToken)
	if err != nil {
		return "", err
	}

	known, err := i.refresh.Exists(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	if !known {
		return "", fmt.Errorf("%w: unknown refresh token", ErrInvalidToken)
	}

	return i.sign(claims.Subject, claims.Username, claims.Roles, AccessToken, i.accessTTL, "")
}
