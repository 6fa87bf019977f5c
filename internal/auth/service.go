package auth

import (
	"fmt"
	"time"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/store/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// tokenTTL is the fixed token lifetime. There is no refresh mechanism;
// expiry forces re-login.
const tokenTTL = 24 * time.Hour

// Claims is the signed payload inside a bearer token. The orgId claim is the
// only artifact carrying tenant scope across requests: every downstream
// operation trusts it completely, so the signing secret must never leave the
// server.
type Claims struct {
	UserID string `json:"userId"`
	OrgID  string `json:"orgId"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the ADMIN role.
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Service issues and verifies credentials: password hashes and signed
// tenant-scoped bearer tokens.
type Service struct {
	secret []byte
}

// NewService creates a credential service with the server-held signing secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// HashPassword returns a salted one-way hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash using bcrypt's own
// constant-time comparison.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT signs a claims set for the given user. Tokens expire after one
// day.
func (s *Service) GenerateJWT(user *models.User, orgID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.UserID,
		OrgID:  orgID,
		Role:   user.Role,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "pulse-crm-backend",
			Subject:   user.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateJWT verifies a token's signature and expiry and returns its claims.
func (s *Service) ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewAuthenticationError(fmt.Sprintf("failed to parse token: %v", err))
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
