package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/lotwise/dealerd/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrAccountDisabled    = errors.New("auth: account disabled")
	ErrUnknownStaff       = errors.New("auth: no staff profile for identity")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service is the identity provider: it authenticates dealer staff and
// issues session tokens. It never decides authorization; that is the
// gate's job on every call.
type Service struct {
	profiles   domain.ProfileRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates a new auth service.
func NewService(profiles domain.ProfileRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		profiles:   profiles,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login validates email/password within a dealer and returns access +
// refresh tokens. Deactivated profiles cannot start sessions.
func (s *Service) Login(ctx context.Context, dealerID uuid.UUID, email, password string) (accessToken, refreshToken string, err error) {
	p, err := s.profiles.GetByEmail(ctx, dealerID, email)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, p.PasswordHash) {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !p.Active {
		return "", "", fmt.Errorf("auth.Login: %w", ErrAccountDisabled)
	}

	return s.issuePair(p)
}

// LoginWithGoogle finishes the OAuth code exchange and matches the
// provider-asserted email to an existing staff profile. Profiles are
// provisioned out-of-band; an unknown email is rejected, not registered.
func (s *Service) LoginWithGoogle(ctx context.Context, provider *OAuthProvider, code string) (accessToken, refreshToken string, err error) {
	_, email, _, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("auth.LoginWithGoogle: %w", err)
	}

	p, err := s.profiles.LookupByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("auth.LoginWithGoogle: %w", ErrUnknownStaff)
	}

	if !p.Active {
		return "", "", fmt.Errorf("auth.LoginWithGoogle: %w", ErrAccountDisabled)
	}

	return s.issuePair(p)
}

// Refresh validates a refresh token and issues a new access token. The
// profile must still exist and be active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.Refresh: %w", ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: invalid user id: %w", err)
	}

	p, err := s.profiles.GetByIdentity(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", ErrUnknownStaff)
	}
	if !p.Active {
		return "", fmt.Errorf("auth.Refresh: %w", ErrAccountDisabled)
	}

	newAccess, err := IssueAccessToken(s.jwtSecret, p.ID, p.Email, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	return newAccess, nil
}

func (s *Service) issuePair(p *domain.Profile) (accessToken, refreshToken string, err error) {
	accessToken, err = IssueAccessToken(s.jwtSecret, p.ID, p.Email, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.issuePair: %w", err)
	}

	refreshToken, err = IssueRefreshToken(s.jwtSecret, p.ID, p.Email, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.issuePair: %w", err)
	}

	return accessToken, refreshToken, nil
}

// HashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	var saltHex, hashHex string
	for i := range len(encoded) {
		if encoded[i] == '$' {
			saltHex = encoded[:i]
			hashHex = encoded[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Constant-time comparison to prevent timing attacks.
	if len(computed) != len(expectedHash) {
		return false
	}

	var diff byte
	for i := range computed {
		diff |= computed[i] ^ expectedHash[i]
	}

	return diff == 0
}
