package usecases

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"recipe-server/entities"
	"recipe-server/repositories"
)

// DefaultTokenTTL applies when no TOKEN_TTL_HOURS is configured.
const DefaultTokenTTL = 30 * 24 * time.Hour

type TokenUseCase struct {
	TokenRepo repositories.TokenRepository
	UserRepo  repositories.UserRepository
	TTL       time.Duration
}

func NewTokenUseCase(tokenRepo repositories.TokenRepository, userRepo repositories.UserRepository, ttl time.Duration) *TokenUseCase {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenUseCase{TokenRepo: tokenRepo, UserRepo: userRepo, TTL: ttl}
}

// Issue mints a fresh opaque key for the user. Any previously issued key
// stops resolving: one live token per user.
func (uc *TokenUseCase) Issue(userID string) (string, error) {
	key, err := randomHexKey(32)
	if err != nil {
		return "", err
	}
	token := &entities.Token{
		Key:       key,
		UserID:    userID,
		ExpiresAt: time.Now().Add(uc.TTL),
	}
	if err := uc.TokenRepo.Replace(token); err != nil {
		return "", err
	}
	return key, nil
}

// Resolve maps a bearer key back to its active user. Unknown, expired,
// and deactivated-user tokens all fail identically.
func (uc *TokenUseCase) Resolve(key string) (*entities.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}
	token, err := uc.TokenRepo.GetByKey(key)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		_ = uc.TokenRepo.DeleteByUserID(token.UserID)
		return nil, ErrInvalidToken
	}
	user, err := uc.UserRepo.GetByID(token.UserID)
	if err != nil || !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Revoke drops every token the user holds.
func (uc *TokenUseCase) Revoke(userID string) error {
	return uc.TokenRepo.DeleteByUserID(userID)
}

func randomHexKey(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
