package usecases

import (
	"errors"
	"net/mail"
	"strings"

	"recipe-server/entities"
	"recipe-server/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the shortest password accepted at signup and on
// profile updates.
const MinPasswordLength = 8

type UserUseCase struct {
	UserRepo repositories.UserRepository
}

func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{UserRepo: userRepo}
}

// NormalizeEmail lower-cases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. Plaintext passwords never leave this
// function; only the bcrypt hash is stored.
func (uc *UserUseCase) Register(email, password, name string) (*entities.User, error) {
	email = NormalizeEmail(email)

	verr := newValidationError()
	if email == "" {
		verr.add("email", "this field is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		verr.add("email", "enter a valid email address")
	}
	if len(password) < MinPasswordLength {
		verr.add("password", "password must be at least 8 characters")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if _, err := uc.UserRepo.GetByEmail(email); err == nil {
		verr.add("email", "a user with this email already exists")
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
	}
	if err := uc.UserRepo.Create(user); err != nil {
		// Lost the race against a concurrent signup with the same email;
		// the unique constraint is the source of truth.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.add("email", "a user with this email already exists")
			return nil, verr
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching
// active user.
func (uc *UserUseCase) Authenticate(email, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (uc *UserUseCase) GetByID(id string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile changes the display name and/or password. The email is
// immutable; there is intentionally no way to pass one in.
func (uc *UserUseCase) UpdateProfile(userID string, name, password *string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if password != nil {
		if len(*password) < MinPasswordLength {
			verr := newValidationError()
			verr.add("password", "password must be at least 8 characters")
			return nil, verr
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if name != nil {
		user.Name = *name
	}

	if err := uc.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
