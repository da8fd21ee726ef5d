package usecases

import (
	"testing"

	"recipe-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserUseCase() *UserUseCase {
	return NewUserUseCase(repositories.NewUserMemoryRepository())
}

func TestRegisterStoresOnlyHash(t *testing.T) {
	uc := newUserUseCase()

	user, err := uc.Register("Test@Dev.com ", "testpass123", "Test Name")
	require.NoError(t, err)

	assert.Equal(t, "test@dev.com", user.Email, "email should be normalized")
	assert.Equal(t, "Test Name", user.Name)
	assert.NotEqual(t, "testpass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("testpass123")))
}

func TestRegisterShortPassword(t *testing.T) {
	uc := newUserUseCase()

	_, err := uc.Register("test@dev.com", "123", "Test")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")

	_, err = uc.UserRepo.GetByEmail("test@dev.com")
	assert.Error(t, err, "no user record should exist after a rejected signup")
}

func TestRegisterInvalidEmail(t *testing.T) {
	uc := newUserUseCase()

	for _, email := range []string{"", "not-an-email", "missing@"} {
		_, err := uc.Register(email, "testpass123", "Test")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "email %q should be rejected", email)
		assert.Contains(t, verr.Fields, "email")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := newUserUseCase()

	_, err := uc.Register("test@dev.com", "testpass123", "Original")
	require.NoError(t, err)

	_, err = uc.Register("test@dev.com", "otherpass123", "Impostor")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	existing, err := uc.UserRepo.GetByEmail("test@dev.com")
	require.NoError(t, err)
	assert.Equal(t, "Original", existing.Name, "existing record must not be altered")
}

func TestAuthenticate(t *testing.T) {
	uc := newUserUseCase()
	_, err := uc.Register("test@dev.com", "testpass123", "Test")
	require.NoError(t, err)

	user, err := uc.Authenticate("test@dev.com", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, "test@dev.com", user.Email)

	// case-insensitive email lookup
	_, err = uc.Authenticate("TEST@dev.com", "testpass123")
	assert.NoError(t, err)

	_, err = uc.Authenticate("test@dev.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Authenticate("nobody@dev.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	uc := newUserUseCase()
	user, err := uc.Register("test@dev.com", "testpass123", "Test")
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, uc.UserRepo.Update(user))

	_, err = uc.Authenticate("test@dev.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileName(t *testing.T) {
	uc := newUserUseCase()
	user, err := uc.Register("test@dev.com", "testpass123", "Old Name")
	require.NoError(t, err)

	newName := "New Name"
	updated, err := uc.UpdateProfile(user.ID, &newName, nil)
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "test@dev.com", updated.Email, "email is immutable")
	assert.Equal(t, user.PasswordHash, updated.PasswordHash, "password untouched")
}

func TestUpdateProfilePassword(t *testing.T) {
	uc := newUserUseCase()
	user, err := uc.Register("test@dev.com", "testpass123", "Test")
	require.NoError(t, err)

	newPassword := "newtestpass456"
	_, err = uc.UpdateProfile(user.ID, nil, &newPassword)
	require.NoError(t, err)

	_, err = uc.Authenticate("test@dev.com", "newtestpass456")
	assert.NoError(t, err)
	_, err = uc.Authenticate("test@dev.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileShortPassword(t *testing.T) {
	uc := newUserUseCase()
	user, err := uc.Register("test@dev.com", "testpass123", "Test")
	require.NoError(t, err)

	short := "123"
	_, err = uc.UpdateProfile(user.ID, nil, &short)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")

	_, err = uc.Authenticate("test@dev.com", "testpass123")
	assert.NoError(t, err, "old password must still work")
}
