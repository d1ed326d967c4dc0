package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"maktab/internal/config"
	"maktab/internal/domain"
	"maktab/internal/service"
	"maktab/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-key-for-unit-tests",
		AccessTokenExpiry: 15 * time.Minute,
		ResetTokenExpiry:  time.Hour,
		Issuer:            "maktab-test",
	}
}

func testLimiter() *service.LoginLimiter {
	return service.NewLoginLimiter(5, 15*time.Minute)
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(hash)
}

func activeUser(password string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Username:     "reception",
		PasswordHash: hashPassword(password),
		FullName:     "Front Desk",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testLimiter(), testJWTConfig())

	user := activeUser("password123")
	userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)
	userRepo.On("SetLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "reception",
		Password: "password123",
	}, "10.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, user.Username, result.User.Username)

	// Issued token round-trips through validation
	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testLimiter(), testJWTConfig())

	user := activeUser("correct-password")
	userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "reception",
		Password: "wrong-password",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testLimiter(), testJWTConfig())

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "ghost",
		Password: "whatever",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testLimiter(), testJWTConfig())

	user := activeUser("password123")
	user.IsActive = false
	userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "reception",
		Password: "password123",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_Login_LockoutAfterRepeatedFailures(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	limiter := service.NewLoginLimiter(3, 15*time.Minute)
	svc := service.NewAuthService(userRepo, limiter, testJWTConfig())

	user := activeUser("correct-password")
	userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)

	input := service.LoginInput{Username: "reception", Password: "wrong"}
	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), input, "10.0.0.9")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// Fourth attempt is rejected before touching the password
	input.Password = "correct-password"
	_, err := svc.Login(context.Background(), input, "10.0.0.9")
	assert.ErrorIs(t, err, domain.ErrLoginLockedOut)

	// A different address is unaffected
	userRepo.On("SetLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)
	_, err = svc.Login(context.Background(), input, "10.0.0.10")
	assert.NoError(t, err)
}

func TestAuthService_Login_SuccessResetsFailureCount(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	limiter := service.NewLoginLimiter(3, 15*time.Minute)
	svc := service.NewAuthService(userRepo, limiter, testJWTConfig())

	user := activeUser("correct-password")
	userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)
	userRepo.On("SetLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	bad := service.LoginInput{Username: "reception", Password: "wrong"}
	good := service.LoginInput{Username: "reception", Password: "correct-password"}

	for i := 0; i < 2; i++ {
		_, err := svc.Login(context.Background(), bad, "10.0.0.5")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err := svc.Login(context.Background(), good, "10.0.0.5")
	require.NoError(t, err)

	// Counter restarted: two more failures do not lock out
	for i := 0; i < 2; i++ {
		_, err := svc.Login(context.Background(), bad, "10.0.0.5")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
}

func TestAuthService_ValidateToken_RejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testLimiter(), testJWTConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testLimiter(), testJWTConfig())

	user := activeUser("old-password")
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "old-password",
		NewPassword:     "new-password-123",
	})

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testLimiter(), testJWTConfig())

	user := activeUser("old-password")
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
