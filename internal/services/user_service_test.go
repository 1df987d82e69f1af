package services_test

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"recipebox/internal/apperror"
	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func emailNotFound(email string) error {
	return &apperror.AppError{Err: apperror.ErrNotFound, Message: fmt.Sprintf("user with email %s not found", email)}
}

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	mockRepo.On("GetByEmail", "test@example.com").Return(nil, emailNotFound("test@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.Register("test@example.com", "testpass", "Test Name")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "Test Name", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)

	// The raw password must never be stored.
	assert.NotEqual(t, "testpass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("testpass")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterNormalizesEmailDomain(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	// The domain is lower-cased, the local part is preserved.
	mockRepo.On("GetByEmail", "Test@example.com").Return(nil, emailNotFound("Test@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.Register("Test@EXAMPLE.COM", "testpass", "")
	assert.NoError(t, err)
	assert.Equal(t, "Test@example.com", user.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterEmptyEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	user, err := userService.Register("", "testpass", "")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_RegisterShortPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	user, err := userService.Register("test@example.com", "test", "")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	existing := &models.User{Email: "test@example.com"}
	existing.ID = 1
	mockRepo.On("GetByEmail", "test@example.com").Return(existing, nil).Once()

	user, err := userService.Register("test@example.com", "testpass", "")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_RegisterStoreFailureIsNotTreatedAsFreeEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	// A failing duplicate check must surface, not fall through to Create.
	storeErr := fmt.Errorf("connection reset")
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, storeErr).Once()

	user, err := userService.Register("test@example.com", "testpass", "")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, storeErr))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateSuperuser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, emailNotFound("admin@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.CreateSuperuser("admin@example.com", "adminpass")
	assert.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateSelf(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	user := &models.User{Email: "test@example.com", Name: "Old Name", Password: string(hashed), IsActive: true}
	user.ID = 1

	// Name-only update leaves the password hash alone.
	mockRepo.On("Update", user).Return(nil).Once()
	newName := "New Name"
	updated, err := userService.UpdateSelf(user, &newName, nil)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, string(hashed), updated.Password)

	// Password update re-hashes.
	mockRepo.On("Update", user).Return(nil).Once()
	newPassword := "newerpass"
	updated, err = userService.UpdateSelf(user, nil, &newPassword)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newerpass")))

	// Short password is rejected before any store mutation.
	tooShort := "abc"
	_, err = userService.UpdateSelf(user, nil, &tooShort)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	mockRepo.AssertExpectations(t)
}
