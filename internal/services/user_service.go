package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"recipebox/internal/apperror"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/pkg/events"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 5

// UserService handles account creation and self-service profile updates.
type UserService struct {
	userRepo repositories.UserRepository
	mqClient *events.Client
}

// NewUserService creates a new UserService. The event client may be nil.
func NewUserService(userRepo repositories.UserRepository, mqClient *events.Client) *UserService {
	return &UserService{
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// Register creates an account with a normalized email and a bcrypt-hashed
// password. The raw password is never persisted.
func (s *UserService) Register(email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email must not be empty")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.ValidationFailed("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing email: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email", fmt.Sprintf("email %s is already registered", email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.mqClient.Publish(events.UserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}); err != nil {
		// Event delivery must not fail the registration.
		log.Printf("Failed to publish %s event: %v", events.UserRegistered, err)
	}

	return user, nil
}

// CreateSuperuser registers an account and promotes it to staff+superuser.
func (s *UserService) CreateSuperuser(email, password string) (*models.User, error) {
	user, err := s.Register(email, password, "")
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to promote superuser: %w", err)
	}
	return user, nil
}

// UpdateSelf changes the caller's own name and/or password. Email and the
// privilege flags are not reachable through this path.
func (s *UserService) UpdateSelf(user *models.User, name, password *string) (*models.User, error) {
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		if len(*password) < minPasswordLength {
			return nil, apperror.ValidationFailed("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// normalizeEmail lower-cases the domain portion of an address. The local
// part is left alone because mailbox names are case-sensitive in principle.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
