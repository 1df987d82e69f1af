package services

import (
	"strings"

	"recipebox/internal/apperror"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// TagService handles business logic for user-owned tags.
type TagService struct {
	repo repositories.AttrRepository[models.Tag]
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.AttrRepository[models.Tag]) *TagService {
	return &TagService{repo: repo}
}

// Create stores a new tag owned by the given user.
func (s *TagService) Create(userID uint, name string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.ValidationFailed("name", "name must not be empty")
	}
	tag := &models.Tag{Name: name, UserID: userID}
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// List returns the user's tags, optionally restricted to tags attached to
// at least one recipe.
func (s *TagService) List(userID uint, assignedOnly bool) ([]models.Tag, error) {
	return s.repo.ListForUser(userID, assignedOnly)
}
