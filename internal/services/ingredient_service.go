package services

import (
	"strings"

	"recipebox/internal/apperror"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// IngredientService handles business logic for user-owned ingredients,
// symmetric to TagService.
type IngredientService struct {
	repo repositories.AttrRepository[models.Ingredient]
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo repositories.AttrRepository[models.Ingredient]) *IngredientService {
	return &IngredientService{repo: repo}
}

// Create stores a new ingredient owned by the given user.
func (s *IngredientService) Create(userID uint, name string) (*models.Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.ValidationFailed("name", "name must not be empty")
	}
	ingredient := &models.Ingredient{Name: name, UserID: userID}
	if err := s.repo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// List returns the user's ingredients, optionally restricted to those
// attached to at least one recipe.
func (s *IngredientService) List(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	return s.repo.ListForUser(userID, assignedOnly)
}
