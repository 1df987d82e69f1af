package repositories

import "recipebox/internal/models"

// RecipeFilter narrows a recipe list to records carrying at least one of the
// given tag ids and at least one of the given ingredient ids. An empty set
// places no restriction.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines the interface for recipe data access. Every
// lookup takes the owning user id; an id owned by someone else is
// indistinguishable from a missing one.
type RecipeRepository interface {
	Create(recipe *models.Recipe) error
	GetByID(userID, id uint) (*models.Recipe, error)
	ListForUser(userID uint, filter RecipeFilter) ([]models.Recipe, error)
	Save(recipe *models.Recipe) error
	ReplaceTags(recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error
	Delete(userID, id uint) error
}
