package repositories

import (
	"errors"
	"fmt"

	"recipebox/internal/apperror"
	"recipebox/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{db: db}
}

// Create persists a new recipe together with its tag/ingredient join rows.
// Associated records must already exist; they are referenced, not inserted.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetByID retrieves one of the caller's recipes with tags and ingredients
// preloaded.
func (r *GORMRecipeRepository) GetByID(userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("recipe", id)
		}
		return nil, fmt.Errorf("failed to get recipe by id %d: %w", id, err)
	}
	return &recipe, nil
}

// ListForUser returns the caller's recipes, newest first. Tag and ingredient
// id-set filters OR within a parameter and AND across the two.
func (r *GORMRecipeRepository) ListForUser(userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	q := r.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)
	if len(filter.TagIDs) > 0 {
		q = q.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	err := q.
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Save updates the recipe's own columns. Associations are replaced through
// ReplaceTags/ReplaceIngredients, never implicitly.
func (r *GORMRecipeRepository) Save(recipe *models.Recipe) error {
	if err := r.db.Omit(clause.Associations).Save(recipe).Error; err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// ReplaceTags swaps the recipe's tag set for the given one.
func (r *GORMRecipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	if err := r.db.Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("failed to replace recipe tags: %w", err)
	}
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient set for the given one.
func (r *GORMRecipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	if err := r.db.Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return fmt.Errorf("failed to replace recipe ingredients: %w", err)
	}
	return nil
}

// Delete removes one of the caller's recipes.
func (r *GORMRecipeRepository) Delete(userID, id uint) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.Recipe{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("recipe", id)
	}
	return nil
}
