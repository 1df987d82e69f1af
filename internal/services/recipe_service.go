package services

import (
	"fmt"
	"io"
	"log"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/pkg/events"
	"recipebox/pkg/imagestore"
)

// RecipeInput carries all writable recipe fields for create and full update.
// Tag and ingredient id sets replace the recipe's associations wholesale.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipePatch carries optional fields for partial update; nil means leave
// the field untouched.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeService handles business logic for recipes, including image
// attachments and the list filters.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.AttrRepository[models.Tag]
	ingredientRepo repositories.AttrRepository[models.Ingredient]
	images         *imagestore.Store
	mqClient       *events.Client
}

// NewRecipeService creates a new RecipeService. The event client may be nil.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.AttrRepository[models.Tag],
	ingredientRepo repositories.AttrRepository[models.Ingredient],
	images *imagestore.Store,
	mqClient *events.Client,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		images:         images,
		mqClient:       mqClient,
	}
}

// Create stores a new recipe owned by the given user. The owner always comes
// from the authenticated caller, never from the payload.
func (s *RecipeService) Create(userID uint, input RecipeInput) (*models.Recipe, error) {
	tags, err := s.tagRepo.GetByIDs(input.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredientRepo.GetByIDs(input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	if err := s.mqClient.Publish(events.RecipeCreated, map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   userID,
		"title":     recipe.Title,
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", events.RecipeCreated, err)
	}

	return s.recipeRepo.GetByID(userID, recipe.ID)
}

// Get returns one of the user's recipes with nested tags and ingredients.
func (s *RecipeService) Get(userID, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(userID, id)
}

// List returns the user's recipes, optionally narrowed by tag/ingredient
// id sets.
func (s *RecipeService) List(userID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	return s.recipeRepo.ListForUser(userID, filter)
}

// Update applies a partial update to one of the user's recipes. Only the
// supplied fields change; a supplied id set replaces that association.
func (s *RecipeService) Update(userID, id uint, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.TimeMinutes != nil {
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		recipe.Price = *patch.Price
	}
	if patch.Link != nil {
		recipe.Link = *patch.Link
	}
	if err := s.recipeRepo.Save(recipe); err != nil {
		return nil, err
	}

	if patch.TagIDs != nil {
		tags, err := s.tagRepo.GetByIDs(*patch.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(recipe, tags); err != nil {
			return nil, err
		}
	}
	if patch.IngredientIDs != nil {
		ingredients, err := s.ingredientRepo.GetByIDs(*patch.IngredientIDs)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
			return nil, err
		}
	}

	return s.recipeRepo.GetByID(userID, id)
}

// Replace performs a full update: every writable field takes the supplied
// value and both association sets are replaced, clearing them when omitted.
func (s *RecipeService) Replace(userID, id uint, input RecipeInput) (*models.Recipe, error) {
	tagIDs := input.TagIDs
	if tagIDs == nil {
		tagIDs = []uint{}
	}
	ingredientIDs := input.IngredientIDs
	if ingredientIDs == nil {
		ingredientIDs = []uint{}
	}

	return s.Update(userID, id, RecipePatch{
		Title:         &input.Title,
		TimeMinutes:   &input.TimeMinutes,
		Price:         &input.Price,
		Link:          &input.Link,
		TagIDs:        &tagIDs,
		IngredientIDs: &ingredientIDs,
	})
}

// Delete removes one of the user's recipes.
func (s *RecipeService) Delete(userID, id uint) error {
	return s.recipeRepo.Delete(userID, id)
}

// AttachImage stores the uploaded image and points the recipe at it,
// replacing any previous image.
func (s *RecipeService) AttachImage(userID, id uint, filename string, src io.Reader) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	stored, err := s.images.Save(src, filename)
	if err != nil {
		return nil, err
	}

	previous := recipe.Image
	recipe.Image = stored
	if err := s.recipeRepo.Save(recipe); err != nil {
		if removeErr := s.images.Remove(stored); removeErr != nil {
			log.Printf("Failed to remove orphaned image %s: %v", stored, removeErr)
		}
		return nil, err
	}
	if previous != "" {
		if err := s.images.Remove(previous); err != nil {
			log.Printf("Failed to remove replaced image %s: %v", previous, err)
		}
	}

	if err := s.mqClient.Publish(events.RecipeImageAttached, map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   userID,
		"image":     stored,
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", events.RecipeImageAttached, err)
	}

	return recipe, nil
}

// ClearImage detaches and deletes the recipe's image, if any.
func (s *RecipeService) ClearImage(userID, id uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if recipe.Image == "" {
		return recipe, nil
	}

	if s.images != nil {
		if err := s.images.Remove(recipe.Image); err != nil {
			log.Printf("Failed to remove image %s: %v", recipe.Image, err)
		}
	}
	recipe.Image = ""
	if err := s.recipeRepo.Save(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
