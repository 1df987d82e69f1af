package services_test

import (
	"bytes"
	"errors"
	"testing"

	"recipebox/internal/apperror"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/services"
	"recipebox/pkg/imagestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockIngredientRepository is a mock implementation of
// repositories.AttrRepository[models.Ingredient].
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ingredient *models.Ingredient) error {
	args := m.Called(ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) ListForUser(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	args := m.Called(userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetByIDs(ids []uint) ([]models.Ingredient, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

// MockRecipeRepository is a mock implementation of
// repositories.RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetByID(userID, id uint) (*models.Recipe, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListForUser(userID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Save(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	args := m.Called(recipe, tags)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	args := m.Called(recipe, ingredients)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(userID, id uint) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func newRecipeServiceForTest(t *testing.T) (*services.RecipeService, *MockRecipeRepository, *MockTagRepository, *MockIngredientRepository) {
	t.Helper()
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	images, err := imagestore.New(t.TempDir())
	assert.NoError(t, err)
	svc := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, images, nil)
	return svc, recipeRepo, tagRepo, ingredientRepo
}

func TestRecipeService_CreateForcesOwner(t *testing.T) {
	svc, recipeRepo, tagRepo, ingredientRepo := newRecipeServiceForTest(t)

	tag := models.Tag{Name: "Dessert", UserID: 4}
	tag.ID = 1
	tagRepo.On("GetByIDs", []uint{1}).Return([]models.Tag{tag}, nil).Once()
	ingredientRepo.On("GetByIDs", []uint(nil)).Return(nil, nil).Once()

	recipeRepo.On("Create", mock.AnythingOfType("*models.Recipe")).Run(func(args mock.Arguments) {
		r := args.Get(0).(*models.Recipe)
		r.ID = 9
		assert.Equal(t, uint(4), r.UserID)
		assert.Len(t, r.Tags, 1)
	}).Return(nil).Once()

	stored := &models.Recipe{Title: "Chocolate", TimeMinutes: 30, Price: 5, UserID: 4, Tags: []models.Tag{tag}}
	stored.ID = 9
	recipeRepo.On("GetByID", uint(4), uint(9)).Return(stored, nil).Once()

	recipe, err := svc.Create(4, services.RecipeInput{
		Title:       "Chocolate",
		TimeMinutes: 30,
		Price:       5,
		TagIDs:      []uint{1},
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(9), recipe.ID)
	assert.Equal(t, uint(4), recipe.UserID)
	recipeRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
	ingredientRepo.AssertExpectations(t)
}

func TestRecipeService_PartialUpdateTouchesOnlySuppliedFields(t *testing.T) {
	svc, recipeRepo, tagRepo, ingredientRepo := newRecipeServiceForTest(t)

	existing := &models.Recipe{Title: "Old", TimeMinutes: 10, Price: 5, Link: "http://old", UserID: 4}
	existing.ID = 2
	recipeRepo.On("GetByID", uint(4), uint(2)).Return(existing, nil).Twice()
	recipeRepo.On("Save", existing).Return(nil).Once()

	newTitle := "New"
	recipe, err := svc.Update(4, 2, services.RecipePatch{Title: &newTitle})
	assert.NoError(t, err)
	assert.Equal(t, "New", recipe.Title)
	assert.Equal(t, 10, recipe.TimeMinutes)
	assert.Equal(t, 5.0, recipe.Price)
	assert.Equal(t, "http://old", recipe.Link)

	// No association list was supplied, so none was replaced.
	recipeRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything)
	recipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything)
	tagRepo.AssertNotCalled(t, "GetByIDs", mock.Anything)
	ingredientRepo.AssertNotCalled(t, "GetByIDs", mock.Anything)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_ReplaceClearsOmittedAssociations(t *testing.T) {
	svc, recipeRepo, tagRepo, ingredientRepo := newRecipeServiceForTest(t)

	existing := &models.Recipe{Title: "Old", TimeMinutes: 10, Price: 5, UserID: 4}
	existing.ID = 2
	recipeRepo.On("GetByID", uint(4), uint(2)).Return(existing, nil).Twice()
	recipeRepo.On("Save", existing).Return(nil).Once()

	tagRepo.On("GetByIDs", []uint{}).Return(nil, nil).Once()
	ingredientRepo.On("GetByIDs", []uint{}).Return(nil, nil).Once()
	recipeRepo.On("ReplaceTags", existing, []models.Tag(nil)).Return(nil).Once()
	recipeRepo.On("ReplaceIngredients", existing, []models.Ingredient(nil)).Return(nil).Once()

	_, err := svc.Replace(4, 2, services.RecipeInput{Title: "Chocolate", TimeMinutes: 30, Price: 5})
	assert.NoError(t, err)
	assert.Equal(t, "Chocolate", existing.Title)
	recipeRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
	ingredientRepo.AssertExpectations(t)
}

func TestRecipeService_UpdateUnownedIsNotFound(t *testing.T) {
	svc, recipeRepo, _, _ := newRecipeServiceForTest(t)

	recipeRepo.On("GetByID", uint(5), uint(2)).Return(nil, apperror.NotFound("recipe", 2)).Once()

	newTitle := "Hijacked"
	_, err := svc.Update(5, 2, services.RecipePatch{Title: &newTitle})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	recipeRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestRecipeService_AttachImageReplacesPrevious(t *testing.T) {
	svc, recipeRepo, _, _ := newRecipeServiceForTest(t)

	existing := &models.Recipe{Title: "Pie", UserID: 4, Image: "old.jpg"}
	existing.ID = 3
	recipeRepo.On("GetByID", uint(4), uint(3)).Return(existing, nil).Once()
	recipeRepo.On("Save", existing).Return(nil).Once()

	recipe, err := svc.AttachImage(4, 3, "photo.jpg", bytes.NewReader([]byte("fake image bytes")))
	assert.NoError(t, err)
	assert.NotEmpty(t, recipe.Image)
	assert.NotEqual(t, "old.jpg", recipe.Image)
	recipeRepo.AssertExpectations(t)
}
