package handlers

import (
	"strconv"
	"strings"

	"recipebox/internal/apperror"
	"recipebox/internal/repositories"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the recipe routes on an authenticated router
// group.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	g := router.Group("/recipes")
	g.Get("/", h.HandleList)
	g.Post("/", h.HandleCreate)
	g.Get("/:id", h.HandleGet)
	g.Put("/:id", h.HandlePut)
	g.Patch("/:id", h.HandlePatch)
	g.Delete("/:id", h.HandleDelete)
	g.Post("/:id/upload-image", h.HandleUploadImage)
	g.Put("/:id/upload-image", h.HandleUploadImage)
	g.Get("/:id/upload-image", h.HandleGet)
	g.Delete("/:id/upload-image", h.HandleClearImage)
}

// RecipeRequest is the payload for create and full update. Time and price
// are pointers so that an omitted field fails validation while an explicit
// zero stays a legitimate value.
type RecipeRequest struct {
	Title       string   `json:"title" validate:"required"`
	TimeMinutes *int     `json:"time_minutes" validate:"required,gte=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Link        string   `json:"link"`
	Tags        []uint   `json:"tags"`
	Ingredients []uint   `json:"ingredients"`
}

// RecipePatchRequest is the payload for partial update; nil fields are
// left untouched.
type RecipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// recipeID extracts the :id path parameter. A non-numeric id behaves like
// a missing record.
func recipeID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("recipe", 0)
	}
	return uint(id), nil
}

// parseIDSet parses a comma-separated id list. Unlike assigned_only this
// call site fails fast on malformed input.
func parseIDSet(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, apperror.ValidationFailed("filter", "id filters must be comma-separated integers")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// HandleList returns the caller's recipes, newest first, optionally
// narrowed by tags / ingredients id-set filters.
func (h *RecipeHandler) HandleList(c *fiber.Ctx) error {
	tagIDs, err := parseIDSet(c.Query("tags"))
	if err != nil {
		return writeError(c, err)
	}
	ingredientIDs, err := parseIDSet(c.Query("ingredients"))
	if err != nil {
		return writeError(c, err)
	}

	recipes, err := h.service.List(currentUser(c).ID, repositories.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newRecipeListItems(recipes))
}

// HandleCreate creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	recipe, err := h.service.Create(currentUser(c).ID, services.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   *req.TimeMinutes,
		Price:         *req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newRecipeDetail(recipe))
}

// HandleGet returns the detail view with nested tags and ingredients.
func (h *RecipeHandler) HandleGet(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return writeError(c, err)
	}
	recipe, err := h.service.Get(currentUser(c).ID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}

// HandlePut fully replaces a recipe; omitted association lists clear the
// associations.
func (h *RecipeHandler) HandlePut(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	recipe, err := h.service.Replace(currentUser(c).ID, id, services.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   *req.TimeMinutes,
		Price:         *req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}

// HandlePatch applies a partial update; only supplied fields change.
func (h *RecipeHandler) HandlePatch(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req RecipePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}

	recipe, err := h.service.Update(currentUser(c).ID, id, services.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}

// HandleDelete removes one of the caller's recipes.
func (h *RecipeHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(currentUser(c).ID, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage attaches the multipart "image" file to the recipe,
// replacing any previous image.
func (h *RecipeHandler) HandleUploadImage(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return writeError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return writeError(c, apperror.ValidationFailed("image", "an image file is required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return writeError(c, apperror.ValidationFailed("image", "uploaded image could not be read"))
	}
	defer src.Close()

	recipe, err := h.service.AttachImage(currentUser(c).ID, id, fileHeader.Filename, src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}

// HandleClearImage detaches and deletes the recipe's image.
func (h *RecipeHandler) HandleClearImage(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return writeError(c, err)
	}
	recipe, err := h.service.ClearImage(currentUser(c).ID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}
