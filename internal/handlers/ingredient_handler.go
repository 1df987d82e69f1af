package handlers

import (
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// IngredientHandler handles HTTP requests for ingredients, symmetric to
// TagHandler.
type IngredientHandler struct {
	service  *services.IngredientService
	validate *validator.Validate
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(service *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the ingredient routes on an authenticated
// router group.
func (h *IngredientHandler) RegisterRoutes(router fiber.Router) {
	g := router.Group("/ingredients")
	g.Get("/", h.HandleList)
	g.Post("/", h.HandleCreate)
}

// HandleList returns the caller's ingredients, name descending, honoring
// the lenient assigned_only flag.
func (h *IngredientHandler) HandleList(c *fiber.Ctx) error {
	ingredients, err := h.service.List(currentUser(c).ID, assignedOnlyQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newIngredientResponses(ingredients))
}

// HandleCreate creates an ingredient owned by the caller.
func (h *IngredientHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateAttrRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	ingredient, err := h.service.Create(currentUser(c).ID, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}
