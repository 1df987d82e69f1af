package handlers

import (
	"strconv"

	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateAttrRequest is the shared create payload for tags and ingredients.
type CreateAttrRequest struct {
	Name string `json:"name" validate:"required"`
}

// assignedOnlyQuery parses the assigned_only flag leniently: any value that
// is not a non-zero integer means the filter is off.
func assignedOnlyQuery(c *fiber.Ctx) bool {
	v, err := strconv.Atoi(c.Query("assigned_only"))
	return err == nil && v != 0
}

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service  *services.TagService
	validate *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the tag routes on an authenticated router group.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	g := router.Group("/tags")
	g.Get("/", h.HandleList)
	g.Post("/", h.HandleCreate)
}

// HandleList returns the caller's tags, name descending. With
// assigned_only set, only tags attached to at least one recipe are
// returned.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	tags, err := h.service.List(currentUser(c).ID, assignedOnlyQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newTagResponses(tags))
}

// HandleCreate creates a tag owned by the caller.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateAttrRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	tag, err := h.service.Create(currentUser(c).ID, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}
