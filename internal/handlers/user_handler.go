package handlers

import (
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts and token issuance.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. Create and token are public;
// the /me routes go through the auth middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	g := router.Group("/user")
	g.Post("/create", h.HandleCreate)
	g.Post("/token", h.HandleToken)
	g.Get("/me", requireAuth, h.HandleMe)
	g.Patch("/me", requireAuth, h.HandleUpdateMe)
	g.Post("/me", requireAuth, h.HandleMeNotAllowed)
}

// CreateUserRequest is the account-creation payload.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"`
}

// HandleCreate registers a new account.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	user, err := h.userService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// TokenRequest is the token-issuance payload.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleToken verifies credentials and returns a bearer token. Any
// credential failure is a 400 with no token in the body.
func (h *UserHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "unable to authenticate with provided credentials",
		})
	}
	return c.JSON(fiber.Map{"token": token})
}

// HandleMe returns the authenticated caller's profile.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(newUserResponse(currentUser(c)))
}

// UpdateMeRequest is the partial self-update payload; nil fields are left
// untouched.
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// HandleUpdateMe updates the caller's own name and/or password.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBadBody(c, err)
	}

	user, err := h.userService.UpdateSelf(currentUser(c), req.Name, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// HandleMeNotAllowed rejects POST on the profile resource.
func (h *UserHandler) HandleMeNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"message": "Method not allowed",
	})
}
