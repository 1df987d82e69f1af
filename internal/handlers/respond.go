package handlers

import (
	"errors"
	"fmt"
	"log"

	"recipebox/internal/apperror"
	"recipebox/internal/middleware"
	"recipebox/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// currentUser returns the account the auth middleware resolved for this
// request. Protected routes always have one.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(middleware.UserKey).(*models.User)
	return user
}

// writeError maps a service error onto the HTTP taxonomy: validation and
// duplicate input become 400, missing-or-unowned records 404, credential
// failures 401, anything else 500. Unowned ids arrive here as not-found, so
// ownership never surfaces as a distinct status.
func writeError(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			status = fiber.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, apperror.ErrAuthentication):
			status = fiber.StatusUnauthorized
		}

		body := fiber.Map{"message": appErr.Message}
		if appErr.Field != "" {
			body["errors"] = map[string]string{appErr.Field: appErr.Message}
		}
		return c.Status(status).JSON(body)
	}

	log.Printf("Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// writeValidationErrors renders validator failures as a field-level 400.
func writeValidationErrors(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// writeBadBody renders a body-parse failure.
func writeBadBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
