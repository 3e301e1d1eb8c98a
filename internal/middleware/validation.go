package middleware

import (
	"strconv"
	"strings"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/dto"
	"quiz-deck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalSearchQuery  = "validated_search"
	LocalSelectOption = "validated_select_option"
	LocalConfirmed    = "validated_confirm"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSearch validates the admin search query parameter
func (vm *ValidationMiddleware) ValidateSearch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("search")
		if errors := vm.validator.ValidateSearchQuery(query); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalSearchQuery, query)
		return c.Next()
	}
}

// ValidateSelectOption parses and validates the option selection body
func (vm *ValidationMiddleware) ValidateSelectOption() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.SelectOptionRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ValidationErrors{domain.NewInvalidValueError("body", "must be a JSON object")}
		}
		req.Option = strings.TrimSpace(req.Option)

		if errors := vm.validator.ValidateOptionKey(req.Option); len(errors) > 0 {
			return errors
		}

		c.Locals(LocalSelectOption, req)
		return c.Next()
	}
}

// ValidateConfirm parses the confirm query flag of destructive requests
func (vm *ValidationMiddleware) ValidateConfirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		confirmed, err := strconv.ParseBool(c.Query("confirm", "false"))
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidValueError("confirm", "must be true or false")}
		}

		c.Locals(LocalConfirmed, confirmed)
		return c.Next()
	}
}
