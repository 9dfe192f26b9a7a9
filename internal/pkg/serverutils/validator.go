package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// client-facing 400 error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			invalid = append(invalid, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+strings.Join(invalid, ", "))
	}
	return nil
}
