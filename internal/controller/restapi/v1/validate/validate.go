package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func New() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// Message turns validation errors into a short client-facing message.
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("missing %s", strings.ToLower(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s", strings.ToLower(fe.Field())))
		}
	}

	return strings.Join(msgs, ", ")
}
