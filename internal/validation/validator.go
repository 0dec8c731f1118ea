package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("notblank", validateNotBlank)
}

// FieldError is one failed rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Struct validates a request DTO.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func FormatValidationErrors(err error) []FieldError {
	var out []FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}

	for _, fieldError := range validationErrors {
		var message string

		switch fieldError.Tag() {
		case "required", "notblank":
			message = fieldError.Field() + " is required"
		case "min":
			if fieldError.Kind() == reflect.Slice {
				message = fieldError.Field() + " needs at least " + fieldError.Param() + " item(s)"
			} else {
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			}
		case "max":
			if fieldError.Kind() == reflect.Slice {
				message = fieldError.Field() + " allows at most " + fieldError.Param() + " items"
			} else {
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			}
		default:
			message = fieldError.Field() + " is invalid"
		}

		out = append(out, FieldError{
			Field:   fieldError.Field(),
			Message: message,
		})
	}

	return out
}

// Message joins every field error into one line for a rejection message.
func Message(err error) string {
	fields := FormatValidationErrors(err)
	if len(fields) == 0 {
		return "Invalid request"
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}
