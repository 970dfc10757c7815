package chat

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"batepapo/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their JSON name, which is what clients send
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type registration struct {
	Name string `json:"name" validate:"required"`
}

type messageInput struct {
	From string            `json:"from" validate:"required"`
	To   string            `json:"to" validate:"required"`
	Text string            `json:"text" validate:"required"`
	Type model.MessageType `json:"type" validate:"required,oneof=message private_message status"`
}

// check validates v and converts failures into a *ValidationError that
// names every offending field.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: []string{err.Error()}}
	}
	return &ValidationError{
		Fields: lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
			return describe(fe)
		}),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
