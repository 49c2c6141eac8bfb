package engine

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"wardrobe/errors"
	"wardrobe/models"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator that knows the garment categories.
func NewValidator() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// Garment validates g and returns an InvalidCategory or Validation error.
func (v *Validator) Garment(g models.Garment) error {
	err := v.v.Struct(g)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		if e.Tag() == "category" {
			return errors.InvalidCategory(fmt.Sprintf("invalid category: %q", g.Category))
		}
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	msgs := make([]string, 0, len(fieldErrors))
	for _, field := range []string{"name", "color"} {
		if m, ok := fieldErrors[field]; ok {
			msgs = append(msgs, field+" "+m)
		}
	}
	return errors.ValidationWithDetails(strings.Join(msgs, "; "), fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "excludesall":
		return "must not contain commas or line breaks"
	default:
		return "is invalid"
	}
}
