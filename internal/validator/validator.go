package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator is a wrapper around the validator library. Field names in
// reported problems come from json tags so they match the wire format.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator instance with the notblank rule registered
// (required alone accepts whitespace-only strings).
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Problems splits a validation error into missing required fields and
// otherwise invalid fields (bad URL, bad enum value, ...).
func Problems(err error) (missing, invalid []string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, nil
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			missing = append(missing, fe.Field())
		default:
			invalid = append(invalid, fe.Field())
		}
	}
	return missing, invalid
}
