package main

import (
	errs "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
)

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() (*requestValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, errors.Wrap(err, "registering notblank validation")
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}, nil
}

func (rv *requestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errs.As(err, &fieldErrs) {
		return err
	}

	ret := &validationError{Fields: map[string][]string{}}
	for _, fe := range fieldErrs {
		ret.Fields[fe.Field()] = append(ret.Fields[fe.Field()], validationMessage(fe))
	}
	return ret
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This value should not be blank."
	case "min":
		return fmt.Sprintf("This value is too short. It should have %s characters or more.", fe.Param())
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "email":
		return "This value is not a valid email address."
	default:
		return fmt.Sprintf("This value failed the %q check.", fe.Tag())
	}
}

type validationError struct {
	Fields map[string][]string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("%s: %v", types.ErrValidationFailed, e.Fields)
}

func (e *validationError) Unwrap() error {
	return types.ErrValidationFailed
}
