package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// price rules are expressed on the float value
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be negative", fe.Field())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func validationErrors(s any) []ProductValidationError {
	errs := []ProductValidationError{}

	err := validate.Struct(s)
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		for _, fe := range ves {
			errs = append(errs, ProductValidationError{Field: fe.Field(), Description: describe(fe)})
		}
	}
	return errs
}

func validateProduct(p *ProductRequest) []ProductValidationError {
	p.Name = strings.TrimSpace(p.Name)

	errs := validationErrors(p)
	if !p.Price.Equal(p.Price.Round(2)) {
		errs = append(errs, ProductValidationError{Field: "price", Description: "price must have at most 2 decimal places"})
	}
	return errs
}

func validateCategory(c *CategoryRequest) []ProductValidationError {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	return validationErrors(c)
}
