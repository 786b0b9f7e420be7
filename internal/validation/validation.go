// Package validation checks candidate entities against the field rules declared
// in their `validate` struct tags. Rules are pure; uniqueness and referential
// checks live in the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	// Decimal values are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]validator.Func{
		"notblank":       validators.NotBlank,
		"money_positive": moneyPositive,
		"money_int":      moneyIntegerDigits,
		"money_frac":     moneyFractionDigits,
		"contact_email":  contactEmail,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	return v
}

// Product validates a product candidate.
func Product(p *models.Product) error {
	return check("product", p)
}

// Category validates a category candidate.
func Category(c *models.Category) error {
	return check("category", c)
}

// Supplier validates a supplier candidate.
func Supplier(s *models.Supplier) error {
	return check("supplier", s)
}

func check[T any](entity string, candidate *T) error {
	if candidate == nil {
		return apperrors.NewValidationError(entity, "required", entity+" is required")
	}
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	out := &apperrors.ValidationError{Violations: make([]apperrors.Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, apperrors.Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "notblank", "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, param)
	case "gte":
		return field + " cannot be negative"
	case "money_positive":
		return field + " must be greater than 0"
	case "money_int":
		return fmt.Sprintf("%s cannot have more than %s integer digits", field, param)
	case "money_frac":
		return fmt.Sprintf("%s cannot have more than %s decimal places", field, param)
	case "contact_email":
		return field + " must be a valid email address"
	}
	return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func moneyPositive(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive()
}

func moneyIntegerDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	digits, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return d.Abs().Truncate(0).LessThan(decimal.New(1, int32(digits)))
}

func moneyFractionDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return d.Equal(d.Truncate(int32(places)))
}

func contactEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
