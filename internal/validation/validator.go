package validation

import (
	"fmt"
	"reflect"
	"strings"

	"bankledger/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// Error carries the formatted field failures of one request.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("account_type", validateAccountType)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate validates a struct and returns formatted field errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}

	return &Error{Fields: messages}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "account_number":
		return fmt.Sprintf("%s must be a valid account number (%d or higher)", fe.Field(), models.StartingAccountNumber)
	case "positive_amount":
		return fmt.Sprintf("%s must be a positive amount with at most 2 decimal places", fe.Field())
	case "account_type":
		return fmt.Sprintf("%s must be one of: %s, %s", fe.Field(), models.AccountTypeSavings, models.AccountTypeCurrent)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation rule %q", fe.Field(), fe.Tag())
	}
}

// Custom validation functions

// validateAccountNumber validates that a numeric account number is in the
// allocated range
func validateAccountNumber(fl validator.FieldLevel) bool {
	return fl.Field().Int() >= models.StartingAccountNumber
}

// validatePositiveAmount validates that a string amount is a positive decimal
// with at most 2 decimal places
func validatePositiveAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}

	return amount.Exponent() >= -2
}

// validateAccountType validates the account type label
func validateAccountType(fl validator.FieldLevel) bool {
	return models.IsValidAccountType(fl.Field().String())
}
