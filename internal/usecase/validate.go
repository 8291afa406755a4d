package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const providerDateLayout = "2006-01-02"

// maxFixtureWindow bounds a single fixtures request.
const maxFixtureWindow = 62 * 24 * time.Hour

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput runs struct tags and converts the first failure into a
// *ValidationError.
func validateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Reason: describeFieldError(fe)}
	}
	return &ValidationError{Field: "input", Reason: err.Error()}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("must match %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func validateDateWindow(from, to string) error {
	start, err := time.Parse(providerDateLayout, from)
	if err != nil {
		return &ValidationError{Field: "from", Reason: "must match " + providerDateLayout}
	}
	end, err := time.Parse(providerDateLayout, to)
	if err != nil {
		return &ValidationError{Field: "to", Reason: "must match " + providerDateLayout}
	}
	if end.Before(start) {
		return &ValidationError{Field: "to", Reason: "must not be before from"}
	}
	if end.Sub(start) > maxFixtureWindow {
		return &ValidationError{Field: "to", Reason: "window must not exceed 62 days"}
	}
	return nil
}

// DateWindow returns the [now-past, now+future] window as provider dates.
func DateWindow(now time.Time, pastDays, futureDays int) (string, string) {
	return now.AddDate(0, 0, -pastDays).Format(providerDateLayout),
		now.AddDate(0, 0, futureDays).Format(providerDateLayout)
}
