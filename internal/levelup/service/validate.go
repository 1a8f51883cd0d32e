package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	rules := map[string]validator.Func{
		"clock": func(fl validator.FieldLevel) bool {
			_, ok := ParseClock(fl.Field().String())
			return ok
		},
		"date": func(fl validator.FieldLevel) bool {
			return validDate(fl.Field().String())
		},
		"nonul": func(fl validator.FieldLevel) bool {
			return !strings.ContainsRune(fl.Field().String(), 0)
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// ParseClock accepts hh:mm or hh:mm:ss and normalizes to hh:mm:ss.
// Fractional seconds are rejected.
func ParseClock(s string) (string, bool) {
	if strings.ContainsAny(s, ".,") {
		return "", false
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

// validDate accepts YYYY-MM-DD from year 1 on.
func validDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Year() >= 1
}

// validateInput turns validator failures into a models.ValidationError keyed by json field name.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &models.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "date":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "nonul":
		return "Null characters are not allowed."
	case "clock":
		return "Time has wrong format. Use one of these formats instead: hh:mm[:ss]."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}
