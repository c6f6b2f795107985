package ingestion

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports why a dataset was rejected
type ValidationError struct {
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	return "invalid attendance data: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})

	return v
}

func describe(errs validator.ValidationErrors) []string {
	problems := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}

		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", field))
		case "min":
			problems = append(problems, fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "isodate":
			problems = append(problems, fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
		case "clock":
			problems = append(problems, fmt.Sprintf("%s must be an HH:MM time", field))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return problems
}
