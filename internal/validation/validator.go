package validation

import (
	"fmt"
	"regexp"
	"time"

	v10 "github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// structValidator handles `validate:` tags on request DTOs.
	structValidator = v10.New()
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) Required(field string, value interface{}) {
	switch val := value.(type) {
	case string:
		v.Check(val != "", field, "is required")
	case int:
		v.Check(val != 0, field, "is required")
	case uint:
		v.Check(val != 0, field, "is required")
	case float64:
		v.Check(val != 0, field, "is required")
	case time.Time:
		v.Check(!val.IsZero(), field, "is required")
	default:
		v.Check(val != nil, field, "is required")
	}
}

func (v *Validator) Range(field string, value, min, max float64) {
	v.Check(value >= min && value <= max,
		field, fmt.Sprintf("must be between %v and %v", min, max))
}

func (v *Validator) Future(field string, t time.Time) {
	v.Check(t.After(time.Now()), field, "must be in the future")
}

func (v *Validator) Email(field, value string) {
	v.Check(emailRegex.MatchString(value), field, "must be a valid email address")
}

func (v *Validator) Phone(field, value string) {
	v.Check(phoneRegex.MatchString(value), field, "must be a valid phone number")
}

// Struct runs the `validate:` tag rules on a request DTO.
func Struct(s interface{}) error {
	return structValidator.Struct(s)
}
