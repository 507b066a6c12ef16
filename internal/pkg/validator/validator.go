package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

var (
	structValidator     *playground.Validate
	structValidatorOnce sync.Once
)

func engine() *playground.Validate {
	structValidatorOnce.Do(func() {
		structValidator = playground.New(playground.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return structValidator
}

// Struct runs `validate` tag rules and converts failures to ValidationErrors.
func Struct(s interface{}) ValidationErrors {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), tagMessage(fe))
	}
	return errs
}

func tagMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must not exceed " + fe.Param()
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "lte":
		return fe.Field() + " must be less than or equal to " + fe.Param()
	case "hexcolor":
		return fe.Field() + " must be a hex color"
	default:
		return fe.Field() + " is invalid"
	}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var employeeCodeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,19}$`)

func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}

var periodRegex = regexp.MustCompile(`^\d{4}-(Q[1-4]|H[12]|FY)$`)

// IsValidReviewPeriod accepts 2025-Q1, 2025-H2 or 2025-FY.
func IsValidReviewPeriod(period string) bool {
	return periodRegex.MatchString(period)
}
