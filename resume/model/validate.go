package model

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,18}[0-9]$`)
	zipPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{1,8}[A-Za-z0-9]$`)

	validateOnce sync.Once
	validate     *validator.Validate

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// ValidationError lists every field problem found in a Record.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid resume record: " + strings.Join(e.Messages, "; ")
}

// Validate checks the record the way the form widgets would have coerced it.
func (r Record) Validate() error {
	err := recordValidator().Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatFieldError(fe))
	}
	return &ValidationError{Messages: messages}
}

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("valid_phone", validPhone)
		_ = v.RegisterValidation("valid_zip", validZip)
		_ = v.RegisterValidation("no_control", noControl)
		_ = v.RegisterValidation("no_markup", noMarkup)
		v.RegisterStructValidation(experienceDates, Experience{})
		validate = v
	})
	return validate
}

func validPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phonePattern.MatchString(val)
}

func validZip(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return zipPattern.MatchString(val)
}

func noControl(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// noMarkup rejects text that an HTML sanitizer would change. Plain angle
// brackets and ampersands survive; tag-like runs such as "<b>" do not.
func noMarkup(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if !strings.ContainsRune(val, '<') {
		return true
	}
	return html.UnescapeString(sanitizer().Sanitize(val)) == val
}

func sanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func experienceDates(sl validator.StructLevel) {
	exp, ok := sl.Current().Interface().(Experience)
	if !ok || exp.CurrentlyEmployed {
		return
	}
	if exp.StartDate.IsZero() || exp.EndDate.IsZero() {
		return
	}
	if exp.EndDate.Before(exp.StartDate.Time) {
		sl.ReportError(exp.EndDate, "endDate", "EndDate", "after_start", "")
	}
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s: must be a full URL", field)
	case "valid_phone":
		return fmt.Sprintf("%s: must be a valid phone number", field)
	case "valid_zip":
		return fmt.Sprintf("%s: must be a valid zipcode", field)
	case "no_control":
		return fmt.Sprintf("%s: must not contain control characters", field)
	case "no_markup":
		return fmt.Sprintf("%s: must not contain markup (text between < and > is read as a tag)", field)
	case "after_start":
		return fmt.Sprintf("%s: must not be before the start date", field)
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx != -1 {
		return namespace[idx+1:]
	}
	return namespace
}
