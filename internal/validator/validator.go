package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must be at least %s characters long"
	ErrMaxLength      = "must be at most %s characters long"
	ErrOneOf          = "must be one of: %s"
	ErrImdbID         = "must be a catalog identifier such as tt0133093"
	ErrLanguage       = "must be a language tag such as pt or en"
	ErrDefaultInvalid = "is invalid"
)

var imdbIDRgx = regexp.MustCompile(`^tt\d{7,10}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)
	validator.RegisterValidation("imdb_id", validateImdbID)
	validator.RegisterValidation("language", validateLanguage)

	return validator
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func validateImdbID(fl validator.FieldLevel) bool {
	return imdbIDRgx.MatchString(fl.Field().String())
}

func validateLanguage(fl validator.FieldLevel) bool {
	return IsLanguageTag(fl.Field().String())
}

// IsLanguageTag reports whether s parses as a BCP 47 tag.
func IsLanguageTag(s string) bool {
	if s == "" {
		return false
	}

	_, err := language.Parse(s)

	return err == nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "imdb_id":
		return ErrImdbID
	case "language":
		return ErrLanguage
	default:
		return ErrDefaultInvalid
	}
}
