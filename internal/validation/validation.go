// Package validation holds the struct validator shared by configuration
// types, with messages translated to English.
package validation

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate          *validator.Validate
	trans             ut.Translator
	identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,99}$`)
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	// identifier: a letter followed by letters, digits or underscores. Empty values are left to "required".
	_ = validate.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || identifierPattern.MatchString(value)
	})

	_ = validate.RegisterTranslation("identifier", trans, func(ut ut.Translator) error {
		return ut.Add("identifier", "{0} must be a letter followed by letters, digits or underscores", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("identifier", fe.Field())
		return t
	})

	_ = validate.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0} must be one of [{1}]", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", fe.Field(), fe.Param())
		return t
	})
}

// Struct validates s against its "validate" tags and returns a single error
// joining the translated message of every failed constraint.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return TranslateValidatorError(err)
	}
	return nil
}

// TranslateValidatorError takes an error from the go-playground validator (internally just a map of errors) and
// converts it into a single user friendly error.
func TranslateValidatorError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := validationErrors.Translate(trans)
	vals := make([]string, 0, len(errs))
	for _, value := range errs {
		vals = append(vals, value)
	}
	sort.Strings(vals)

	return errors.New(strings.Join(vals, " "))
}
