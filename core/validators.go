package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	notBlankTag = "notblank"
	requiredTag = "required"
	minTag      = "min"

	requiredText  = "{0} is required"
	minLenText    = "{0} must be at least {1} characters"
	minNumberText = "{0} must be {1} or greater"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// NewValidator returns a validator initialized with InitValidators.
func NewValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	InitValidators(validate, translator)
	return validate
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)

	RegisterCustomTranslation(validate, translator, notBlankTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	registerMinTranslation(validate, translator)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
// The text may reference the field's label as {0} and the tag's param as {1}.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fieldLabel(fe), fe.Param())
			return s
		},
	)
}

// registerMinTranslation counts characters for strings and compares values for anything else.
func registerMinTranslation(validate *validator.Validate, translator ut.Translator) {
	minNumberKey := minTag + "-number"
	_ = validate.RegisterTranslation(
		minTag, translator,
		func(t ut.Translator) error {
			if err := t.Add(minTag, minLenText, true); err != nil {
				return err
			}
			return t.Add(minNumberKey, minNumberText, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			key := minTag
			if fe.Kind() != reflect.String {
				key = minNumberKey
			}
			s, _ := t.T(key, fieldLabel(fe), fe.Param())
			return s
		},
	)
}

// fieldLabel is the Go field name, which reads better in messages than the json name.
func fieldLabel(fe validator.FieldError) string {
	if sf := fe.StructField(); sf != "" {
		return sf
	}
	return fe.Field()
}

// Custom Global Validators

// notBlankValidation fails for strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}
