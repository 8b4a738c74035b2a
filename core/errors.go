package core

import (
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return "invalid " + err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// FieldErrors maps err to {field: message}.
// validator.ValidationErrors are translated with translator; a nil error gives an empty map.
// Any other error is reported under the "error" key.
func FieldErrors(err error, translator ut.Translator) map[string]string {
	if err == nil {
		return map[string]string{}
	}

	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(translator)
		}
		return fldErrs
	case *ValidationError:
		fldErrs := make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fldErrs[fErr.Field] = fErr.Error
		}
		if len(fldErrs) == 0 {
			fldErrs["error"] = origErr.Error()
		}
		return fldErrs
	default:
		return map[string]string{"error": err.Error()}
	}
}

// SortedFieldErrors turns a {field: message} mapping into FieldErrors ordered by field.
func SortedFieldErrors(errs map[string]string) []FieldError {
	flds := make([]FieldError, 0, len(errs))
	for field, msg := range errs {
		flds = append(flds, FieldError{Field: field, Error: msg})
	}
	sort.Slice(flds, func(i, j int) bool { return flds[i].Field < flds[j].Field })
	return flds
}
