package notice

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/masomo-web/core"
)

var ErrUnknownField = errors.New("unknown field")

type FormDeps struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Service    *Service
}

// Form holds the state of a create or edit notice form between keystrokes and submission.
type Form struct {
	deps   FormDeps
	orig   *Notice // nil when creating
	values NewNotice
	errs   map[string]string
}

func NewCreateForm(deps FormDeps) *Form {
	return &Form{deps: deps, errs: make(map[string]string)}
}

// NewEditForm returns a form prefilled with n.
func NewEditForm(deps FormDeps, n Notice) *Form {
	return &Form{
		deps:   deps,
		orig:   &n,
		values: n.Values(),
		errs:   make(map[string]string),
	}
}

func (f *Form) IsEdit() bool { return f.orig != nil }

// Set changes one field and clears its error. Titles are clipped to TitleMaxLen characters.
func (f *Form) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.values.Title = clip(value, TitleMaxLen)
	case FieldDetails:
		f.values.Details = value
	case FieldDate:
		f.values.Date = value
	default:
		return errors.Wrapf(ErrUnknownField, "%q", field)
	}
	delete(f.errs, field)
	return nil
}

// Apply sets every field provided by uu.
func (f *Form) Apply(uu UpdateNotice) {
	if uu.Title != nil {
		_ = f.Set(FieldTitle, *uu.Title)
	}
	if uu.Details != nil {
		_ = f.Set(FieldDetails, *uu.Details)
	}
	if uu.Date != nil {
		_ = f.Set(FieldDate, *uu.Date)
	}
}

func (f *Form) Values() NewNotice { return f.values }

// Errors returns a copy of the current {field: message} mapping.
func (f *Form) Errors() map[string]string {
	errs := make(map[string]string, len(f.errs))
	for k, v := range f.errs {
		errs[k] = v
	}
	return errs
}

// Validate regenerates the error mapping from the current values and returns a copy of it.
func (f *Form) Validate() map[string]string {
	f.errs = Check(f.deps.Validate, f.deps.Translator, f.values)
	return f.Errors()
}

// Submit validates the form and, when valid, creates or updates the notice.
// An invalid form returns a *core.ValidationError and nothing is submitted.
func (f *Form) Submit(ctx context.Context) (Notice, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return Notice{}, core.NewValidationError(nil, core.SortedFieldErrors(errs)...)
	}
	if f.IsEdit() {
		n, err := f.deps.Service.Update(ctx, *f.orig, f.values)
		if err != nil {
			return Notice{}, err
		}
		f.orig = &n
		return n, nil
	}
	return f.deps.Service.Create(ctx, f.values)
}

// Changes returns a unified diff between the original notice and the form values.
// It is empty when creating or when nothing changed.
func (f *Form) Changes() string {
	if !f.IsEdit() {
		return ""
	}
	before := lines(f.orig.Values())
	after := lines(f.values)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: "original",
		ToFile:   "edited",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return diff
}

func lines(nn NewNotice) []string {
	out := []string{
		"title: " + nn.Title + "\n",
		"date: " + nn.Date + "\n",
		"details:\n",
	}
	for _, l := range strings.Split(nn.Details, "\n") {
		out = append(out, "  "+l+"\n")
	}
	return out
}

func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
