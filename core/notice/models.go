package notice

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/masomo-web/core"
)

// Field names, as used in validation mappings and by Form.Set.
const (
	FieldTitle   = "title"
	FieldDetails = "details"
	FieldDate    = "date"
)

const (
	TitleMinLen   = 5
	TitleMaxLen   = 100 // display limit; the form clips longer input
	DetailsMinLen = 20
)

// Notice is an announcement published by the school administration.
type Notice struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Details   string    `json:"details" yaml:"-"`
	Date      string    `json:"date" yaml:"date"`             // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at" yaml:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"` // UTC
}

// NewNotice contains information needed to create a new Notice.
// Values are validated as typed: nothing is trimmed.
type NewNotice struct {
	Title   string `json:"title" validate:"notblank,min=5"`
	Details string `json:"details" validate:"notblank,min=20"`
	Date    string `json:"date" validate:"required"`
}

func (nn NewNotice) Validate(validate *validator.Validate) error {
	return validate.Struct(nn)
}

// Check validates nn and returns the {field: message} mapping; an empty mapping means nn is valid.
func Check(validate *validator.Validate, translator ut.Translator, nn NewNotice) map[string]string {
	return core.FieldErrors(nn.Validate(validate), translator)
}

// UpdateNotice defines what information may be provided to modify an existing Notice.
// Nil fields keep their current value.
type UpdateNotice struct {
	Title   *string `json:"title"`
	Details *string `json:"details"`
	Date    *string `json:"date"`
}

// ApplyTo returns the record n would become once uu is applied.
func (uu UpdateNotice) ApplyTo(n Notice) NewNotice {
	nn := n.Values()
	if uu.Title != nil {
		nn.Title = *uu.Title
	}
	if uu.Details != nil {
		nn.Details = *uu.Details
	}
	if uu.Date != nil {
		nn.Date = *uu.Date
	}
	return nn
}

// Values returns the editable fields of n.
func (n Notice) Values() NewNotice {
	return NewNotice{Title: n.Title, Details: n.Details, Date: n.Date}
}
