package types

import (
	"github.com/go-playground/validator/v10"
)

// GenerationRequest carries everything one generation needs. It is built
// fresh for every submission and never stored.
type GenerationRequest struct {
	RawText          string        `json:"raw_text"`
	PageLimit        int           `json:"page_limit" validate:"oneof=1 2"`
	Style            StyleVariant  `json:"style" validate:"oneof=Minimal Professional Modern Academic"`
	SelectedSections []SectionName `json:"sections" validate:"dive,oneof=Introduction Education Skills Experience Projects Contact Socials Languages"`
}

var requestValidator = validator.New()

// Validate checks page limit, style and section names. Empty raw text is
// checked separately by the generator so it can report a dedicated error.
func (r *GenerationRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Selection returns the requested sections as a set
func (r *GenerationRequest) Selection() SectionSelection {
	return NewSectionSelection(r.SelectedSections...)
}
