package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationRequest_Validate(t *testing.T) {
	valid := GenerationRequest{
		RawText:          "some text",
		PageLimit:        1,
		Style:            StyleModern,
		SelectedSections: AllSections(),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *GenerationRequest)
	}{
		{"page limit zero", func(r *GenerationRequest) { r.PageLimit = 0 }},
		{"page limit three", func(r *GenerationRequest) { r.PageLimit = 3 }},
		{"unknown style", func(r *GenerationRequest) { r.Style = "Elegant" }},
		{"empty style", func(r *GenerationRequest) { r.Style = "" }},
		{"unknown section", func(r *GenerationRequest) { r.SelectedSections = []SectionName{"Hobbies"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestGenerationRequest_EmptySectionsAllowed(t *testing.T) {
	r := GenerationRequest{PageLimit: 2, Style: StyleAcademic}
	assert.NoError(t, r.Validate())
	assert.Empty(t, r.Selection())
}
