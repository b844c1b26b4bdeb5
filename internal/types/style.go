package types

import (
	"fmt"
	"strings"
)

// StyleVariant selects a presentation policy for a rendered resume. It never
// changes which data is shown.
type StyleVariant string

const (
	// StyleMinimal is the plain, tight layout
	StyleMinimal StyleVariant = "Minimal"
	// StyleProfessional is the default business layout
	StyleProfessional StyleVariant = "Professional"
	// StyleModern uses colored section labels with a divider
	StyleModern StyleVariant = "Modern"
	// StyleAcademic is tuned for CV-style documents
	StyleAcademic StyleVariant = "Academic"
)

// StyleVariants lists every supported style in display order.
func StyleVariants() []StyleVariant {
	return []StyleVariant{StyleMinimal, StyleProfessional, StyleModern, StyleAcademic}
}

// Valid reports whether s is one of the known styles
func (s StyleVariant) Valid() bool {
	for _, v := range StyleVariants() {
		if v == s {
			return true
		}
	}
	return false
}

// ParseStyle converts a user-supplied name into a StyleVariant.
func ParseStyle(name string) (StyleVariant, error) {
	s := StyleVariant(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown style %q (want one of %v)", name, StyleVariants())
	}
	return s, nil
}

// SectionName names a selectable resume section.
type SectionName string

// Selectable section names, as presented to the user and to the model.
const (
	SectionIntroduction SectionName = "Introduction"
	SectionEducation    SectionName = "Education"
	SectionSkills       SectionName = "Skills"
	SectionExperience   SectionName = "Experience"
	SectionProjects     SectionName = "Projects"
	SectionContact      SectionName = "Contact"
	SectionSocials      SectionName = "Socials"
	SectionLanguages    SectionName = "Languages"
)

// AllSections returns every selectable section in form order.
func AllSections() []SectionName {
	return []SectionName{
		SectionIntroduction, SectionEducation, SectionSkills, SectionExperience,
		SectionProjects, SectionContact, SectionSocials, SectionLanguages,
	}
}

// SectionSelection is the set of sections the user asked for.
type SectionSelection map[SectionName]bool

// NewSectionSelection builds a selection from names. An empty argument list
// yields an empty selection; use AllSections for the default.
func NewSectionSelection(names ...SectionName) SectionSelection {
	sel := make(SectionSelection, len(names))
	for _, n := range names {
		sel[n] = true
	}
	return sel
}

// Has reports whether name is selected. A nil selection selects everything.
func (s SectionSelection) Has(name SectionName) bool {
	if s == nil {
		return true
	}
	return s[name]
}

// ParseSectionName converts a user-supplied section name, ignoring case.
func ParseSectionName(name string) (SectionName, error) {
	for _, s := range AllSections() {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q (want one of %v)", name, AllSections())
}
