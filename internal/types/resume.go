// Package types provides type definitions for structured data used throughout the resumecraft system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeDocument is the root of a generated resume. A document is produced
// once per generation and replaced wholesale by the next one; nothing mutates
// it after Normalize.
type ResumeDocument struct {
	PageLimit int        `json:"page_limit"`
	Sections  SectionSet `json:"sections"`
}

// SectionSet holds every resume section. Scalar leaves use nil for absent;
// sequence leaves are never nil once the document has been normalized.
type SectionSet struct {
	Introduction *string           `json:"introduction"`
	Contact      Contact           `json:"contact"`
	Socials      Socials           `json:"socials"`
	Education    []EducationEntry  `json:"education"`
	Skills       Skills            `json:"skills"`
	Experience   []ExperienceEntry `json:"experience"`
	Projects     []ProjectEntry    `json:"projects"`
	Languages    []string          `json:"languages"`
}

// Contact is the candidate's contact block
type Contact struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

// Socials holds profile links
type Socials struct {
	LinkedIn  *string  `json:"linkedin"`
	Portfolio *string  `json:"portfolio"`
	Other     []string `json:"other"`
}

// EducationEntry is one degree or course of study. Slice order is display order.
type EducationEntry struct {
	Degree      *string `json:"degree"`
	Institution *string `json:"institution"`
	Location    *string `json:"location"`
	StartYear   *string `json:"start_year"`
	EndYear     *string `json:"end_year"`
	Details     *string `json:"details"`
}

// Skills groups skills by category. Each category behaves as an
// insertion-ordered set.
type Skills struct {
	Technical  []string `json:"technical"`
	Laboratory []string `json:"laboratory"`
	Software   []string `json:"software"`
	Soft       []string `json:"soft"`
}

// ExperienceEntry is one position held
type ExperienceEntry struct {
	Role             *string  `json:"role"`
	Organization     *string  `json:"organization"`
	Location         *string  `json:"location"`
	StartDate        *string  `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
}

// ProjectEntry is one project with bullet-point description
type ProjectEntry struct {
	Title       *string  `json:"title"`
	Description []string `json:"description"`
}

// Normalize replaces nil sequences with empty ones and drops duplicate skills
// within a category, keeping the first occurrence. It is applied once, right
// after parsing, so renderers only ever need emptiness checks.
func (d *ResumeDocument) Normalize() {
	s := &d.Sections
	s.Socials.Other = nonNil(s.Socials.Other)
	s.Languages = nonNil(s.Languages)

	if s.Education == nil {
		s.Education = []EducationEntry{}
	}
	if s.Experience == nil {
		s.Experience = []ExperienceEntry{}
	}
	for i := range s.Experience {
		s.Experience[i].Responsibilities = nonNil(s.Experience[i].Responsibilities)
	}
	if s.Projects == nil {
		s.Projects = []ProjectEntry{}
	}
	for i := range s.Projects {
		s.Projects[i].Description = nonNil(s.Projects[i].Description)
	}

	s.Skills.Technical = dedupe(s.Skills.Technical)
	s.Skills.Laboratory = dedupe(s.Skills.Laboratory)
	s.Skills.Software = dedupe(s.Skills.Software)
	s.Skills.Soft = dedupe(s.Skills.Soft)
}

// IsEmpty reports whether no skill category has entries
func (s Skills) IsEmpty() bool {
	return len(s.Technical) == 0 && len(s.Laboratory) == 0 && len(s.Software) == 0 && len(s.Soft) == 0
}

// Str returns a pointer to s, for building documents in code.
func Str(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" when absent.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Present reports whether an optional scalar carries displayable text.
// Absent and blank values are both treated as nothing to show.
func Present(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
