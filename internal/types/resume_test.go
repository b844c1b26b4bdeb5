package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() ResumeDocument {
	doc := ResumeDocument{
		PageLimit: 2,
		Sections: SectionSet{
			Introduction: Str("Analytical chemist with eight years of lab experience."),
			Contact: Contact{
				Name:     Str("Jane Doe"),
				Email:    Str("jane@example.com"),
				Location: Str("Lisbon, PT"),
			},
			Socials: Socials{
				LinkedIn: Str("https://linkedin.com/in/janedoe"),
				Other:    []string{"github.com/janedoe"},
			},
			Education: []EducationEntry{
				{Degree: Str("MSc Chemistry"), Institution: Str("Univ. of Porto"), StartYear: Str("2012"), EndYear: Str("2014")},
			},
			Skills: Skills{
				Technical:  []string{"HPLC", "GC-MS"},
				Laboratory: []string{"Titration"},
				Software:   []string{"ChemStation"},
				Soft:       []string{},
			},
			Experience: []ExperienceEntry{
				{
					Role:             Str("Engineer"),
					Organization:     Str("Acme"),
					StartDate:        Str("2019"),
					EndDate:          Str("Present"),
					Responsibilities: []string{"Built X", "Ran Y"},
				},
			},
			Projects: []ProjectEntry{
				{Title: Str("Assay automation"), Description: []string{"Cut turnaround by 30%"}},
			},
			Languages: []string{"English", "Portuguese"},
		},
	}
	doc.Normalize()
	return doc
}

func TestResumeDocument_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var parsed ResumeDocument
	require.NoError(t, json.Unmarshal(data, &parsed))
	parsed.Normalize()

	assert.Equal(t, doc, parsed)
}

func TestResumeDocument_AbsentScalarsMarshalAsNull(t *testing.T) {
	doc := ResumeDocument{PageLimit: 1}
	doc.Normalize()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"introduction":null`)
	assert.Contains(t, s, `"name":null`)
	assert.Contains(t, s, `"languages":[]`)
	assert.Contains(t, s, `"experience":[]`)
	assert.NotContains(t, s, `"other":null`)
}

func TestNormalize_FillsNilSequences(t *testing.T) {
	input := `{
		"page_limit": 1,
		"sections": {
			"experience": [{"role": "Engineer", "responsibilities": null}],
			"projects": [{"title": "X"}],
			"languages": null
		}
	}`

	var doc ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	doc.Normalize()

	s := doc.Sections
	assert.NotNil(t, s.Languages)
	assert.NotNil(t, s.Education)
	assert.NotNil(t, s.Socials.Other)
	assert.NotNil(t, s.Skills.Soft)
	require.Len(t, s.Experience, 1)
	assert.NotNil(t, s.Experience[0].Responsibilities)
	require.Len(t, s.Projects, 1)
	assert.NotNil(t, s.Projects[0].Description)
	assert.Nil(t, s.Introduction)
}

func TestNormalize_DedupesSkillsPreservingOrder(t *testing.T) {
	doc := ResumeDocument{Sections: SectionSet{Skills: Skills{
		Technical: []string{"Go", "SQL", "Go", "Docker", "SQL"},
	}}}
	doc.Normalize()

	assert.Equal(t, []string{"Go", "SQL", "Docker"}, doc.Sections.Skills.Technical)
}

func TestNormalize_KeepsEntryOrder(t *testing.T) {
	doc := ResumeDocument{Sections: SectionSet{Experience: []ExperienceEntry{
		{Role: Str("Third")}, {Role: Str("First")}, {Role: Str("Third")},
	}}}
	doc.Normalize()

	require.Len(t, doc.Sections.Experience, 3)
	assert.Equal(t, "Third", *doc.Sections.Experience[0].Role)
	assert.Equal(t, "First", *doc.Sections.Experience[1].Role)
}

func TestSkills_IsEmpty(t *testing.T) {
	assert.True(t, Skills{}.IsEmpty())
	assert.False(t, Skills{Soft: []string{"Mentoring"}}.IsEmpty())
}

func TestPresent(t *testing.T) {
	assert.False(t, Present(nil))
	assert.False(t, Present(Str("")))
	assert.False(t, Present(Str("   ")))
	assert.True(t, Present(Str("x")))
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "x", Deref(Str("x")))
}
