package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanonicalResumeEncodesArrays(t *testing.T) {
	data, err := json.Marshal(NewCanonicalResume())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"experiences":[]`)
	assert.Contains(t, string(data), `"skillsArray":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestCloneDoesNotAliasSlices(t *testing.T) {
	original := NewCanonicalResume()
	original.SkillsArray = []string{"Go"}
	original.Experiences = []Experience{{Role: "Engineer"}}
	original.CustomSections = []CustomSection{{Name: "Interests", Items: []CustomItem{{Text: "Chess"}}}}

	clone := original.Clone()
	clone.SkillsArray[0] = "Rust"
	clone.Experiences[0].Role = "Manager"
	clone.CustomSections[0].Items[0].Text = "Poker"

	assert.Equal(t, "Go", original.SkillsArray[0])
	assert.Equal(t, "Engineer", original.Experiences[0].Role)
	assert.Equal(t, "Chess", original.CustomSections[0].Items[0].Text)
}

func TestCloneNil(t *testing.T) {
	var r *CanonicalResume
	assert.Nil(t, r.Clone())
}

func TestDocumentAccessors(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{
		"fullName": "Jane",
		"contact": {"email": "jane@example.com"},
		"sections": [
			{"name": "Work Experience", "type": "experience", "items": ["x"]},
			"not a section"
		]
	}`), &doc))

	assert.Equal(t, "Jane", doc.Str("fullName"))
	assert.Equal(t, "jane@example.com", doc.Map("contact").Str("email"))

	sections := doc.Sections()
	require.Len(t, sections, 1)
	assert.True(t, sections[0].MatchesKeyword("experience"))
	assert.False(t, sections[0].MatchesKeyword("education"))
}

func TestDocumentNilSafety(t *testing.T) {
	var doc Document
	assert.Empty(t, doc.Str("fullName"))
	assert.Nil(t, doc.Map("contact"))
	assert.Empty(t, doc.Sections())
}

func TestItemText(t *testing.T) {
	assert.Equal(t, "AWS Certified", ItemText("AWS Certified"))
	assert.Equal(t, "Volunteer", ItemText(map[string]any{"title": "Volunteer"}))
	assert.Empty(t, ItemText(42))
}

func TestParseResumeRequestValidate(t *testing.T) {
	req := &ParseResumeRequest{}
	assert.Error(t, req.Validate())

	req.ResumeText = "short"
	assert.Error(t, req.Validate())

	req.ResumeText = "Jane Doe, Software Engineer with ten years of experience building systems."
	assert.NoError(t, req.Validate())
}

func TestExportRequestValidate(t *testing.T) {
	req := &ExportRequest{Data: NewCanonicalResume(), Template: "modern", Accent: "violet"}
	assert.NoError(t, req.Validate())

	req.Template = "brutalist"
	assert.Error(t, req.Validate())

	req = &ExportRequest{}
	assert.Error(t, req.Validate())
}
