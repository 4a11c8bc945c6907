package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("parser.json", "resume_parser_system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "expert resume parser")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("parser.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestResumeParserSystem(t *testing.T) {
	prompt := ResumeParserSystem()
	// The prompt pins down the document shape the reconciler expects.
	assert.Contains(t, prompt, `"sections"`)
	assert.Contains(t, prompt, `"contact"`)
	assert.Contains(t, prompt, "HIDDEN LINKS")
}

func TestCaching(t *testing.T) {
	prompt1, err := Get("parser.json", "resume_parser_system")
	require.NoError(t, err)

	prompt2, err := Get("parser.json", "resume_parser_system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
