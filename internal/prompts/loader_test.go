package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("analysis.json", "meeting-analysis")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Transcript}}")
	assert.Contains(t, prompt, "{{.Criteria}}")

	system, err := Get("analysis.json", "meeting-system")
	require.NoError(t, err)
	assert.Contains(t, system, "JSON")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("analysis.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = Render("analysis.json", "nonexistent-key", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRender(t *testing.T) {
	prompt, err := Render("analysis.json", "meeting-analysis", map[string]string{
		"Transcript": "Alice: let's start.",
		"Criteria":   "Trust",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Alice: let's start.")
	assert.Contains(t, prompt, "criteria: Trust.")
	assert.NotContains(t, prompt, "{{.")
}

func TestRender_MissingValue(t *testing.T) {
	_, err := Render("analysis.json", "meeting-analysis", map[string]string{"Criteria": "Trust"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transcript")
}

func TestRender_ValuesAreInert(t *testing.T) {
	prompt, err := Render("analysis.json", "meeting-analysis", map[string]string{
		"Transcript": "Bob: the template uses {{.Criteria}} syntax",
		"Criteria":   "Trust",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Criteria}} syntax")
}
