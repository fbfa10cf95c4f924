package extract

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	text := "Marie Curie worked at the University of Paris."
	prompt := BuildPrompt(text)

	// The input text must appear verbatim.
	if !strings.Contains(prompt, text) {
		t.Error("prompt does not contain the input text verbatim")
	}

	// The JSON shape description must name every field of both records.
	for _, field := range []string{
		`"entities"`, `"relationships"`,
		`"name"`, `"type"`, `"description"`,
		`"source"`, `"target"`, `"relationship"`,
	} {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt missing schema field %s", field)
		}
	}

	// Extraction guidelines and the only-JSON instruction.
	for _, want := range []string{
		"people, organizations, locations, concepts, events",
		"consistent entity names",
		"Ensure all entities mentioned in relationships are also listed",
		"Return only the JSON object",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing guideline %q", want)
		}
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	a := BuildPrompt("same input")
	b := BuildPrompt("same input")
	if a != b {
		t.Error("BuildPrompt is not deterministic for identical input")
	}
}
