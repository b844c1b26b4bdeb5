package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSchemaWith(t *testing.T, tolerant bool) map[string]any {
	t.Helper()
	prevTolerant, prevOut := schemaTolerant, schemaOutput
	t.Cleanup(func() { schemaTolerant, schemaOutput = prevTolerant, prevOut })
	schemaTolerant, schemaOutput = tolerant, ""

	var stdout bytes.Buffer
	schemaCmd.SetOut(&stdout)
	t.Cleanup(func() { schemaCmd.SetOut(nil) })

	require.NoError(t, runSchema(schemaCmd, nil))
	var schema map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &schema))
	return schema
}

func TestSchema_Strict(t *testing.T) {
	schema := runSchemaWith(t, false)

	assert.Equal(t, "ResumeDocument", schema["title"])
	assert.ElementsMatch(t, []any{"page_limit", "sections"}, schema["required"])

	sections := schema["properties"].(map[string]any)["sections"].(map[string]any)
	languages := sections["properties"].(map[string]any)["languages"].(map[string]any)
	assert.Equal(t, "array", languages["type"])
}

func TestSchema_Tolerant(t *testing.T) {
	schema := runSchemaWith(t, true)

	sections := schema["properties"].(map[string]any)["sections"].(map[string]any)
	languages := sections["properties"].(map[string]any)["languages"].(map[string]any)
	assert.Equal(t, []any{"array", "null"}, languages["type"])
}
