package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/generation"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm/llmtest"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setGenerateFlags sets the generate flags for one test and restores them
func setGenerateFlags(t *testing.T, in, out, format string) {
	t.Helper()
	prev := []string{generateInput, generateOutput, generateFormat, generateStyle}
	prevPages, prevSections := generatePageLimit, generateSections
	t.Cleanup(func() {
		generateInput, generateOutput, generateFormat, generateStyle = prev[0], prev[1], prev[2], prev[3]
		generatePageLimit, generateSections = prevPages, prevSections
	})

	generateInput, generateOutput, generateFormat = in, out, format
	generateStyle = string(types.StyleProfessional)
	generatePageLimit = 1
	generateSections = nil
}

func runGenerateWith(t *testing.T, stdin string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	generateCmd.SetIn(strings.NewReader(stdin))
	generateCmd.SetOut(&stdout)
	generateCmd.SetErr(&stderr)
	t.Cleanup(func() {
		generateCmd.SetIn(nil)
		generateCmd.SetOut(nil)
		generateCmd.SetErr(nil)
	})
	err := runGenerate(generateCmd, nil)
	return stdout.String(), stderr.String(), err
}

func TestGenerate_JSONToStdout(t *testing.T) {
	client := llmtest.Replying(janeDoeJSON)
	useMockClient(t, client)
	setGenerateFlags(t, "", "", "")

	stdout, _, err := runGenerateWith(t, "Jane Doe\nEngineer at Acme")
	require.NoError(t, err)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Jane Doe", types.Deref(doc.Sections.Contact.Name))
	assert.NotNil(t, doc.Sections.Projects, "sequences are normalized to empty arrays")

	calls := client.CompleteCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Engineer at Acme")
}

func TestGenerate_HTMLAndLaTeXFiles(t *testing.T) {
	useMockClient(t, llmtest.Replying(janeDoeJSON))
	dir := t.TempDir()

	for _, name := range []string{"resume.html", "resume.tex"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			setGenerateFlags(t, "", out, "")

			_, stderr, err := runGenerateWith(t, "Jane Doe")
			require.NoError(t, err)
			assert.Contains(t, stderr, "Wrote")

			content, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(content), "Jane Doe")
			assert.Contains(t, string(content), "Built X")
		})
	}
}

func TestGenerate_SectionsFlagHidesData(t *testing.T) {
	useMockClient(t, llmtest.Replying(janeDoeJSON))
	setGenerateFlags(t, "", "", "html")
	generateSections = []string{"Skills"}

	stdout, _, err := runGenerateWith(t, "Jane Doe")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Jane Doe", "the name line is always shown")
	assert.NotContains(t, stdout, "Built X")
}

func TestGenerate_EmptyInput(t *testing.T) {
	client := llmtest.Replying(janeDoeJSON)
	useMockClient(t, client)
	setGenerateFlags(t, "", "", "")

	_, stderr, err := runGenerateWith(t, "  \n ")
	require.Error(t, err)
	assert.Contains(t, stderr, generation.MsgEmptyInput)
	assert.Empty(t, client.CompleteCalls())
}

func TestGenerate_MalformedReply(t *testing.T) {
	useMockClient(t, llmtest.Replying("Sure! Here is your resume."))
	setGenerateFlags(t, "", "", "")

	_, stderr, err := runGenerateWith(t, "Jane Doe")
	require.Error(t, err)
	assert.Contains(t, stderr, generation.MsgFailed)

	var merr *generation.MalformedResponseError
	assert.ErrorAs(t, err, &merr)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	client := llmtest.Replying(janeDoeJSON)
	useMockClient(t, client)
	setGenerateFlags(t, "", "", "docx")

	_, _, err := runGenerateWith(t, "Jane Doe")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Empty(t, client.CompleteCalls())
}
