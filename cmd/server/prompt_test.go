package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		promptSection, promptCategory, promptTier, promptTargetCareer = "", "", "", ""
		promptScore = 0
		promptProfile.JobTitle, promptProfile.Industry = "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPromptCommand_Risk(t *testing.T) {
	out, err := runRoot(t, "prompt", "--job-title", "Accountant", "--industry", "Finance")
	require.NoError(t, err)
	assert.Contains(t, out, "--- system ---")
	assert.Contains(t, out, "json=true")
	assert.Contains(t, out, "Job Title: Accountant")
}

func TestPromptCommand_Insight(t *testing.T) {
	out, err := runRoot(t, "prompt", "--section", "explore", "--category", "Technology Disruptors",
		"--job-title", "Accountant", "--industry", "Finance", "--score", "72", "--tier", "High")
	require.NoError(t, err)
	assert.Contains(t, out, "json=false")
	assert.Contains(t, out, "Accountant")
}

func TestPromptCommand_UnknownCategory(t *testing.T) {
	_, err := runRoot(t, "prompt", "--section", "invest", "--category", "Astronaut", "--job-title", "Accountant")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Skills Needed")
}
