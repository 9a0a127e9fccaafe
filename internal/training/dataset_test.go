package training

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV_ValidFile(t *testing.T) {
	path := writeCSV(t, `resume_text,job_description,label
"Python developer","Python role","Good Fit"
"Chef","Python role","No Fit"
`)

	samples, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "Python developer", samples[0].Resume)
	assert.Equal(t, "Python role", samples[0].Job)
	assert.Equal(t, "Good Fit", samples[0].Label)
	assert.Equal(t, "No Fit", samples[1].Label)
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, err := LoadCSV("/nonexistent/train.csv")
	assert.Error(t, err)
}

func TestLoadCSV_WrongHeader(t *testing.T) {
	path := writeCSV(t, `resume,job,fit
"a","b","Good Fit"
`)

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `want "resume_text"`)
}

func TestLoadCSV_EmptyLabelRejected(t *testing.T) {
	path := writeCSV(t, `resume_text,job_description,label
"Python developer","Python role",""
`)

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty label")
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "resume_text,job_description,label\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no samples")
}

func TestLoadCSV_WrongColumnCount(t *testing.T) {
	path := writeCSV(t, `resume_text,job_description,label
"only","two"
`)

	_, err := LoadCSV(path)
	assert.Error(t, err)
}
