package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(dir string) *Generator {
	g := NewGenerator(dir, "")
	g.now = func() time.Time { return time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC) }
	return g
}

func TestAddMetadata(t *testing.T) {
	g := fixedGenerator(t.TempDir())

	out := g.AddMetadata("# Body\n", "renewable energy", 7)

	want := "---\n" +
		"title: Trade Opportunities Analysis - Renewable Energy\n" +
		"date: 2025-01-02 15:04:05\n" +
		"sector: renewable energy\n" +
		"sources_analyzed: 7\n" +
		"generated_by: Trade Opportunities API\n" +
		"---\n\n" +
		"# Body\n"
	assert.Equal(t, want, out)
	assert.True(t, strings.HasPrefix(out, "---"))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	g := fixedGenerator(dir)
	content := "---\nsector: Renewable Energy\n---\n\n# Rapport – ₹ 100 crore\n"

	path, err := g.Save("Renewable Energy", content)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "renewable_energy_20250102_150405.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestSaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := fixedGenerator(filepath.Join(blocker, "reports")).Save("textile", "content")
	require.ErrorIs(t, err, ErrSaveFailed)
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC)
	assert.Equal(t, "food_processing_20241231_235901.md", FileName("Food Processing", ts))
}
