package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudechat-backend/internal/models"
)

func TestParse_FourSteps(t *testing.T) {
	got := Parse("A\n\nB\n\nC\n\nD")
	require.Len(t, got, 4)

	contents := make([]string, 0, len(got))
	for _, s := range got {
		contents = append(contents, s.Content)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, contents)

	assert.NotEqual(t, got[0].Icon, got[1].Icon)
	assert.NotEqual(t, got[1].Icon, got[2].Icon)
	assert.NotEqual(t, got[0].Icon, got[2].Icon)
	assert.Equal(t, got[2].Icon, got[3].Icon)
}

func TestParse_IDsAndTitles(t *testing.T) {
	got := Parse("first\n\nsecond")
	require.Len(t, got, 2)
	assert.Equal(t, models.Step{ID: "step-0", Title: "Step 1", Content: "first", Icon: models.IconDocumentText}, got[0])
	assert.Equal(t, models.Step{ID: "step-1", Title: "Step 2", Content: "second", Icon: models.IconCodeBracket}, got[1])
}

func TestParse_TrimsSegments(t *testing.T) {
	got := Parse("  one  \n\n\ttwo\n")
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Content)
	assert.Equal(t, "two", got[1].Content)
}

func TestParse_SingleNewlineIsNotABoundary(t *testing.T) {
	got := Parse("line one\nline two")
	require.Len(t, got, 1)
	assert.Equal(t, "line one\nline two", got[0].Content)
}

func TestParse_SkipsEmptySegments(t *testing.T) {
	got := Parse("A\n\n\n\nB\n\n   \n\nC")
	require.Len(t, got, 3)
	assert.Equal(t, "step-2", got[2].ID)
	assert.Equal(t, "C", got[2].Content)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse(" \n\n "))
}
