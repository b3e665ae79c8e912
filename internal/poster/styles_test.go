package poster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStylesDefaultsToFullCatalog(t *testing.T) {
	selected := SelectStyles(nil)
	require.Len(t, selected, len(catalog))
	for i, style := range selected {
		assert.Equal(t, catalog[i].ID, style.ID)
	}
}

func TestSelectStylesPreservesCatalogOrder(t *testing.T) {
	// Caller order is reversed on purpose; catalog order must win.
	selected := SelectStyles([]string{"creative-free", "tjc-style"})
	require.Len(t, selected, 2)
	assert.Equal(t, "tjc-style", selected[0].ID)
	assert.Equal(t, "creative-free", selected[1].ID)
}

func TestSelectStylesDropsUnknownIDsSilently(t *testing.T) {
	selected := SelectStyles([]string{"tjc-style", "does-not-exist"})
	require.Len(t, selected, 1)
	assert.Equal(t, "tjc-style", selected[0].ID)
}

func TestSelectStylesFullyUnmatchedYieldsEmpty(t *testing.T) {
	assert.Empty(t, SelectStyles([]string{"bogus", "also-bogus"}))
}

func TestCatalogInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, style := range catalog {
		assert.False(t, seen[style.ID], "duplicate style id %s", style.ID)
		seen[style.ID] = true
		assert.Equalf(t, 1, strings.Count(style.Template, eventInfoPlaceholder),
			"style %s must contain exactly one placeholder", style.ID)
		assert.NotEmpty(t, style.Name)
		assert.NotEmpty(t, style.Description)
	}
}

func TestBuildPromptSubstitutesEventInfo(t *testing.T) {
	style := catalog[0]
	prompt := style.BuildPrompt("Outdoor concert, 2025-03-22 15:30")
	assert.Contains(t, prompt, "Outdoor concert, 2025-03-22 15:30")
	assert.NotContains(t, prompt, eventInfoPlaceholder)
}

func TestBuildPromptLeavesStrayBracesAlone(t *testing.T) {
	style := Style{Template: "before {EVENT_INFO} after {not-a-placeholder}"}
	assert.Equal(t, "before X after {not-a-placeholder}", style.BuildPrompt("X"))
}
