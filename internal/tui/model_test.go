package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/model"
)

func browserReading() *model.Reading {
	return &model.Reading{
		ID:             "reading-1",
		RuleSetVersion: 1,
		Matches: []model.RuleMatch{
			{
				RuleKey:    "kaal-sarp-axis",
				Category:   "karma",
				Impact:     model.ImpactNegative,
				Template:   "All grahas hemmed along the nodal axis",
				Priority:   95,
				Confidence: 0.9,
				Evidence: []model.Evidence{
					{Entity: model.EvidenceDosha, Key: "kaal_sarp", Severity: "high", Variant: "anant"},
				},
			},
			{
				RuleKey:    "saturn-seventh",
				Category:   "relationships",
				Impact:     model.ImpactNeutral,
				Template:   "Saturn in the seventh",
				Priority:   70,
				Confidence: 0.75,
				Evidence: []model.Evidence{
					{Entity: model.EvidencePlanet, Key: "Saturn", House: 7},
				},
			},
		},
	}
}

func TestModel_SelectionFollowsCursor(t *testing.T) {
	m := NewModel(browserReading())

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "kaal-sarp-axis", selected.RuleKey)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)

	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "saturn-seventh", selected.RuleKey)
}

func TestModel_QuitKey(t *testing.T) {
	m := NewModel(browserReading())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	assert.NotNil(t, cmd, "quit must issue tea.Quit")
	assert.Empty(t, m.View())
}

func TestModel_ViewListsMatches(t *testing.T) {
	m := NewModel(browserReading())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "kaal-sarp-axis")
	assert.Contains(t, view, "reading-1")
}

func TestModel_EmptyMatches(t *testing.T) {
	m := NewModel(&model.Reading{ID: "reading-2"})

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No rules matched")
}

func TestModel_HelpToggle(t *testing.T) {
	m := NewModel(browserReading())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	assert.Contains(t, m.View(), "previous")
}
