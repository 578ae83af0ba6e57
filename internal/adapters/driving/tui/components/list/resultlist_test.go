package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

func testVideos() []domain.VideoSummary {
	return []domain.VideoSummary{
		{ID: "vid-1", Title: "Laravel 11 in 100 seconds"},
		{ID: "vid-2", Title: "Laravel Queues"},
		{ID: "vid-3", Title: "Eloquent relationships"},
	}
}

func TestNewResultList(t *testing.T) {
	r := NewResultList(nil)

	require.NotNil(t, r)
	assert.True(t, r.IsEmpty())
	assert.Nil(t, r.SelectedVideo())
	assert.Contains(t, r.View(), "No videos")
}

func TestResultList_SetVideos_DropsRepeatedIDs(t *testing.T) {
	r := NewResultList(nil)
	r.SetVideos(append(testVideos(), domain.VideoSummary{ID: "vid-1", Title: "again"}))

	require.Equal(t, 3, r.Count())
	assert.Equal(t, "Laravel 11 in 100 seconds", r.Videos()[0].Title)
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil)
	r.SetVideos(testVideos())

	r.MoveUp()
	assert.Equal(t, 0, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyDown})
	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, r.Selected())
	assert.Equal(t, "vid-3", r.SelectedVideo().ID)

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, r.Selected())

	r.SetVideos(testVideos())
	assert.Equal(t, 0, r.Selected(), "new results reset the selection")
}

func TestResultList_View(t *testing.T) {
	r := NewResultList(nil)
	r.SetVideos(testVideos())

	view := r.View()

	assert.Contains(t, view, "3 videos")
	assert.Contains(t, view, "> Laravel 11 in 100 seconds")
	assert.Contains(t, view, "vid-2")
}

func TestResultList_View_ScrollsToSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(80, 3)
	r.SetVideos(testVideos())
	r.MoveDown()
	r.MoveDown()

	view := r.View()

	assert.Contains(t, view, "Eloquent relationships")
	assert.NotContains(t, view, "Laravel Queues")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Víde...", truncate("Vídeo longo", 7))
	assert.Len(t, []rune(truncate(strings.Repeat("x", 50), 20)), 20)
}
