// Package list provides the navigable result list of the picker.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// ResultList displays search hits in relevance order.
type ResultList struct {
	videos   []domain.VideoSummary
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of the list.
func (r *ResultList) View() string {
	if len(r.videos) == 0 {
		return r.styles.Hint.Render("No videos")
	}

	visible := max(r.height-2, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.videos))

	lines := make([]string, 0, end-start+2)
	lines = append(lines, r.styles.Hint.Render(fmt.Sprintf("%d videos", len(r.videos))), "")
	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderRow(i int) string {
	v := r.videos[i]
	maxTitle := max(r.width-len(v.ID)-8, 10)
	title := truncate(v.Title, maxTitle)

	if i == r.selected {
		return r.styles.SelectedItem.Render(fmt.Sprintf("> %-*s", maxTitle, title)) +
			" " + r.styles.VideoID.Render(v.ID)
	}
	return r.styles.Item.Render(fmt.Sprintf("  %-*s", maxTitle, title)) +
		" " + r.styles.VideoID.Render(v.ID)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetVideos replaces the list contents. Repeated ids keep their first row.
func (r *ResultList) SetVideos(videos []domain.VideoSummary) {
	seen := make(map[string]bool, len(videos))
	r.videos = make([]domain.VideoSummary, 0, len(videos))
	for _, v := range videos {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		r.videos = append(r.videos, v)
	}
	r.selected = 0
}

// Videos returns the listed videos.
func (r *ResultList) Videos() []domain.VideoSummary {
	return r.videos
}

// Selected returns the index of the highlighted row.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedVideo returns the highlighted video, or nil when empty.
func (r *ResultList) SelectedVideo() *domain.VideoSummary {
	if r.selected < 0 || r.selected >= len(r.videos) {
		return nil
	}
	return &r.videos[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.videos)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of videos.
func (r *ResultList) Count() int {
	return len(r.videos)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.videos) == 0
}
