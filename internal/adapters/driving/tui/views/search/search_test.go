package search

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// mockGateway implements driving.VideoGateway for testing.
type mockGateway struct {
	mu       sync.Mutex
	result   domain.SearchResult
	labels   map[string]string
	searches []string
}

func (m *mockGateway) SearchVideos(_ context.Context, term string, _ int) domain.SearchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, term)
	return m.result
}

func (m *mockGateway) GetVideoDetails(context.Context, string) *domain.VideoDetail { return nil }

func (m *mockGateway) GetVideoLabel(_ context.Context, id string) string {
	if label, ok := m.labels[id]; ok {
		return label
	}
	return domain.VideoNotFoundLabel
}

func (m *mockGateway) Ready() bool   { return true }
func (m *mockGateway) Reason() error { return nil }

func testResult() domain.SearchResult {
	return domain.SearchResult{Videos: []domain.VideoSummary{
		{ID: "vid-1", Title: "Laravel Basics"},
		{ID: "vid-2", Title: "Laravel Queues"},
	}}
}

func newTestView(gw *mockGateway) *View {
	v := NewView(nil, nil, gw).WithDebounce(0)
	v.SetDimensions(120, 30)
	return v
}

func typeText(v *View, text string) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(text))
	for _, r := range text {
		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	return cmds
}

// runCmd executes cmd and feeds every produced message back into the view.
func runCmd(v *View, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(v, c)
		}
		return
	}
	if _, ok := msg.(messages.SearchCompleted); ok {
		v.Update(msg)
	}
	if _, ok := msg.(messages.VideoPicked); ok {
		v.Update(msg)
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &mockGateway{})

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())
}

func TestView_ShortQueryDoesNotSearch(t *testing.T) {
	gw := &mockGateway{result: testResult()}
	v := newTestView(gw)

	for _, cmd := range typeText(v, "la") {
		runCmd(v, cmd)
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, gw.searches)
	assert.Equal(t, status.StateTyping, v.StatusState())
}

func TestView_TypingSearchesOnceLongEnough(t *testing.T) {
	gw := &mockGateway{result: testResult()}
	v := newTestView(gw)

	for _, cmd := range typeText(v, "lar") {
		runCmd(v, cmd)
	}

	assert.Equal(t, []string{"lar"}, gw.searches)
	assert.Len(t, v.Videos(), 2)
	assert.Equal(t, status.StateResults, v.StatusState())
}

func TestView_StaleResultsAreDropped(t *testing.T) {
	v := newTestView(&mockGateway{})
	typeText(v, "laravel")
	current := v.Seq()

	v.Update(messages.SearchCompleted{Seq: current - 1, Query: "larave", Result: testResult()})
	assert.Empty(t, v.Videos())

	v.Update(messages.SearchCompleted{Seq: current, Query: "laravel", Result: testResult()})
	assert.Len(t, v.Videos(), 2)
}

func TestView_DebouncedTickIgnoredWhenSuperseded(t *testing.T) {
	gw := &mockGateway{result: testResult()}
	v := NewView(nil, nil, gw).WithDebounce(time.Millisecond)
	v.SetDimensions(120, 30)

	typeText(v, "laravel")

	_, cmd := v.Update(messages.SearchDebounced{Seq: v.Seq() - 1, Query: "larave"})
	assert.Nil(t, cmd)

	_, cmd = v.Update(messages.SearchDebounced{Seq: v.Seq(), Query: "laravel"})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateSearching, v.StatusState())
	runCmd(v, cmd)
	assert.Equal(t, []string{"laravel"}, gw.searches)
}

func TestView_ShorteningQueryClearsResults(t *testing.T) {
	v := newTestView(&mockGateway{result: testResult()})
	for _, cmd := range typeText(v, "lar") {
		runCmd(v, cmd)
	}
	require.Len(t, v.Videos(), 2)

	v.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Empty(t, v.Videos())
	assert.Equal(t, status.StateTyping, v.StatusState())
}

func TestView_SearchError(t *testing.T) {
	v := newTestView(&mockGateway{result: domain.SearchFailed("service not initialized")})

	for _, cmd := range typeText(v, "laravel") {
		runCmd(v, cmd)
	}

	require.Error(t, v.Err())
	assert.Equal(t, "service not initialized", v.Err().Error())
	assert.Equal(t, status.StateError, v.StatusState())
	assert.Empty(t, v.Videos())
}

func TestView_PickResolvesLabel(t *testing.T) {
	gw := &mockGateway{result: testResult(), labels: map[string]string{"vid-2": "Laravel Queues"}}
	v := newTestView(gw)
	for _, cmd := range typeText(v, "laravel") {
		runCmd(v, cmd)
	}

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, v.InputFocused())
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateResolving, v.StatusState())

	msg := cmd()
	picked, ok := msg.(messages.VideoPicked)
	require.True(t, ok)
	assert.Equal(t, messages.VideoPicked{ID: "vid-2", Label: "Laravel Queues"}, picked)

	v.Update(msg)
	assert.Equal(t, &picked, v.Picked())
	assert.Contains(t, v.View(), "Picked: Laravel Queues (vid-2)")
}

func TestView_TabIgnoredWithoutResults(t *testing.T) {
	v := newTestView(&mockGateway{})

	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.True(t, v.InputFocused())
}

func TestView_EscFromResultsReturnsToInput(t *testing.T) {
	v := newTestView(&mockGateway{result: testResult()})
	for _, cmd := range typeText(v, "laravel") {
		runCmd(v, cmd)
	}
	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
	assert.Len(t, v.Videos(), 2)
}

func TestView_EscFromInputCancels(t *testing.T) {
	v := newTestView(&mockGateway{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Cancelled{}, cmd())
}

func TestView_NilGateway(t *testing.T) {
	v := NewView(nil, nil, nil).WithDebounce(0)
	v.SetDimensions(120, 30)
	v.SetQuery("laravel")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, messages.ErrorOccurred{Err: ErrNoVideoGateway}, msg)

	v.Update(msg)
	assert.ErrorIs(t, v.Err(), ErrNoVideoGateway)
}

func TestView_Render(t *testing.T) {
	v := newTestView(&mockGateway{result: testResult()})
	for _, cmd := range typeText(v, "laravel") {
		runCmd(v, cmd)
	}

	view := v.View()

	assert.Contains(t, view, "ytpicker")
	assert.Contains(t, view, "Laravel Basics")
	assert.Contains(t, view, "2 videos")
}
