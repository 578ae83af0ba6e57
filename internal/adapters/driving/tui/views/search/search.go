// Package search provides the picker view: a debounced query input over a
// result list, resolving the chosen video to its label.
package search

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// DefaultDebounce is the pause after the last keystroke before searching.
const DefaultDebounce = 350 * time.Millisecond

// View is the picker view with input, results list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	videos   driving.VideoGateway
	ctx      context.Context
	debounce time.Duration

	// seq increments on every query change; completions carrying an
	// older seq belong to a superseded query.
	seq int

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
	picked     *messages.VideoPicked
}

// NewView creates a new picker view.
func NewView(s *styles.Styles, km *keymap.KeyMap, videos driving.VideoGateway) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		videos:     videos,
		ctx:        context.Background(),
		debounce:   DefaultDebounce,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context used for gateway calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithDebounce overrides the typing debounce. Zero searches on every change.
func (v *View) WithDebounce(d time.Duration) *View {
	v.debounce = d
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.focusInput {
			return v.handleInputKey(msg)
		}
		return v.handleResultsKey(msg)

	case messages.SearchDebounced:
		if msg.Seq != v.seq {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		return v, v.search(msg.Seq, msg.Query)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.VideoPicked:
		v.picked = &msg
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg { return messages.Cancelled{} }

	case keymap.Matches(msg.String(), v.keymap.Search):
		if !v.input.Searchable() {
			return v, nil
		}
		v.seq++
		v.statusbar.SetState(status.StateSearching)
		return v, v.search(v.seq, v.input.Query())

	case keymap.Matches(msg.String(), v.keymap.Results):
		if !v.list.IsEmpty() {
			v.focusResults()
		}
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.queryChanged())
}

// queryChanged supersedes any in-flight search and schedules a new one
// when the query is long enough.
func (v *View) queryChanged() tea.Cmd {
	v.seq++
	if !v.input.Searchable() {
		v.list.SetVideos(nil)
		v.err = nil
		v.statusbar.Clear()
		return nil
	}

	seq, query := v.seq, v.input.Query()
	if v.debounce <= 0 {
		v.statusbar.SetState(status.StateSearching)
		return v.search(seq, query)
	}
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.SearchDebounced{Seq: seq, Query: query}
	})
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusQuery()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Select):
		video := v.list.SelectedVideo()
		if video == nil {
			return v, nil
		}
		v.statusbar.SetState(status.StateResolving)
		return v, v.resolve(video.ID)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetResultsFocus(true)
}

func (v *View) focusQuery() {
	v.focusInput = true
	v.input.Focus()
	v.statusbar.SetResultsFocus(false)
}

func (v *View) search(seq int, query string) tea.Cmd {
	videos, ctx := v.videos, v.ctx
	return func() tea.Msg {
		if videos == nil {
			return messages.ErrorOccurred{Err: ErrNoVideoGateway}
		}
		return messages.SearchCompleted{
			Seq:    seq,
			Query:  query,
			Result: videos.SearchVideos(ctx, query, domain.DefaultMaxResults),
		}
	}
}

func (v *View) resolve(videoID string) tea.Cmd {
	videos, ctx := v.videos, v.ctx
	return func() tea.Msg {
		if videos == nil {
			return messages.ErrorOccurred{Err: ErrNoVideoGateway}
		}
		return messages.VideoPicked{ID: videoID, Label: videos.GetVideoLabel(ctx, videoID)}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Result.Failed() {
		v.list.SetVideos(nil)
		v.setError(errors.New(msg.Result.Error))
		return
	}

	v.err = nil
	v.list.SetVideos(msg.Result.Videos)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(v.list.Count())
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections,
		v.styles.Header.Render("ytpicker"),
		"",
		v.input.View(),
		"",
		v.list.View(),
	)

	if v.picked != nil {
		sections = append(sections, "", v.styles.Label.Render("Picked: "+v.picked.Label+" ("+v.picked.ID+")"))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// header, input box, spacing and status bar
	v.list.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// Query returns the current raw query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery replaces the query without scheduling a search.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Videos returns the listed videos.
func (v *View) Videos() []domain.VideoSummary {
	return v.list.Videos()
}

// SelectedVideo returns the highlighted video.
func (v *View) SelectedVideo() *domain.VideoSummary {
	return v.list.SelectedVideo()
}

// Picked returns the resolved choice, if any.
func (v *View) Picked() *messages.VideoPicked {
	return v.picked
}

// Seq returns the current query sequence number.
func (v *View) Seq() int {
	return v.seq
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}
