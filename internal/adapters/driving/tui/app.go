package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui/views/search"
)

// Selection is the video chosen in the picker.
type Selection struct {
	ID    string
	Label string
}

// App is the picker application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports      *Ports
	ctx        context.Context
	styles     *styles.Styles
	searchView *search.View

	selection *Selection
	cancelled bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new picker with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		searchView: search.NewView(s, nil, ports.Videos),
	}, nil
}

// WithContext sets the context for gateway calls and the program.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.searchView.Init(),
		tea.SetWindowTitle("ytpicker - pick a video"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.cancelled = true
			return a, tea.Quit
		}

	case messages.VideoPicked:
		a.selection = &Selection{ID: msg.ID, Label: msg.Label}
		a.searchView.Update(msg)
		return a, tea.Quit

	case messages.Cancelled:
		a.cancelled = true
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// Run starts the picker and blocks until a video is picked or the picker
// is closed. A nil Selection means nothing was picked.
func (a *App) Run() (*Selection, error) {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return a.selection, nil
}

// Selection returns the picked video, or nil.
func (a *App) Selection() *Selection {
	return a.selection
}

// Cancelled reports whether the picker was closed without a choice.
func (a *App) Cancelled() bool {
	return a.cancelled
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
