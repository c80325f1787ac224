package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"chatstats/internal/adapters/tui/views"
	"chatstats/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSummary ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state   ViewState
	summary *views.SummaryModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed may be nil.
func NewApp(opts views.SummaryOptions, ed ports.EditorOpener) *App {
	return &App{
		editor:  ed,
		state:   ViewSummary,
		summary: views.NewSummaryModel(opts),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.summary.Init()
}

// State returns the view currently shown
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.summary.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToSummaryMsg:
		a.state = ViewSummary
		return a, nil

	case views.OpenFileMsg:
		return a, a.openEditor(msg.Path)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			_, cmd := a.summary.Update(msg)
			return a, cmd
		}
		// Keys go to the visible view only
		var cmd tea.Cmd
		switch a.state {
		case ViewSummary:
			_, cmd = a.summary.Update(msg)
		case ViewHelp:
			_, cmd = a.help.Update(msg)
		}
		return a, cmd
	}

	// Progress, spinner and blink messages keep flowing while help is open
	_, cmd := a.summary.Update(msg)
	return a, cmd
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return views.EditorClosedMsg{Err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return views.EditorClosedMsg{Err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.summary.View()
	}
}
