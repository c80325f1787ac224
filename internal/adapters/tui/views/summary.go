package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"chatstats/internal/adapters/tui/styles"
	"chatstats/internal/application"
	"chatstats/internal/application/commands"
	"chatstats/internal/ports"
)

const (
	progressBuffer   = 256
	maxProgressBatch = 512
	// rows taken by everything around the log pane
	chromeHeight = 16
	minLogHeight = 5
)

// SummaryKeyMap defines key bindings for the summary view
type SummaryKeyMap struct {
	Process     key.Binding
	Focus       key.Binding
	ToggleDebug key.Binding
	Copy        key.Binding
	OpenLog     key.Binding
	Dismiss     key.Binding
	Help        key.Binding
	Quit        key.Binding
	// Only active while the log pane has focus
	LogHelp key.Binding
	LogQuit key.Binding
}

var SummaryKeys = SummaryKeyMap{
	Process: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "process"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "folder/log"),
	),
	ToggleDebug: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "debug info"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy summary"),
	),
	OpenLog: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open log file"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc", "enter"),
		key.WithHelp("esc", "ok"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("?/f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	LogHelp: key.NewBinding(
		key.WithKeys("?"),
	),
	LogQuit: key.NewBinding(
		key.WithKeys("q"),
	),
}

type summaryFocus int

const (
	focusFolder summaryFocus = iota
	focusLog
)

// SummaryOptions configures a SummaryModel
type SummaryOptions struct {
	ExportRoot string
	Debug      bool
	Years      application.YearRange
	Logger     zerolog.Logger
	LogPath    string // Diagnostic log file, empty when logging is off
	// OpenExport builds the reader for a folder; tests swap it for fakes
	OpenExport func(root string) ports.ExportReader
}

// SummaryModel is the main window: folder input, debug toggle and log
type SummaryModel struct {
	ViewState
	opts SummaryOptions

	folder  textinput.Model
	log     viewport.Model
	spinner spinner.Model
	focus   summaryFocus

	debug   bool
	lines   []string
	run     *summaryRun
	report  string
	running bool
}

type summaryRun struct {
	lines  chan string
	done   chan SummaryFinishedMsg
	cancel context.CancelFunc
}

// SummaryProgressMsg carries log lines produced by a running summary
type SummaryProgressMsg struct {
	Lines []string
}

// SummaryFinishedMsg is sent once a summary run returns
type SummaryFinishedMsg struct {
	Result *commands.SummarizeResult
	Err    error
}

// OpenFileMsg asks the app to show a file in the user's editor
type OpenFileMsg struct {
	Path string
}

// EditorClosedMsg reports that the editor launched for OpenFileMsg exited
type EditorClosedMsg struct {
	Err error
}

// NewSummaryModel creates the summary view
func NewSummaryModel(opts SummaryOptions) *SummaryModel {
	input := textinput.New()
	input.Placeholder = "Path to the unzipped Discord data package"
	input.Prompt = ""
	input.SetValue(opts.ExportRoot)
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &SummaryModel{
		opts:    opts,
		folder:  input,
		log:     viewport.New(0, minLogHeight),
		spinner: s,
		debug:   opts.Debug,
	}
}

// Init initializes the summary view
func (m *SummaryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Running reports whether a summary is in progress
func (m *SummaryModel) Running() bool {
	return m.running
}

// Debug reports whether the extra debug listing is enabled
func (m *SummaryModel) Debug() bool {
	return m.debug
}

// Lines returns the log lines shown so far
func (m *SummaryModel) Lines() []string {
	return m.lines
}

// Report returns the text of the last completed summary
func (m *SummaryModel) Report() string {
	return m.report
}

// SetSize updates the view dimensions and resizes the log pane
func (m *SummaryModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.folder.Width = max(width-10, 10)
	m.log.Width = max(width-6, 10)
	m.log.Height = max(height-chromeHeight, minLogHeight)
	m.refreshLog()
}

// Update handles messages for the summary view
func (m *SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SummaryProgressMsg:
		m.lines = append(m.lines, msg.Lines...)
		m.refreshLog()
		return m, m.waitForProgress()

	case SummaryFinishedMsg:
		m.finish(msg)
		return m, nil

	case EditorClosedMsg:
		if msg.Err != nil {
			m.SetMessage("Could not open log: "+msg.Err.Error(), true)
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.focus == focusFolder {
		var cmd tea.Cmd
		m.folder, cmd = m.folder.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SummaryModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, SummaryKeys.Quit) {
		return m, m.quit()
	}

	if m.HasAlert() {
		if key.Matches(msg, SummaryKeys.Dismiss) {
			m.DismissAlert()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, SummaryKeys.Focus):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, SummaryKeys.ToggleDebug):
		m.debug = !m.debug
		return m, nil
	case key.Matches(msg, SummaryKeys.Copy):
		m.copyReport()
		return m, nil
	case key.Matches(msg, SummaryKeys.OpenLog):
		return m, m.openLog()
	case key.Matches(msg, SummaryKeys.Help):
		return m, switchToHelp
	case key.Matches(msg, SummaryKeys.Process):
		if m.running {
			return m, nil
		}
		return m, m.startProcessing()
	}

	if m.focus == focusLog {
		switch {
		case key.Matches(msg, SummaryKeys.LogQuit):
			return m, m.quit()
		case key.Matches(msg, SummaryKeys.LogHelp):
			return m, switchToHelp
		}
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.folder, cmd = m.folder.Update(msg)
	return m, cmd
}

func switchToHelp() tea.Msg {
	return SwitchToHelpMsg{}
}

func (m *SummaryModel) toggleFocus() {
	if m.focus == focusFolder {
		m.focus = focusLog
		m.folder.Blur()
		return
	}
	m.focus = focusFolder
	m.folder.Focus()
}

func (m *SummaryModel) quit() tea.Cmd {
	if m.run != nil {
		m.run.cancel()
	}
	return tea.Quit
}

// startProcessing checks the folder and launches a summary run.
// A rejected folder leaves the current log untouched.
func (m *SummaryModel) startProcessing() tea.Cmd {
	root := strings.TrimSpace(m.folder.Value())
	if root == "" {
		m.SetAlert(application.UserMessage(application.ErrNoExportRoot))
		return nil
	}

	reader := m.opts.OpenExport(root)
	if !reader.HasIndex() {
		m.SetAlert(application.UserMessage(application.ErrExportNotFound))
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	run := &summaryRun{
		lines:  make(chan string, progressBuffer),
		done:   make(chan SummaryFinishedMsg, 1),
		cancel: cancel,
	}
	command := commands.NewSummarizeCommand(reader, m.opts.Years, m.debug, ports.ProgressChan(run.lines)).
		WithLogger(m.opts.Logger)

	go func() {
		result, err := command.Execute(ctx)
		close(run.lines)
		run.done <- SummaryFinishedMsg{Result: result, Err: err}
	}()

	m.run = run
	m.running = true
	m.lines = nil
	m.report = ""
	m.ClearMessage()
	m.refreshLog()

	return tea.Batch(m.spinner.Tick, m.waitForProgress())
}

// waitForProgress reads the next batch of lines, or the final result once
// the run has closed its line channel.
func (m *SummaryModel) waitForProgress() tea.Cmd {
	run := m.run
	if run == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-run.lines
		if !ok {
			return <-run.done
		}
		batch := []string{line}
		for len(batch) < maxProgressBatch {
			select {
			case line, ok := <-run.lines:
				if !ok {
					return SummaryProgressMsg{Lines: batch}
				}
				batch = append(batch, line)
			default:
				return SummaryProgressMsg{Lines: batch}
			}
		}
		return SummaryProgressMsg{Lines: batch}
	}
}

func (m *SummaryModel) finish(msg SummaryFinishedMsg) {
	if m.run != nil {
		m.run.cancel()
	}
	m.run = nil
	m.running = false

	if msg.Err != nil {
		if application.KindOf(msg.Err) == application.KindCanceled {
			m.SetMessage("Processing canceled", true)
			return
		}
		m.opts.Logger.Error().Err(msg.Err).Str("kind", application.KindOf(msg.Err).String()).Msg("summary failed")
		m.SetAlert(application.UserMessage(msg.Err))
		return
	}

	m.report = msg.Result.Report.String()
	m.SetMessage("Processed "+pluralize(len(msg.Result.Channels), "channel"), false)
}

func (m *SummaryModel) copyReport() {
	if m.report == "" {
		m.SetMessage("Nothing to copy yet", true)
		return
	}
	if err := clipboard.WriteAll(m.report); err != nil {
		m.SetMessage("Copy failed: "+err.Error(), true)
		return
	}
	m.SetMessage("Summary copied to clipboard", false)
}

func (m *SummaryModel) openLog() tea.Cmd {
	if m.opts.LogPath == "" {
		m.SetMessage("Logging to file is disabled", true)
		return nil
	}
	path := m.opts.LogPath
	return func() tea.Msg {
		return OpenFileMsg{Path: path}
	}
}

func (m *SummaryModel) refreshLog() {
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

// View renders the summary view
func (m *SummaryModel) View() string {
	v := NewViewBuilder()
	v.Title("Discord Data Summarizer")
	v.Subtitle("Message totals per year and the most active channels, " + m.opts.Years.String())

	v.Line(styles.InputLabel.Render("Export folder"))
	inputStyle := styles.InputField
	if m.focus == focusFolder {
		inputStyle = styles.InputFocused
	}
	v.Line(inputStyle.Render(m.folder.View()))
	v.Line(RenderCheckbox("Show extra debug info", m.debug))
	v.BlankLine()

	logStyle := styles.LogBox
	if m.focus == focusLog {
		logStyle = styles.LogBoxFocused
	}
	if m.HasAlert() {
		v.Line(RenderAlert(m.Alert, SummaryKeys.Dismiss))
	} else {
		v.Line(logStyle.Render(m.log.View()))
	}

	switch {
	case m.running:
		v.Line(m.spinner.View() + " " + styles.MutedText.Render("Processing messages..."))
	case m.Message != "":
		v.Message(m.Message, m.MessageErr)
	default:
		v.BlankLine()
	}

	v.Help(
		SummaryKeys.Process,
		SummaryKeys.Focus,
		SummaryKeys.ToggleDebug,
		SummaryKeys.Copy,
		SummaryKeys.Help,
		SummaryKeys.Quit,
	)

	return v.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
