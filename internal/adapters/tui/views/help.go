package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chatstats/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?", "f1"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToSummaryMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Chat Stats Help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Yearly message counts from a Discord data export"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Processing"))
	b.WriteString("\n")
	b.WriteString(helpLine("Enter", "Process the selected folder"))
	b.WriteString(helpLine("Tab", "Switch between folder and log"))
	b.WriteString(helpLine("Ctrl+T", "Toggle extra debug info"))
	b.WriteString(helpLine("Ctrl+Y", "Copy the last summary"))
	b.WriteString(helpLine("Ctrl+O", "Open the diagnostic log file"))
	b.WriteString(helpLine("Esc", "Dismiss an alert"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Log"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Scroll one line"))
	b.WriteString(helpLine("PgUp / PgDn", "Scroll one page"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("? / F1", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Export layout"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  <folder>/messages/index.json"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  <folder>/messages/_<channel id>/messages.json"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
