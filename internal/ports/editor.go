package ports

import "os/exec"

// EditorOpener builds the command that shows a file in the user's editor or pager.
// The TUI hands the command to bubbletea so the terminal is released while it runs.
type EditorOpener interface {
	Command(path string) (*exec.Cmd, error)
}
