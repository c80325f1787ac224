package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when no editor or pager can be found
var ErrNoEditor = errors.New("no editor found: set $EDITOR or $PAGER")

// fallbacks are tried in order when no environment variable is set
var fallbacks = []string{"less", "more", "nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates an opener that reads the process environment
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// Command returns an exec.Cmd showing path, wired to the current terminal
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.find()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// find returns the program and its arguments. $EDITOR and friends may carry
// flags, e.g. "code --wait".
func (o *Opener) find() []string {
	for _, env := range []string{"EDITOR", "VISUAL", "PAGER"} {
		if fields := strings.Fields(o.getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, name := range fallbacks {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}

	return nil
}
