// Package prompt asks the user yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// Confirmer asks a question and reads a single line answer.
type Confirmer struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
}

// NewConfirmerWithIO creates a Confirmer reading answers from in and
// writing questions to out.
func NewConfirmerWithIO(in io.Reader, out io.Writer, color bool) *Confirmer {
	return &Confirmer{in: bufio.NewReader(in), out: out, color: color}
}

// Confirm prints question and blocks until a line is read. Only "y" or
// "yes" in any case confirms; anything else, including a read error,
// declines.
func (c *Confirmer) Confirm(question string) bool {
	fmt.Fprintln(c.out, c.render(question))

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return IsYes(line)
}

// IsYes reports whether an answer means yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// render formats the question with its answer hint.
func (c *Confirmer) render(question string) string {
	hint := "(y/n)"
	if !c.color {
		return question + " " + hint
	}
	return questionStyle.Render(question) + " " + hintStyle.Render(hint)
}

// OverwriteQuestion is the question asked before replacing a saved
// configuration.
func OverwriteQuestion(name string) string {
	return fmt.Sprintf("There already exists a configuration %s\nOverwrite?", name)
}
