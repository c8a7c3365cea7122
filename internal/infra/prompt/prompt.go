// Package prompt asks the user for confirmation on the terminal.
package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/nh/internal/domain"
)

// Ensure Prompter implements domain.Prompter interface.
var _ domain.Prompter = (*Prompter)(nil)

// Prompter runs a small bubbletea program per question.
type Prompter struct {
	input  io.Reader
	output io.Writer
}

// NewPrompter creates a prompter on the process's stdin and stderr.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stderr)
}

// NewPrompterWithIO creates a prompter with custom streams.
func NewPrompterWithIO(input io.Reader, output io.Writer) *Prompter {
	return &Prompter{input: input, output: output}
}

// Confirm asks a yes/no question. Enter, n, esc and ctrl+c answer no.
func (p *Prompter) Confirm(question string) (bool, error) {
	prog := tea.NewProgram(
		newConfirmModel(question),
		tea.WithInput(p.input),
		tea.WithOutput(p.output),
	)
	final, err := prog.Run()
	if err != nil {
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	return ok && m.confirmed, nil
}

type keyMap struct {
	Yes key.Binding
	No  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "enter", "esc", "ctrl+c", "q"),
			key.WithHelp("n", "no"),
		),
	}
}

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

type confirmModel struct {
	question  string
	keys      keyMap
	done      bool
	confirmed bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{
		question: question,
		keys:     defaultKeyMap(),
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.done = true
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.confirmed {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", questionStyle.Render(m.question), answer)
	}
	return fmt.Sprintf("%s %s ", questionStyle.Render(m.question), hintStyle.Render("[y/N]"))
}
