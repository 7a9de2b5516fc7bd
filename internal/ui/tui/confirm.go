package tui

import (
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

type confirmModel struct {
	theme    Theme
	preview  Preview
	accepted bool
	done     bool
}

func newConfirmModel(p Preview) confirmModel {
	return confirmModel{theme: DefaultTheme(), preview: p}
}

func (m confirmModel) Init() tea.Cmd { return nil }

// inputClosedMsg arrives when the answer stream ends without y or n.
type inputClosedMsg struct{}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(inputClosedMsg); ok {
		if m.done {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		m.accepted = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "esc", "q", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	body := m.theme.Card.Render(m.preview.Render(m.theme, 100))
	return lipgloss.NewStyle().Padding(0, 1).Render(body + "\n" + m.theme.Help.Render("Write these changes? [y/N]")) + "\n"
}

// Confirm shows the preview and asks for a yes/no answer on in/out. Input
// that ends without an answer declines.
func Confirm(p Preview, in io.Reader, out io.Writer) (bool, error) {
	var prog *tea.Program
	input := in
	// A terminal is handed over as-is so bubbletea can switch it to raw mode.
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(f.Fd()) {
		input = &eofReader{r: in, onEOF: func() { prog.Send(inputClosedMsg{}) }}
	}
	prog = tea.NewProgram(newConfirmModel(p), tea.WithInput(input), tea.WithOutput(out))
	final, err := prog.Run()
	if err != nil {
		return false, err
	}
	cm, ok := final.(confirmModel)
	return ok && cm.accepted, nil
}

// eofReader calls onEOF once, after the underlying reader is drained.
type eofReader struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) {
		e.once.Do(func() { go e.onEOF() })
	}
	return n, err
}
