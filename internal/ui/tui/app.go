package tui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/r-leyton/linepatch/internal/domain"
)

type screen int

const (
	screenPlans screen = iota
	screenPreview
	screenDone
)

type planItem struct {
	ref  domain.PlanRef
	desc string
}

func (p planItem) Title() string       { return p.ref.Name }
func (p planItem) Description() string { return p.desc }
func (p planItem) FilterValue() string { return p.ref.Name }

type model struct {
	theme Theme
	deps  Deps

	scr   screen
	plans list.Model
	width int

	busy    bool
	active  domain.PlanRef
	preview Preview
	result  domain.PatchResult
	recID   string
	toast   string
}

// Run starts the plan picker.
func Run(deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Plans"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenPlans,
		plans: l,
		width: 80,
		busy:  true,
	}
}

func (m model) Init() tea.Cmd { return cmdLoadPlans(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.plans.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case plansLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, planItem{ref: r, desc: r.Path})
		}
		return m, m.plans.SetItems(items)

	case previewReadyMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.scr = screenPreview
		m.active = msg.ref
		m.preview = msg.preview
		m.toast = ""
		return m, nil

	case applyDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.scr = screenPreview
			return m, nil
		}
		m.scr = screenDone
		m.result = msg.res
		m.recID = msg.id
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		if m.scr == screenPlans && m.plans.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenPlans {
				return m, tea.Quit
			}
			m.scr = screenPlans
			return m, nil

		case "enter":
			if m.scr == screenPlans && !m.busy {
				it, ok := m.plans.SelectedItem().(planItem)
				if !ok {
					return m, nil
				}
				m.busy = true
				return m, cmdPreviewPlan(m.deps, it.ref)
			}

		case "y":
			if m.scr == screenPreview && !m.busy {
				m.busy = true
				return m, cmdApplyPlan(m.deps, m.active)
			}

		case "n", "esc", "b":
			if m.scr != screenPlans {
				m.scr = screenPlans
				m.toast = ""
				return m, cmdLoadPlans(m.deps)
			}
		}
	}

	if m.scr == screenPlans {
		var cmd tea.Cmd
		m.plans, cmd = m.plans.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("linepatch") + "\n" +
		m.theme.Subtitle.Render("Workspace: "+m.deps.Root) + "\n"

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Error.Render(m.toast) + "\n"
	}

	switch m.scr {
	case screenPlans:
		help := m.theme.Help.Render("↑/↓ navigate • enter preview • / search • q quit")
		return wrap.Render(header + toast + "\n" + m.theme.Card.Render(m.plans.View()) + "\n" + help)

	case screenPreview:
		help := m.theme.Help.Render("y apply • n/esc back • ctrl+c quit")
		return wrap.Render(header + toast + "\n" + m.theme.Card.Render(m.preview.Render(m.theme, m.width)) + "\n" + help)

	case screenDone:
		body := fmt.Sprintf("%s\n\n%s", m.theme.Title.Render("File updated successfully!"), m.result.Path)
		for _, a := range m.result.Applied {
			body += fmt.Sprintf("\nLine %d: %s", a.LineNumber(), a.Trimmed())
		}
		if m.recID != "" {
			body += "\n\n" + m.theme.Help.Render("Recorded as "+m.recID)
		}
		help := m.theme.Help.Render("esc/b back • ctrl+c quit")
		return wrap.Render(header + "\n" + m.theme.Card.Render(body) + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
