package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/render"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

type runItem struct {
	ref domain.InvocationRef
}

func (i runItem) Title() string { return i.ref.Person }
func (i runItem) Description() string {
	return fmt.Sprintf("%s  %s", i.ref.StartedAt.UTC().Format(time.RFC3339), i.ref.ID)
}
func (i runItem) FilterValue() string { return i.ref.Person }

type model struct {
	theme Theme
	deps  Deps

	scr  screen
	runs list.Model

	detailID string
	detail   string

	loadErr error

	width  int
	height int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "nataly — saved invocations"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenList,
		runs:  l,
	}
}

func (m model) Init() tea.Cmd {
	return loadInvocationsCmd(m.deps.Store)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runs.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case invocationsLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			if m.deps.Logger != nil {
				m.deps.Logger.Error("tui.load_invocations", "err", msg.err)
			}
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, runItem{ref: r})
		}
		m.runs.SetItems(items)
		return m, nil

	case invocationDetailMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		var b strings.Builder
		render.Text(&b, msg.art.Summary)
		m.detailID = msg.id
		m.detail = b.String()
		m.scr = screenDetail
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.runs, cmd = m.runs.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.scr == screenDetail {
			m.scr = screenList
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		if m.scr == screenDetail {
			m.scr = screenList
			return m, nil
		}

	case "enter":
		if m.scr == screenList {
			if item, ok := m.runs.SelectedItem().(runItem); ok {
				return m, loadDetailCmd(m.deps.Store, item.ref.ID)
			}
		}

	case "r":
		if m.scr == screenList {
			return m, loadInvocationsCmd(m.deps.Store)
		}
	}

	var cmd tea.Cmd
	m.runs, cmd = m.runs.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.loadErr != nil {
		return m.theme.Card.Render(fmt.Sprintf("error: %v\n\npress q to quit", m.loadErr))
	}

	switch m.scr {
	case screenDetail:
		header := m.theme.Title.Render(m.detailID)
		help := m.theme.Help.Render("esc back · q list")
		return fmt.Sprintf("%s\n\n%s\n%s", header, m.detail, help)
	default:
		if len(m.runs.Items()) == 0 {
			empty := m.theme.Subtitle.Render("(no saved invocations — run a chart first)")
			return fmt.Sprintf("%s\n\n%s", m.runs.View(), empty)
		}
		help := m.theme.Help.Render("enter view · r reload · q quit")
		return fmt.Sprintf("%s\n%s", m.runs.View(), help)
	}
}
