package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/lifesim/internal/session"
)

// StartFunc builds the session for a menu choice.
type StartFunc func(preset string) (*session.Session, error)

var presetInfo = map[string]string{
	"blank":       "empty board, sketch your own",
	"soup":        "random fill",
	"gliders":     "a fleet of gliders",
	"oscillators": "blinkers, pulsar, pentadecathlon",
	"gun":         "gosper glider gun",
}

const (
	stateMenu = iota
	stateSim
)

// Menu lets the user pick a preset before handing over to a Model.
type Menu struct {
	state   int
	cursor  int
	choices []string
	start   StartFunc
	theme   string
	st      styles
	err     error
	live    Model
}

// NewMenu lists "blank" followed by presets.
func NewMenu(presets []string, theme string, start StartFunc) Menu {
	return Menu{
		state:   stateMenu,
		choices: append([]string{"blank"}, presets...),
		start:   start,
		theme:   theme,
		st:      newStyles(GetTheme(theme)),
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter", " ":
		name := m.choices[m.cursor]
		sess, err := m.start(name)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live = NewModel(sess, name, m.theme)
		m.state = stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + m.st.header.Render("LIFESIM") + "\n")
	b.WriteString("    " + m.st.subtle.Render("conway's game of life") + "\n")
	b.WriteString("    " + m.st.subtle.Render(Separator(25)) + "\n\n")
	for i, name := range m.choices {
		line := fmt.Sprintf("%-14s %s", name, presetInfo[name])
		if i == m.cursor {
			b.WriteString("    " + m.st.selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("      " + m.st.subtle.Render(line) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + m.st.stopped.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + m.st.help.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// Running reports whether a preset has been chosen.
func (m Menu) Running() bool { return m.state == stateSim }

// RunInteractive runs m full screen with mouse support until the user quits.
func RunInteractive(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
