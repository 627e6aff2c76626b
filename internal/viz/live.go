package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/place"
	"github.com/san-kum/lifesim/internal/session"
)

const (
	chartWidth  = 30
	chartHeight = 5
	// canvasStyle padding puts the first braille char at this offset.
	canvasLeft = 2
	canvasTop  = 1
)

type TickMsg time.Time

// Model is the Bubble Tea front end of a Session.
type Model struct {
	sess     *session.Session
	title    string
	canvas   *Canvas
	theme    Theme
	st       styles
	cursor   life.Point
	selected int
	names    []string
	frame    int
	showHelp bool
	status   string
}

// NewModel builds a model over sess. title is shown in the header.
func NewModel(sess *session.Session, title, theme string) Model {
	g := sess.Grid()
	t := GetTheme(theme)
	m := Model{
		sess:   sess,
		title:  title,
		canvas: CanvasFor(g.Width(), g.Height()),
		theme:  t,
		st:     newStyles(t),
		cursor: life.Point{Row: g.Height() / 2, Col: g.Width() / 2},
	}
	if cat := sess.Catalog(); cat != nil {
		m.names = cat.Names()
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.sess.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session { return m.sess }

// Cursor returns the cell the keyboard cursor is on.
func (m Model) Cursor() life.Point { return m.cursor }

// Selected returns the name of the pattern the palette points at.
func (m Model) Selected() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.selected]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.sess.Tick()
		m.frame++
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.sess.Toggle()
	case "n":
		m.sess.SingleStep()
	case "c":
		m.sess.Clear()
	case "r":
		m.sess.Randomize()
	case "o":
		m.sess.RotateAll()
	case "tab":
		if len(m.names) > 0 {
			m.selected = (m.selected + 1) % len(m.names)
		}
	case "shift+tab":
		if len(m.names) > 0 {
			m.selected = (m.selected + len(m.names) - 1) % len(m.names)
		}
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "enter":
		m.report(m.sess.Sketch(m.cursor.Row, m.cursor.Col))
	case "x":
		m.report(m.sess.ToggleCell(m.cursor.Row, m.cursor.Col))
	case "p":
		m.report(m.sess.Place(m.Selected(), m.cursor.Row, m.cursor.Col))
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) moveCursor(dr, dc int) {
	g := m.sess.Grid()
	m.cursor.Row, m.cursor.Col = g.Wrap(m.cursor.Row+dr, m.cursor.Col+dc)
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// handleMouse maps terminal cells onto braille dots: a character is two
// dots wide and four tall, so a click resolves to the top-left dot of the
// character under the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	x := float64((msg.X - canvasLeft) * 2)
	y := float64((msg.Y - canvasTop) * 4)

	switch {
	case msg.Button == tea.MouseButtonLeft &&
		(msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion):
		row, col := place.CellAt(x, y, 1)
		if err := m.sess.Sketch(row, col); err == nil {
			m.cursor = life.Point{Row: row, Col: col}
		}
	case msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress:
		row, col := place.DropOrigin(m.sess.Grid(), x, y, 1)
		m.report(m.sess.Place(m.Selected(), row, col))
	}
}

func (m Model) View() string {
	g := m.sess.Grid()
	m.canvas.DrawCells(g)
	if m.frame/4%2 == 0 {
		m.canvas.Flip(m.cursor.Col, m.cursor.Row)
	}
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.st.canvas.Render(m.canvas.String()),
		m.st.stats.Render(m.statsView(g)),
	)
	if m.showHelp {
		return m.st.overlay.Render(helpText) + "\n" + mainView
	}
	return mainView
}

func (m Model) statsView(g *life.Grid) string {
	var s strings.Builder
	s.WriteString(m.st.header.Render(strings.ToUpper(m.title)) + "\n")

	if m.sess.State() == session.Running {
		s.WriteString(m.st.running.Render("RUNNING") + "\n")
	} else {
		s.WriteString(m.st.stopped.Render("PAUSED") + "\n")
	}

	if hist := m.sess.History(); len(hist) > 1 {
		series := make([]float64, len(hist))
		for i, p := range hist {
			series[i] = float64(p)
		}
		chart := asciigraph.Plot(series,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("Population"))
		s.WriteString(m.st.graph.Render(chart) + "\n")
	}

	metrics := m.sess.Metrics()
	m.row(&s, "Generation", fmt.Sprintf("%d", m.sess.Generation()))
	m.row(&s, "Population", fmt.Sprintf("%d (peak %.0f)", g.Population(), metrics["peak_population"]))
	m.row(&s, "Density", ProgressBar(metrics["density"], 10)+fmt.Sprintf(" %.1f%%", metrics["density"]*100))
	m.row(&s, "Churn", fmt.Sprintf("%.0f", metrics["churn"]))
	period := "-"
	if p := metrics["period"]; p > 0 {
		period = fmt.Sprintf("%.0f", p)
	}
	m.row(&s, "Period", period)
	m.row(&s, "Cursor", fmt.Sprintf("%d,%d", m.cursor.Row, m.cursor.Col))

	s.WriteString("\n" + m.st.subtle.Render(Separator(36)) + "\n")
	s.WriteString(m.paletteView())

	if m.status != "" {
		s.WriteString("\n" + m.st.stopped.Render(m.status) + "\n")
	}
	s.WriteString(m.st.help.Render("SP:Play N:Step C:Clear R:Random\nTAB:Pattern P:Place O:Rotate ?:Help"))
	return s.String()
}

func (m Model) row(s *strings.Builder, label, value string) {
	s.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
}

func (m Model) paletteView() string {
	cat := m.sess.Catalog()
	if cat == nil {
		return ""
	}
	var s strings.Builder
	var current pattern.Entry
	for i, e := range cat.Entries() {
		line := fmt.Sprintf("%-24s %s", e.Title, e.Kind)
		if i == m.selected {
			current = e
			s.WriteString(m.st.selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + kindStyle(e.Kind.Colour()).Render(line) + "\n")
		}
	}
	if current.Pattern != nil {
		sq := current.Pattern.Square()
		preview := CanvasFor(sq.Width(), sq.Height())
		preview.DrawCells(sq)
		s.WriteString("\n" + kindStyle(current.Kind.Colour()).Render(preview.String()) + "\n")
	}
	return s.String()
}

const helpText = `KEYBOARD SHORTCUTS
Space      Play / pause
N          Single step
C          Clear
R          Randomize
O          Rotate all patterns
Tab        Next pattern (Shift+Tab previous)
Arrows     Move cursor (hjkl)
Enter      Bring cell to life
X          Toggle cell
P          Place pattern at cursor
T          Cycle themes
?          Toggle this help
Q          Quit

Left mouse sketches, right click places the pattern.`
