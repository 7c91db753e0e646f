package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ruinwalk/internal/analysis"
	"github.com/san-kum/ruinwalk/internal/walk"
)

const historyCapacity = 600

type TickMsg time.Time

// Model drives the live terminal view: one session, advanced by a
// fixed chunk of steps per tick, with the absorption mass history
// plotted alongside the current distribution.
type Model struct {
	session   *walk.Session
	goal      int
	start     int
	winProb   float64
	stepSize  int
	frameRate int

	running  bool
	showHelp bool

	ruinHist []float64
	goalHist []float64
}

// NewModel resets a fresh session with the given parameters. stepSize
// is how many chain steps each frame advances.
func NewModel(goal, start int, p float64, stepSize, frameRate int) Model {
	if stepSize < 1 {
		stepSize = 1
	}
	if frameRate < 1 {
		frameRate = 10
	}

	s := walk.NewSession()
	s.Reset(goal, start, p)

	m := Model{
		session:   s,
		goal:      s.Goal(),
		start:     s.Start(),
		winProb:   s.WinProbability(),
		stepSize:  stepSize,
		frameRate: frameRate,
		running:   true,
		ruinHist:  make([]float64, 0, historyCapacity),
		goalHist:  make([]float64, 0, historyCapacity),
	}
	m.record()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			m.step()
		case "r":
			m.reset()
		case "+", "=":
			m.stepSize *= 2
		case "-", "_":
			if m.stepSize > 1 {
				m.stepSize /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.session.Advance(m.stepSize); err != nil {
		return
	}
	m.record()
}

func (m *Model) reset() {
	m.session.Reset(m.goal, m.start, m.winProb)
	m.ruinHist = m.ruinHist[:0]
	m.goalHist = m.goalHist[:0]
	m.record()
}

func (m *Model) record() {
	d := m.session.Distribution()
	m.ruinHist = append(m.ruinHist, d[0])
	m.goalHist = append(m.goalHist, d[len(d)-1])
	if len(m.ruinHist) > historyCapacity {
		m.ruinHist = m.ruinHist[1:]
		m.goalHist = m.goalHist[1:]
	}
}

func (m Model) View() string {
	d := m.session.Distribution()
	last := len(d) - 1

	barsView := DistributionBars(d, defaultBarWidth)

	var s strings.Builder
	s.WriteString(headerStyle.Render("GAMBLER'S RUIN") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.session.StepCount())) + "\n")
	s.WriteString(labelStyle.Render("Chunk") + valueStyle.Render(fmt.Sprintf("%d steps/frame", m.stepSize)) + "\n")
	s.WriteString(labelStyle.Render("Win prob") + valueStyle.Render(FormatNum(m.winProb)) + "\n\n")

	s.WriteString(labelStyle.Render("Ruin") + ruinStyle.Render(FormatNum(d[0])) + "\n")
	s.WriteString(labelStyle.Render("Goal") + goalStyle.Render(FormatNum(d[last])) + "\n")
	s.WriteString(labelStyle.Render("Theory ruin") + valueStyle.Render(FormatNum(analysis.RuinProbability(m.goal, m.start, m.winProb))) + "\n")
	s.WriteString(labelStyle.Render("Theory goal") + valueStyle.Render(FormatNum(analysis.GoalProbability(m.goal, m.start, m.winProb))) + "\n")
	s.WriteString(labelStyle.Render("E[duration]") + valueStyle.Render(FormatNum(analysis.ExpectedDuration(m.goal, m.start, m.winProb))) + "\n")

	if len(m.ruinHist) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.ruinHist, m.goalHist},
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.Caption("absorption mass"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause S:Step R:Reset +/-:Chunk Q:Quit ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, barsView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  S        - Advance one chunk        ║
║  R        - Reset the session        ║
║  + / -    - Double/halve chunk size  ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
