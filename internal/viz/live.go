package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/latticeflow/internal/lattice"
)

const (
	fieldCols     = 80
	fieldRows     = 24
	sparklineLen  = 120
	stepsPerFrame = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	fieldStyle  = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the simulation at a frame rate and renders the speed
// field with a live average-velocity sparkline.
type Model struct {
	params  lattice.Params
	mask    *lattice.Mask
	cells   *lattice.Grid
	scratch *lattice.Grid
	threads int
	fps     int

	step    int
	avVels  []float64
	running bool
}

func NewModel(p lattice.Params, mask *lattice.Mask, threads, fps int) (Model, error) {
	cells, err := lattice.NewGrid(p.Nx, p.Ny, p.Density)
	if err != nil {
		return Model{}, err
	}
	scratch, err := lattice.NewEmptyGrid(p.Nx, p.Ny)
	if err != nil {
		return Model{}, err
	}

	if fps <= 0 {
		fps = 30
	}

	return Model{
		params:  p,
		mask:    mask,
		cells:   cells,
		scratch: scratch,
		threads: threads,
		fps:     fps,
		avVels:  make([]float64, 0, p.MaxIters),
		running: true,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
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
		case "r":
			m.cells.SetEquilibrium(m.params.Density)
			m.step = 0
			m.avVels = m.avVels[:0]
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && m.step < m.params.MaxIters {
			for i := 0; i < stepsPerFrame && m.step < m.params.MaxIters; i++ {
				lattice.AccelerateFlow(m.cells, m.mask, m.params.Density, m.params.Accel)
				av := lattice.StreamCollideParallel(m.cells, m.scratch, m.mask, m.params.Omega, m.threads)
				m.cells, m.scratch = m.scratch, m.cells
				m.avVels = append(m.avVels, av)
				m.step++
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("latticeflow %dx%d  omega=%.3f  accel=%.4f",
		m.params.Nx, m.params.Ny, m.params.Omega, m.params.Accel))

	field := fieldStyle.Render(RenderField(m.cells, m.mask, fieldCols, fieldRows))

	avVel := 0.0
	if len(m.avVels) > 0 {
		avVel = m.avVels[len(m.avVels)-1]
	}

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.step >= m.params.MaxIters {
		status = "done"
	}

	stats := statsStyle.Render(
		labelStyle.Render("status") + valueStyle.Render(status) + "\n" +
			labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.params.MaxIters)) + "\n" +
			labelStyle.Render("av velocity") + valueStyle.Render(fmt.Sprintf("%.6E", avVel)) + "\n" +
			labelStyle.Render("tot density") + valueStyle.Render(fmt.Sprintf("%.6E", lattice.TotalDensity(m.cells))) + "\n" +
			labelStyle.Render("reynolds") + valueStyle.Render(fmt.Sprintf("%.4f",
			lattice.Reynolds(m.cells, m.mask, m.params.Omega, m.params.ReynoldsDim))),
	)

	var graph string
	if len(m.avVels) > 1 {
		data := m.avVels
		if len(data) > sparklineLen {
			data = data[len(data)-sparklineLen:]
		}
		graph = graphStyle.Render(asciigraph.Plot(data,
			asciigraph.Height(6),
			asciigraph.Width(fieldCols),
			asciigraph.Caption("average velocity"),
		))
	}

	help := helpStyle.Render("space: pause/resume  r: reset  q: quit")

	body := lipgloss.JoinHorizontal(lipgloss.Top, field, stats)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, graph, help)
}
