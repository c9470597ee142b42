// Command seiz-tui runs one SEIZ simulation and renders the compartment
// dynamics live in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-seiz/pkg/config"
	"github.com/dd0wney/cluso-seiz/pkg/logging"
	"github.com/dd0wney/cluso-seiz/pkg/seiz"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	// Compartment colors follow the conventional SEIZ palette:
	// blue, orange, red, green.
	compartmentStyles = map[string]lipgloss.Style{
		"S": lipgloss.NewStyle().Foreground(lipgloss.Color("#1f77b4")),
		"E": lipgloss.NewStyle().Foreground(lipgloss.Color("#ff7f0e")),
		"I": lipgloss.NewStyle().Foreground(lipgloss.Color("#d62728")),
		"Z": lipgloss.NewStyle().Foreground(lipgloss.Color("#2ca02c")),
	}
)

const barWidth = 40

type stepMsg struct {
	rec seiz.HistoryRecord
}

type doneMsg struct {
	err error
}

type model struct {
	modelType string
	total     int
	nodes     int

	latest seiz.HistoryRecord
	steps  int
	prog   progress.Model
	done   bool
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case stepMsg:
		m.latest = msg.rec
		m.steps++
		cmd := m.prog.SetPercent(float64(m.steps) / float64(m.total))
		return m, cmd
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %d nodes", m.modelType, m.nodes)))
	b.WriteString("\n\n")

	rows := []struct {
		name  string
		count int
	}{
		{"S", m.latest.S},
		{"E", m.latest.E},
		{"I", m.latest.I},
		{"Z", m.latest.Z},
	}
	var stats strings.Builder
	stats.WriteString(fmt.Sprintf("step %d/%d\n\n", m.latest.Step, m.total))
	for _, row := range rows {
		style := compartmentStyles[row.name]
		filled := 0
		if m.nodes > 0 {
			filled = row.count * barWidth / m.nodes
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		stats.WriteString(fmt.Sprintf("%s %s %5d\n", style.Bold(true).Render(row.name), style.Render(bar), row.count))
	}
	b.WriteString(statsBoxStyle.Render(stats.String()))
	b.WriteString("\n")
	b.WriteString("  " + m.prog.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("run failed: %v", m.err)))
		b.WriteString("\n")
	} else if m.done {
		b.WriteString(helpStyle.Render("run complete — press q to quit"))
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render("running — press q to quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func main() {
	configPath := flag.String("config", "", "path to run configuration (YAML); defaults apply if omitted")
	delay := flag.Duration("delay", 50*time.Millisecond, "pause between steps, for watchability")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	g, err := cfg.BuildGraph()
	if err != nil {
		fmt.Fprintf(os.Stderr, "building graph: %v\n", err)
		os.Exit(1)
	}

	var program *tea.Program
	observer := func(rec seiz.HistoryRecord, _ []seiz.Compartment) {
		program.Send(stepMsg{rec: rec})
		if *delay > 0 {
			time.Sleep(*delay)
		}
	}

	sim, err := cfg.NewSimulator(g,
		seiz.WithLogger(logging.NewNopLogger()),
		seiz.WithStepObserver(observer),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building simulator: %v\n", err)
		os.Exit(1)
	}

	m := model{
		modelType: sim.ModelType(),
		total:     cfg.Run.Steps,
		nodes:     g.NumNodes(),
		prog:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth+8)),
	}
	program = tea.NewProgram(m)

	go func() {
		if err := sim.InitializeStates(cfg.Run.InfectedFrac, cfg.Run.SkepticFrac, cfg.Run.Seed); err != nil {
			program.Send(doneMsg{err: err})
			return
		}
		_, err := sim.Run(context.Background(), cfg.Run.Steps)
		program.Send(doneMsg{err: err})
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
