// SPDX-License-Identifier: MIT
//
// Package tui is an interactive explorer for dilution schedules. It shows the
// rounds for the current width and spacing and traces one input value through
// them.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"bitpat/internal/render"
	"bitpat/pkg/bitint"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)
)

var formats = []string{render.Binary, render.Hex, render.Decimal}

type keyMap struct {
	Narrow  key.Binding
	Widen   key.Binding
	Denser  key.Binding
	Sparser key.Binding
	Inc     key.Binding
	Dec     key.Binding
	Shift   key.Binding
	Format  key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Narrow, k.Widen, k.Sparser, k.Denser, k.Inc, k.Dec, k.Shift, k.Format, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		Narrow:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "width-")),
		Widen:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "width+")),
		Sparser: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "spacing+")),
		Denser:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "spacing-")),
		Inc:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "x+1")),
		Dec:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "x-1")),
		Shift:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "x<<1|1")),
		Format:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "format")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Explorer is the Bubble Tea model of the schedule explorer.
type Explorer struct {
	out     io.Writer
	width   uint
	spacing uint
	input   uint64
	format  int

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	ready    bool
}

// NewExplorer starts at the given geometry and input. Values are colored as
// far as out supports it.
func NewExplorer(out io.Writer, width, spacing uint, input uint64, format string) Explorer {
	m := Explorer{
		out:     out,
		width:   min(max(width, 1), bitint.MaxWidth),
		spacing: spacing,
		input:   input,
		keys:    defaultKeys(),
		help:    help.New(),
	}
	for i, f := range formats {
		if f == format {
			m.format = i
		}
	}
	m.spacing = min(m.spacing, m.width)
	m.input &= bitint.Ones[uint64](m.width)
	return m
}

// Init implements tea.Model.
func (m Explorer) Init() tea.Cmd {
	return nil
}

// Update handles input and updates the model.
func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(m.Content())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Narrow):
			if m.width > 1 {
				m.width--
				m.spacing = min(m.spacing, m.width)
			}
		case key.Matches(msg, m.keys.Widen):
			if m.width < bitint.MaxWidth {
				m.width++
			}
		case key.Matches(msg, m.keys.Sparser):
			// Spacing at the width already leaves room for one bit.
			if m.spacing < m.width {
				m.spacing++
			}
		case key.Matches(msg, m.keys.Denser):
			if m.spacing > 0 {
				m.spacing--
			}
		case key.Matches(msg, m.keys.Inc):
			m.input++
		case key.Matches(msg, m.keys.Dec):
			m.input--
		case key.Matches(msg, m.keys.Shift):
			m.input = m.input<<1 | 1
		case key.Matches(msg, m.keys.Format):
			m.format = (m.format + 1) % len(formats)
		}
		m.input &= bitint.Ones[uint64](m.width)
		if m.ready {
			m.viewport.SetContent(m.Content())
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m Explorer) View() string {
	if !m.ready {
		return "Initializing..."
	}
	title := titleStyle.Render("Dilution Schedule Explorer")
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), m.help.View(m.keys))
}

// Content renders the schedule for the current geometry followed by the
// trace of the current input.
func (m Explorer) Content() string {
	s, err := bitint.NewSchedule(m.width, m.spacing)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	r := render.New(m.out, render.Options{
		Width:  m.width,
		Format: formats[m.format],
		Color:  true,
		Group:  4,
	})

	var sb strings.Builder
	sb.WriteString(r.Schedule(s))
	fmt.Fprintf(&sb, "\nx = %s\n", r.Value(m.input))

	result := s.Trace(m.input, func(st bitint.TraceStep) {
		sb.WriteString(r.Step(st))
		sb.WriteByte('\n')
	})

	line := fmt.Sprintf("dilute      %s", r.Value(result))
	if dropped := m.input &^ s.Sanitize(); dropped != 0 {
		line += fmt.Sprintf("  (dropped %s)", r.Value(dropped))
	}
	sb.WriteString(highlightStyle.Render(line))
	fmt.Fprintf(&sb, "\nconcentrate %s\n", r.Value(s.Invert(result)))
	return sb.String()
}

// Run launches the explorer on the alternate screen and blocks until it quits
// or ctx is done.
func Run(ctx context.Context, m Explorer) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
