package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campfirium/obsidian-tile-line-base-sub002/formula"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
)

// historyEntry is one evaluated formula with its diagnostics
type historyEntry struct {
	source   string
	compiled *ast.CompiledFormula
	result   *ast.EvaluationResult
	err      error
}

// Model is the playground TUI model
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	showRPN bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Engine state
	engine  *formula.Engine
	row     map[string]interface{}
	history []historyEntry
}

// NewModel creates a new playground model. A nil engine gets a default
// one; a nil row gets the built-in demo row.
func NewModel(engine *formula.Engine, row map[string]interface{}) Model {
	ti := textinput.New()
	ti.Placeholder = `{price} * {qty} + " pcs"`
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	if engine == nil {
		engine, _ = formula.NewEngine()
	}
	if row == nil {
		row = DemoRow()
	}

	return Model{
		input:   ti,
		engine:  engine,
		row:     row,
		history: []historyEntry{},
	}
}

// DemoRow returns the built-in sample row used when no data file is
// loaded.
func DemoRow() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Widget",
		"price":    "19.99",
		"discount": "4.99",
		"qty":      3,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			source := strings.TrimSpace(m.input.Value())
			if source != "" {
				m.evaluate(source)
				m.input.Reset()
				m.updateContent()
			}
			return m, nil

		case "ctrl+r":
			m.showRPN = !m.showRPN
			m.updateContent()
			return m, nil

		case "ctrl+l":
			m.history = []historyEntry{}
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.input.Width = msg.Width - 6
		m.updateContent()
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// evaluate compiles and evaluates one source line against the sample
// row and appends the outcome to the history.
func (m *Model) evaluate(source string) {
	entry := historyEntry{source: source}

	compiled, err := m.engine.Compile(source)
	if err != nil {
		entry.err = err
	} else {
		entry.compiled = compiled
		entry.result = m.engine.Evaluate(compiled, m.row, nil)
	}

	m.history = append(m.history, entry)
}

// updateContent rebuilds the viewport from the history.
func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	var s strings.Builder
	for _, entry := range m.history {
		s.WriteString(m.renderEntry(entry))
		s.WriteString("\n")
	}

	m.viewport.SetContent(s.String())
	m.viewport.GotoBottom()
}

// renderEntry formats one history entry.
func (m *Model) renderEntry(entry historyEntry) string {
	var s strings.Builder

	s.WriteString(SourceStyle.Render("> " + entry.source))
	s.WriteString("\n")

	if entry.err != nil {
		s.WriteString(ErrorStyle.Render("  compile error: " + entry.err.Error()))
		var facadeErr *formula.Error
		if errors.As(entry.err, &facadeErr) && facadeErr.Code() != "" {
			s.WriteString(KindStyle.Render("  [" + facadeErr.Code().String() + "]"))
		}
		s.WriteString("\n")
		return s.String()
	}

	result := entry.result
	if result.OK() {
		s.WriteString(ResultStyle.Render("  = " + result.Value))
		s.WriteString(KindStyle.Render("  (" + result.Kind.String() + ")"))
	} else {
		s.WriteString(ErrorStyle.Render("  = " + result.Value))
		s.WriteString(KindStyle.Render(fmt.Sprintf("  [%s] %s", result.Err.Code, result.Err.Message)))
	}
	s.WriteString("\n")

	if m.showRPN && entry.compiled != nil {
		s.WriteString(DetailStyle.Render("  rpn:  " + ast.FormatRPN(entry.compiled.RPN)))
		s.WriteString("\n")
		if len(entry.compiled.Dependencies) > 0 {
			s.WriteString(DetailStyle.Render("  deps: " + strings.Join(entry.compiled.Dependencies, ", ")))
			s.WriteString("\n")
		}
	}

	return s.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(InputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	title := TitleStyle.Render("TLB Formula Playground")
	row := SubtitleStyle.Render("sample row: " + m.renderRow())
	return lipgloss.JoinVertical(lipgloss.Left, title, row)
}

// renderRow formats the sample row with sorted keys for a stable
// header line.
func (m *Model) renderRow() string {
	keys := make([]string, 0, len(m.row))
	for key := range m.row {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, m.row[key]))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderFooter() string {
	rpnState := "off"
	if m.showRPN {
		rpnState = "on"
	}
	return HelpStyle.Render(fmt.Sprintf(
		"Enter: evaluate | Ctrl+R: rpn detail (%s) | Ctrl+L: clear | Esc: quit", rpnState))
}
