// Package tui implements an interactive browser for header analysis results.
package tui

import (
	"fmt"

	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/Veraticus/csvdescribe/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 100
	defaultHeight = 24

	numberWidth = 4
	headerWidth = 28
	matchWidth  = 10

	// Title, status line, help and table borders.
	chromeHeight = 7
)

// Model is the bubbletea model of the results browser.
type Model struct {
	theme        themes.Theme
	keymap       KeyMap
	help         help.Model
	source       string
	results      []model.AnalysisResult
	visible      []int
	table        table.Model
	width        int
	height       int
	fallbackOnly bool
	quitting     bool
}

// Option configures a Model.
type Option func(*Model)

// WithTheme sets the colour scheme.
func WithTheme(theme themes.Theme) Option {
	return func(m *Model) {
		m.theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// New creates a browser over results, which are not modified.
func New(source string, results []model.AnalysisResult, opts ...Option) Model {
	m := Model{
		theme:   themes.Default,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		source:  source,
		results: results,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = m.theme.Selected
	t.SetStyles(s)
	m.table = t

	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.ToggleFallback):
			m.fallbackOnly = !m.fallbackOnly
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
			m.table.SetHeight(m.tableHeight())
			return m, nil
		case key.Matches(msg, m.keymap.Top):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keymap.Bottom):
			m.table.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(m.columns())
		m.table.SetHeight(m.tableHeight())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := "CSV Header Analysis Results"
	if m.source != "" {
		title += ": " + m.source
	}
	if m.fallbackOnly {
		title += " (fallbacks only)"
	}

	body := m.table.View()
	if len(m.visible) == 0 {
		body = m.theme.Empty.Render("No headers to show.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(title),
		body,
		m.theme.Status.Render(m.status()),
		m.help.View(m.keymap),
	)
}

// Selected returns the result under the cursor.
func (m Model) Selected() (model.AnalysisResult, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return model.AnalysisResult{}, false
	}
	return m.results[m.visible[cursor]], true
}

// Visible returns the results currently listed, in input order.
func (m Model) Visible() []model.AnalysisResult {
	out := make([]model.AnalysisResult, 0, len(m.visible))
	for _, i := range m.visible {
		out = append(out, m.results[i])
	}
	return out
}

// FallbackOnly reports whether the fallback filter is active.
func (m Model) FallbackOnly() bool {
	return m.fallbackOnly
}

// refresh rebuilds the visible rows after a filter change.
func (m *Model) refresh() {
	m.visible = make([]int, 0, len(m.results))
	rows := make([]table.Row, 0, len(m.results))
	for i, r := range m.results {
		if m.fallbackOnly && r.Match != model.MatchFallback {
			continue
		}
		m.visible = append(m.visible, i)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			r.Header,
			r.Description,
			string(r.Match),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m Model) status() string {
	counts := model.CountByMatch(m.results)
	return fmt.Sprintf("%d headers  %s  %s  %s",
		len(m.results),
		m.theme.Exact.Render(fmt.Sprintf("%d exact", counts[model.MatchExact])),
		m.theme.Substring.Render(fmt.Sprintf("%d substring", counts[model.MatchSubstring])),
		m.theme.Fallback.Render(fmt.Sprintf("%d fallback", counts[model.MatchFallback])),
	)
}

func (m Model) columns() []table.Column {
	descWidth := m.width - numberWidth - headerWidth - matchWidth - 8
	if descWidth < 20 {
		descWidth = 20
	}
	return []table.Column{
		{Title: "#", Width: numberWidth},
		{Title: "Header", Width: headerWidth},
		{Title: "Description", Width: descWidth},
		{Title: "Match", Width: matchWidth},
	}
}

func (m Model) tableHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	return h
}
