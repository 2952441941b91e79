package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mk270/gemfeed2atom/pkg/feed"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the preview TUI
const (
	ListViewMode ViewMode = iota
	DetailViewMode
	XMLViewMode
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var helpText = map[ViewMode]string{
	ListViewMode:   "↑/↓ or j/k: navigate • enter: view details • x: XML view • q: quit",
	DetailViewMode: "↑/↓ or j/k: previous/next entry • esc: back to list • x: toggle XML view • q: quit",
	XMLViewMode:    "↑/↓ or j/k: previous/next entry • esc: back to list • x: toggle detail view • q: quit",
}

// Model is the Bubble Tea model of the preview. The cursor is shared by all
// views, so stepping through entries in detail view moves the list selection.
type Model struct {
	feed     *feed.AtomFeed
	header   string
	warning  string
	cursor   int
	viewMode ViewMode
	height   int
}

// NewModel creates a new preview model for f
func NewModel(f *feed.AtomFeed) Model {
	return Model{
		feed:     f,
		header:   FormatFeedHeader(f),
		warning:  BaseURLWarning(f.ID),
		viewMode: ListViewMode,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if len(m.feed.Entries) == 0 {
			return m, nil
		}

		switch key {
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = min(m.cursor+1, len(m.feed.Entries)-1)
		case "enter":
			if m.viewMode == ListViewMode {
				m.viewMode = DetailViewMode
			}
		case "x":
			if m.viewMode == XMLViewMode {
				m.viewMode = DetailViewMode
			} else {
				m.viewMode = XMLViewMode
			}
		case "esc":
			m.viewMode = ListViewMode
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	switch m.viewMode {
	case ListViewMode:
		m.renderList(&b)
	case DetailViewMode:
		m.renderEntryTitle(&b)
		b.WriteString(FormatDetailedItem(m.feed.ID, m.feed.Entries[m.cursor]))
	case XMLViewMode:
		m.renderEntryTitle(&b)
		b.WriteString(FormatXMLEntry(m.feed.Entries[m.cursor]))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText[m.viewMode]))
	return b.String()
}

// headerLines is the height of the list view around the entries themselves
func (m Model) headerLines() int {
	lines := strings.Count(m.header, "\n") + 3
	if m.warning != "" {
		lines++
	}
	return lines
}

func (m Model) renderList(b *strings.Builder) {
	title, details, _ := strings.Cut(m.header, "\n")
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(details)
	if m.warning != "" {
		b.WriteString(warningStyle.Render("Warning: " + m.warning))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := len(m.feed.Entries)
	if m.height > 0 {
		rows = max(m.height-m.headerLines(), 1)
	}
	start, end := visibleWindow(m.cursor, len(m.feed.Entries), rows)

	for i := start; i < end; i++ {
		line := FormatCompactListItem(i, m.feed.Entries[i])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
}

func (m Model) renderEntryTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: entry %d of %d", m.feed.Title, m.cursor+1, len(m.feed.Entries))))
	b.WriteString("\n\n")
}

// visibleWindow returns the [start, end) range of at most rows entries that
// keeps cursor roughly centered.
func visibleWindow(cursor, total, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := min(max(cursor-rows/2, 0), total-rows)
	return start, start + rows
}

// Run starts the Bubble Tea program
func Run(f *feed.AtomFeed) error {
	if f == nil || len(f.Entries) == 0 {
		fmt.Println("No entries to preview")
		return nil
	}

	p := tea.NewProgram(NewModel(f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
