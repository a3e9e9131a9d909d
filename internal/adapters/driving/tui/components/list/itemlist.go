// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
)

// Row is one entry of an ItemList.
type Row struct {
	// ID identifies the underlying resource.
	ID string
	// Title is the main line.
	Title string
	// Badge is shown right of the title, e.g. a status.
	Badge string
	// Detail is the muted second line.
	Detail string
}

// ItemList displays rows in a navigable list.
type ItemList struct {
	rows     []Row
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates a new item list. empty is shown when there are no rows.
func NewItemList(s *styles.Styles, empty string) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the item list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.rows) > 0 {
				l.selected = len(l.rows) - 1
			}
		}
	}
	return l, nil
}

// View renders the item list.
func (l *ItemList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	// Each row takes two lines.
	visibleCount := l.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, (end-start)*2+2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, &l.rows[i]))
	}

	if len(l.rows) > visibleCount {
		lines = append(lines, "", l.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", start+1, end, len(l.rows))))
	}

	return strings.Join(lines, "\n")
}

// renderRow formats a single row with its detail line.
func (l *ItemList) renderRow(index int, row *Row) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := row.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := l.width - len(row.Badge) - 8
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = truncate(title, maxTitleLen)

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, row.Badge))
	} else {
		titleLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			l.styles.Subtitle.Render(row.Badge)
	}

	detail := strings.ReplaceAll(row.Detail, "\n", " ")
	detail = truncate(detail, l.width-6)

	return titleLine + "\n" + l.styles.Muted.Render("    "+detail)
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetRows replaces the rows, keeping the selection in range.
func (l *ItemList) SetRows(rows []Row) {
	l.rows = rows
	if l.selected >= len(rows) {
		l.selected = len(rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Rows returns the current rows.
func (l *ItemList) Rows() []Row {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *ItemList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ItemList) SetSelected(index int) {
	if index >= 0 && index < len(l.rows) {
		l.selected = index
	}
}

// SelectedRow returns the currently selected row, or nil if none.
func (l *ItemList) SelectedRow() *Row {
	if len(l.rows) == 0 {
		return nil
	}
	return &l.rows[l.selected]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *ItemList) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether the list is empty.
func (l *ItemList) IsEmpty() bool {
	return len(l.rows) == 0
}
