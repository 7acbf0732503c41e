package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"interlink/internal/core"
	"interlink/internal/linker"
)

// ErrAborted is returned by Review when the user quits without confirming.
var ErrAborted = errors.New("review aborted")

// model represents the state of the suggestion review screen.
type model struct {
	suggestions []core.LinkSuggestion
	kept        []bool // Parallel to suggestions
	selectedIdx int    // Cursor position
	width       int    // Terminal width
	height      int    // Terminal height
	confirmed   bool
	quitting    bool
}

// newModel starts with every suggestion kept.
func newModel(suggestions []core.LinkSuggestion) model {
	kept := make([]bool, len(suggestions))
	for i := range kept {
		kept[i] = true
	}
	return model{
		suggestions: suggestions,
		kept:        kept,
	}
}

// Init is the first command that will be run. We don't need any.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.suggestions)-1 {
				m.selectedIdx++
			}
		case " ":
			if len(m.kept) > 0 {
				m.kept[m.selectedIdx] = !m.kept[m.selectedIdx]
			}
		}
	}

	return m, nil
}

// selected returns the kept suggestions in their original order.
func (m model) selected() []core.LinkSuggestion {
	out := make([]core.LinkSuggestion, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		if m.kept[i] {
			out = append(out, s)
		}
	}
	return out
}

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	droppedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	detailStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
	helpTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View renders the review screen.
func (m model) View() string {
	if m.quitting {
		return "Quitting...\n"
	}

	var list strings.Builder
	list.WriteString(titleStyle.Render("Link suggestions") + "\n\n")
	if len(m.suggestions) == 0 {
		list.WriteString("No relevant links found.")
	}
	for i, s := range m.suggestions {
		cursor := " "
		if i == m.selectedIdx {
			cursor = cursorStyle.Render(">")
		}
		check := "[x]"
		line := fmt.Sprintf("%q -> %s (%.2f)", s.AnchorText, s.Entry.URL, s.Score)
		if !m.kept[i] {
			check = "[ ]"
			line = droppedStyle.Render(line)
		}
		fmt.Fprintf(&list, "%s %s %s\n", cursor, check, line)
	}

	content := list.String()
	if len(m.suggestions) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, content, detailStyle.Render(m.detail()))
	}

	help := helpTextStyle.Render("\n[↑/k] Up | [↓/j] Down | [space] Toggle | [enter] Confirm | [q] Quit")

	return docStyle.Render(content + help)
}

func (m model) detail() string {
	s := m.suggestions[m.selectedIdx]
	return fmt.Sprintf("%s\ncategory: %s / %s\nwhen: %s",
		s.Entry.Title, s.Entry.Category, s.Entry.Subcategory, linker.LinkContext(s.Entry))
}

// Review lets the user choose which suggestions to keep. It returns the kept
// suggestions in their original order, or ErrAborted if the user quits.
func Review(suggestions []core.LinkSuggestion, opts ...tea.ProgramOption) ([]core.LinkSuggestion, error) {
	final, err := tea.NewProgram(newModel(suggestions), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run review: %w", err)
	}

	m, ok := final.(model)
	if !ok || !m.confirmed {
		return nil, ErrAborted
	}
	return m.selected(), nil
}

// ReviewWithIO runs Review on the given streams without the alternate screen.
func ReviewWithIO(suggestions []core.LinkSuggestion, in io.Reader, out io.Writer) ([]core.LinkSuggestion, error) {
	return Review(suggestions, tea.WithInput(in), tea.WithOutput(out))
}
