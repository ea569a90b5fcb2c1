package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chandlerok/claudway/internal/worktree"
)

// WorktreeAction represents the outcome of the worktree picker.
type WorktreeAction int

const (
	WorktreeNone WorktreeAction = iota
	WorktreeSelected
	WorktreeQuit
)

// WorktreeResult holds the worktree picker outcome.
type WorktreeResult struct {
	Action   WorktreeAction
	Worktree worktree.Worktree
}

// worktreeItem implements list.Item for worktree display.
type worktreeItem struct {
	wt worktree.Worktree
}

func (i worktreeItem) Title() string {
	return i.wt.Branch
}

func (i worktreeItem) Description() string {
	return fmt.Sprintf("%s | %s", i.wt.Kind, truncatePath(i.wt.Path, 50))
}

func (i worktreeItem) FilterValue() string {
	return i.wt.Branch + " " + i.wt.Path
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// worktreeModel is the bubbletea model for the worktree picker.
type worktreeModel struct {
	list     list.Model
	result   WorktreeResult
	quitting bool
	width    int
	height   int
}

// NewWorktreePicker builds a picker over the given worktrees.
func NewWorktreePicker(title string, worktrees []worktree.Worktree) worktreeModel {
	items := make([]list.Item, len(worktrees))
	for i, wt := range worktrees {
		items[i] = worktreeItem{wt: wt}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return worktreeModel{list: l}
}

func (m worktreeModel) Init() tea.Cmd {
	return nil
}

func (m worktreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(worktreeItem); ok {
				m.result = WorktreeResult{Action: WorktreeSelected, Worktree: item.wt}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = WorktreeResult{Action: WorktreeQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m worktreeModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Select  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

// Result returns the picker result.
func (m worktreeModel) Result() WorktreeResult {
	return m.result
}

// RunWorktreePicker runs the interactive worktree picker.
func RunWorktreePicker(title string, worktrees []worktree.Worktree) (WorktreeResult, error) {
	if len(worktrees) == 0 {
		return WorktreeResult{Action: WorktreeQuit}, nil
	}

	m := NewWorktreePicker(title, worktrees)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return WorktreeResult{}, err
	}
	return finalModel.(worktreeModel).Result(), nil
}
