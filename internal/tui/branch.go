// Package tui provides the interactive pickers cw shows when invoked
// without enough arguments to act on.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BranchAction represents the outcome of the branch picker.
type BranchAction int

const (
	BranchNone BranchAction = iota
	BranchSelected
	BranchCreate
	BranchQuit
)

// BranchResult holds the branch picker outcome. Branch is the selected
// existing branch, or the new branch name when Action is BranchCreate.
type BranchResult struct {
	Action BranchAction
	Branch string
}

// branchItem implements list.Item for branch display.
type branchItem struct {
	name   string
	remote bool
	create bool
}

func (i branchItem) Title() string {
	if i.create {
		return "+ Create new branch..."
	}
	return i.name
}

func (i branchItem) Description() string {
	switch {
	case i.create:
		return "start from the current HEAD"
	case i.remote:
		return "origin only, a tracking branch will be created"
	default:
		return "local"
	}
}

func (i branchItem) FilterValue() string {
	if i.create {
		return "create new branch"
	}
	return i.name
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	inputLabelStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)
)

// branchModel is the bubbletea model for the branch picker. Selecting
// the create entry switches to a free-text name input.
type branchModel struct {
	list     list.Model
	input    textinput.Model
	naming   bool
	result   BranchResult
	quitting bool
	width    int
	height   int
}

// NewBranchPicker builds a picker with the create entry first, then
// local branches, then remote-only branches.
func NewBranchPicker(local, remoteOnly []string) branchModel {
	items := make([]list.Item, 0, len(local)+len(remoteOnly)+1)
	items = append(items, branchItem{create: true})
	for _, b := range local {
		items = append(items, branchItem{name: b})
	}
	for _, b := range remoteOnly {
		items = append(items, branchItem{name: b, remote: true})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "cw - Select Branch"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Placeholder = "feature/my-branch"
	ti.CharLimit = 200
	ti.Width = 50

	return branchModel{list: l, input: ti}
}

func (m branchModel) Init() tea.Cmd {
	return nil
}

func (m branchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(branchItem); ok {
				if item.create {
					m.naming = true
					m.input.Focus()
					return m, textinput.Blink
				}
				m.result = BranchResult{Action: BranchSelected, Branch: item.name}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = BranchResult{Action: BranchQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m branchModel) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.input.Value()
		if name == "" {
			return m, nil
		}
		m.result = BranchResult{Action: BranchCreate, Branch: name}
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.naming = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m branchModel) View() string {
	if m.quitting {
		return ""
	}

	if m.naming {
		label := inputLabelStyle.Render("New branch name")
		help := helpStyle.Render("[enter] Create  [esc] Back")
		return label + "\n" + m.input.View() + "\n" + help
	}

	help := helpStyle.Render("[enter] Select  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

// Result returns the picker result.
func (m branchModel) Result() BranchResult {
	return m.result
}

// RunBranchPicker runs the interactive branch picker. With no branches
// at all it goes straight to name entry via BranchCreate with an empty
// name, letting the caller prompt plainly.
func RunBranchPicker(local, remoteOnly []string) (BranchResult, error) {
	if len(local) == 0 && len(remoteOnly) == 0 {
		return BranchResult{Action: BranchCreate}, nil
	}

	m := NewBranchPicker(local, remoteOnly)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return BranchResult{}, err
	}
	return finalModel.(branchModel).Result(), nil
}
