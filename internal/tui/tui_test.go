package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chandlerok/claudway/internal/worktree"
)

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"/home/user/workspace", 20, "/home/user/workspace"},
		{"/home/user/very/long/path/to/workspace", 20, "...path/to/workspace"},
		{"", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := truncatePath(tt.path, tt.maxLen); got != tt.want {
				t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestBranchItemMethods(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		item := branchItem{name: "main"}
		if item.Title() != "main" || item.FilterValue() != "main" {
			t.Errorf("unexpected local item rendering: %q / %q", item.Title(), item.FilterValue())
		}
		if item.Description() != "local" {
			t.Errorf("Description() = %q", item.Description())
		}
	})

	t.Run("remote", func(t *testing.T) {
		item := branchItem{name: "feature/x", remote: true}
		if !strings.Contains(item.Description(), "tracking") {
			t.Errorf("remote description should mention tracking: %q", item.Description())
		}
	})

	t.Run("create", func(t *testing.T) {
		item := branchItem{create: true}
		if !strings.HasPrefix(item.Title(), "+ Create") {
			t.Errorf("Title() = %q", item.Title())
		}
	})
}

func TestBranchPicker_CreateEntryListedFirst(t *testing.T) {
	m := NewBranchPicker([]string{"main"}, []string{"feature/x"})

	first, ok := m.list.Items()[0].(branchItem)
	if !ok || !first.create {
		t.Errorf("first entry = %+v, want the create entry", m.list.Items()[0])
	}
}

func TestBranchPicker_SelectExisting(t *testing.T) {
	m := NewBranchPicker([]string{"main", "develop"}, []string{"feature/x"})

	// Move past the create entry to the first local branch.
	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := model.(branchModel).Result()

	if result.Action != BranchSelected {
		t.Fatalf("Action = %v, want BranchSelected", result.Action)
	}
	if result.Branch != "main" {
		t.Errorf("Branch = %q, want %q", result.Branch, "main")
	}
}

func TestBranchPicker_CreateFlow(t *testing.T) {
	m := NewBranchPicker([]string{"main"}, nil)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	bm := model.(branchModel)
	if !bm.naming {
		t.Fatal("selecting the create entry should switch to name input")
	}

	for _, r := range "fix/bug" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := model.(branchModel).Result()
	if result.Action != BranchCreate {
		t.Fatalf("Action = %v, want BranchCreate", result.Action)
	}
	if result.Branch != "fix/bug" {
		t.Errorf("Branch = %q, want %q", result.Branch, "fix/bug")
	}
}

func TestBranchPicker_EmptyNameRejected(t *testing.T) {
	m := NewBranchPicker([]string{"main"}, nil)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	bm := model.(branchModel)
	if bm.quitting {
		t.Error("empty name must not be accepted")
	}
	if !bm.naming {
		t.Error("picker should stay on the name input")
	}
}

func TestBranchPicker_Quit(t *testing.T) {
	m := NewBranchPicker([]string{"main"}, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	result := updated.(branchModel).Result()

	if result.Action != BranchQuit {
		t.Errorf("Action = %v, want BranchQuit", result.Action)
	}
}

func TestWorktreePicker_Select(t *testing.T) {
	worktrees := []worktree.Worktree{
		{Path: "/tmp/cw-1", Branch: "feature/a", Kind: worktree.KindTemporary},
		{Path: "/data/wt/b-12345678", Branch: "b", Kind: worktree.KindPersistent},
	}
	m := NewWorktreePicker("cw - Remove Worktree", worktrees)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := model.(worktreeModel).Result()
	if result.Action != WorktreeSelected {
		t.Fatalf("Action = %v, want WorktreeSelected", result.Action)
	}
	if result.Worktree.Path != "/data/wt/b-12345678" {
		t.Errorf("selected %q", result.Worktree.Path)
	}
}

func TestWorktreePicker_Escape(t *testing.T) {
	m := NewWorktreePicker("x", []worktree.Worktree{{Path: "/tmp/cw-1", Branch: "a"}})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(worktreeModel).Result().Action != WorktreeQuit {
		t.Error("esc should quit the picker")
	}
}

func TestRunWorktreePicker_EmptyList(t *testing.T) {
	result, err := RunWorktreePicker("x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Action != WorktreeQuit {
		t.Errorf("empty list should quit, got %v", result.Action)
	}
}

func TestWorktreeItemDescription(t *testing.T) {
	item := worktreeItem{wt: worktree.Worktree{
		Path:   "/data/worktrees/feature-12345678",
		Branch: "feature",
		Kind:   worktree.KindPersistent,
	}}
	desc := item.Description()
	if !strings.Contains(desc, "persistent") {
		t.Errorf("description should name the kind: %q", desc)
	}
	if !strings.Contains(desc, "feature-12345678") {
		t.Errorf("description should show the path: %q", desc)
	}
}
