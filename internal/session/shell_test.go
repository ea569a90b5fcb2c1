package session

import (
	"context"
	"strings"
	"testing"

	"github.com/chandlerok/claudway/internal/system"
)

func TestActivateCmd(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"/usr/bin/fish", "source /wt/mamba/venv/bin/activate.fish"},
		{"/bin/bash", "source /wt/mamba/venv/bin/activate"},
		{"/bin/zsh", "source /wt/mamba/venv/bin/activate"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			if got := ActivateCmd(tt.shell, "/wt/mamba/venv"); got != tt.want {
				t.Errorf("ActivateCmd = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLaunchShell_Fish(t *testing.T) {
	mock := system.NewMockExecutor()
	if err := LaunchShell(context.Background(), mock, "/usr/bin/fish", nil, "source act.fish", "/wt"); err != nil {
		t.Fatal(err)
	}

	c := mock.Commands[0]
	if c.Name != "/usr/bin/fish" || c.Dir != "/wt" {
		t.Errorf("command = %+v", c)
	}
	if len(c.Args) != 2 || c.Args[0] != "-C" || c.Args[1] != "source act.fish" {
		t.Errorf("fish args = %v", c.Args)
	}
}

func TestLaunchShell_Bash(t *testing.T) {
	mock := system.NewMockExecutor()
	if err := LaunchShell(context.Background(), mock, "/bin/bash", nil, "source act", "/wt"); err != nil {
		t.Fatal(err)
	}

	c := mock.Commands[0]
	if len(c.Args) != 2 || c.Args[0] != "--rcfile" || c.Args[1] != "/dev/stdin" {
		t.Errorf("bash args = %v", c.Args)
	}
	if !strings.Contains(c.Stdin, "~/.bashrc") || !strings.Contains(c.Stdin, "source act") {
		t.Errorf("rc input = %q", c.Stdin)
	}
	if !strings.HasSuffix(c.Stdin, "\n") {
		t.Error("rc input must end with a newline")
	}
}

func TestLaunchShell_GenericExecChain(t *testing.T) {
	mock := system.NewMockExecutor()
	if err := LaunchShell(context.Background(), mock, "/bin/zsh", nil, "source act", "/wt"); err != nil {
		t.Fatal(err)
	}

	c := mock.Commands[0]
	if len(c.Args) != 2 || c.Args[0] != "-c" {
		t.Fatalf("zsh args = %v", c.Args)
	}
	if c.Args[1] != "source act; exec /bin/zsh -i" {
		t.Errorf("init line = %q", c.Args[1])
	}
}

func TestRunCommand(t *testing.T) {
	mock := system.NewMockExecutor()
	if err := RunCommand(context.Background(), mock, "/bin/sh", nil, "claude --resume", "/wt"); err != nil {
		t.Fatal(err)
	}

	c := mock.Commands[0]
	if c.Dir != "/wt" || c.Args[0] != "-c" || c.Args[1] != "claude --resume" {
		t.Errorf("command = %+v", c)
	}
}

func TestUserShell_Fallback(t *testing.T) {
	t.Setenv("SHELL", "")
	if got := UserShell(); got != "/bin/sh" {
		t.Errorf("UserShell = %q, want /bin/sh", got)
	}

	t.Setenv("SHELL", "/usr/bin/fish")
	if got := UserShell(); got != "/usr/bin/fish" {
		t.Errorf("UserShell = %q", got)
	}
}
