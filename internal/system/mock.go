package system

import (
	"context"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to response queues. A pattern
	// matches when it is a prefix of "name arg1 arg2 ..."; the longest
	// matching pattern wins. Queued responses are consumed in order,
	// with the final one repeating.
	Responses map[string][]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// InteractiveErr is returned by the interactive methods if set.
	InteractiveErr error

	// OnInteractive, if set, is called for each interactive execution.
	// Lets tests simulate work done inside a shell session.
	OnInteractive func(cmd MockCommand)
}

// MockCommand records an executed command.
type MockCommand struct {
	Dir   string
	Name  string
	Args  []string
	Stdin string
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string][]MockResponse),
	}
}

// AddResponse queues a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = append(m.Responses[pattern], MockResponse{Output: output, Err: err})
}

func (m *MockExecutor) lookup(name string, args []string) MockResponse {
	full := name
	if len(args) > 0 {
		full += " " + strings.Join(args, " ")
	}

	best := ""
	for pattern := range m.Responses {
		if strings.HasPrefix(full, pattern) && len(pattern) > len(best) {
			best = pattern
		}
	}
	if best == "" {
		return m.DefaultResponse
	}
	queue := m.Responses[best]
	resp := queue[0]
	if len(queue) > 1 {
		m.Responses[best] = queue[1:]
	}
	return resp
}

func (m *MockExecutor) record(cmd MockCommand) {
	m.Commands = append(m.Commands, cmd)
}

func (m *MockExecutor) Execute(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(MockCommand{Dir: dir, Name: name, Args: args})
	resp := m.lookup(name, args)
	return resp.Output, resp.Err
}

func (m *MockExecutor) ExecuteWithStdin(ctx context.Context, dir, stdin string, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(MockCommand{Dir: dir, Name: name, Args: args, Stdin: stdin})
	resp := m.lookup(name, args)
	return resp.Output, resp.Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, dir string, env []string, name string, args ...string) error {
	m.mu.Lock()
	cmd := MockCommand{Dir: dir, Name: name, Args: args}
	m.record(cmd)
	hook := m.OnInteractive
	err := m.InteractiveErr
	m.mu.Unlock()

	if hook != nil {
		hook(cmd)
	}
	return err
}

func (m *MockExecutor) ExecuteInteractiveWithInput(ctx context.Context, dir string, env []string, input string, name string, args ...string) error {
	m.mu.Lock()
	cmd := MockCommand{Dir: dir, Name: name, Args: args, Stdin: input}
	m.record(cmd)
	hook := m.OnInteractive
	err := m.InteractiveErr
	m.mu.Unlock()

	if hook != nil {
		hook(cmd)
	}
	return err
}

// CommandLines renders the recorded commands as "name arg1 arg2 ..." lines
// for simple assertions.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
	}
	return lines
}
