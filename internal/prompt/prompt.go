// Package prompt handles interactive confirmation and free-text input
// on the terminal. Every prompt degrades safely: EOF and read errors
// answer "no", so piped or headless invocations never hang and never
// destroy anything.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	isatty "github.com/mattn/go-isatty"
)

// Prompter asks the user questions. Implementations must be safe to
// call when no terminal is attached.
type Prompter interface {
	// Confirm asks a yes/no question. def is the answer for plain
	// Enter; EOF and read errors answer no regardless of def.
	Confirm(question string, def bool) bool

	// Input asks for a line of free text. An io.EOF error means the
	// user ended input without answering.
	Input(question string) (string, error)
}

// Interactor is the stdin/stdout Prompter.
type Interactor struct {
	Reader io.Reader
	Writer io.Writer
}

// New returns a Prompter bound to the process's terminal.
func New() *Interactor {
	return &Interactor{Reader: os.Stdin, Writer: os.Stdout}
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (i *Interactor) Confirm(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(i.Writer, "%s [%s]: ", question, hint)

	answer, err := bufio.NewReader(i.Reader).ReadString('\n')
	if err != nil {
		// Treat a closed stdin as a decline, never as consent.
		fmt.Fprintln(i.Writer)
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}

func (i *Interactor) Input(question string) (string, error) {
	fmt.Fprintf(i.Writer, "%s: ", question)

	answer, err := bufio.NewReader(i.Reader).ReadString('\n')
	if err != nil && answer == "" {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
