package logging

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output, separate from the structured debug logging.
// Info/Success go to stdout; Warning/Error go to stderr.

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, successStyle.Render("✓")+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// UserDim prints a de-emphasized hint line to stdout.
func UserDim(format string, args ...interface{}) {
	fmt.Fprintln(os.Stdout, dimStyle.Render(fmt.Sprintf(format, args...)))
}

// UserBold prints an emphasized line to stdout.
func UserBold(format string, args ...interface{}) {
	fmt.Fprintln(os.Stdout, boldStyle.Render(fmt.Sprintf(format, args...)))
}
