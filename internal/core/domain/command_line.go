package domain

import (
	"strings"
	"unicode/utf8"

	"go.trai.ch/zerr"
)

// DefaultMaxCommandLine is the largest command line accepted by default, in characters.
// It matches the CreateProcess limit on Windows.
const DefaultMaxCommandLine = 32767

// CommandLine is the single string handed to the OS when spawning a child:
// the executable path in double quotes, a space, then the raw arguments.
type CommandLine struct {
	executable string
	arguments  string
	line       string
}

// NewCommandLine builds and validates a command line.
// maxLen <= 0 selects DefaultMaxCommandLine. Oversized input is rejected, never truncated.
func NewCommandLine(executable, arguments string, maxLen int) (CommandLine, error) {
	if executable == "" {
		return CommandLine{}, ErrEmptyExecutable
	}
	if strings.ContainsRune(executable, '"') {
		return CommandLine{}, zerr.With(zerr.Wrap(ErrInvalidExecutable, "cannot quote executable"), "executable", executable)
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxCommandLine
	}

	var b strings.Builder
	b.Grow(len(executable) + len(arguments) + 3)
	b.WriteByte('"')
	b.WriteString(executable)
	b.WriteString(`" `)
	b.WriteString(arguments)
	line := b.String()

	if n := utf8.RuneCountInString(line); n > maxLen {
		err := zerr.With(zerr.Wrap(ErrCommandLineTooLong, "rejecting command line"), "length", n)
		return CommandLine{}, zerr.With(err, "max", maxLen)
	}

	return CommandLine{executable: executable, arguments: arguments, line: line}, nil
}

// Executable returns the unquoted executable path.
func (c CommandLine) Executable() string {
	return c.executable
}

// Arguments returns the raw argument string.
func (c CommandLine) Arguments() string {
	return c.arguments
}

// String returns the full command line.
func (c CommandLine) String() string {
	return c.line
}

// IsZero reports whether the command line was never built.
func (c CommandLine) IsZero() bool {
	return c.line == ""
}
