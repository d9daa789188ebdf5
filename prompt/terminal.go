// Package prompt asks yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type Terminal struct {
	In  io.Reader
	Out io.Writer
	// AssumeYes answers every question with yes without printing it.
	AssumeYes bool

	reader *bufio.Reader
}

func NewTerminal(assumeYes bool) *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr, AssumeYes: assumeYes}
}

// Confirm prints message with a [Y/n] or [y/N] hint and reads one line.
// An empty line, end of input or an unrecognised answer yields defaultYes.
func (t *Terminal) Confirm(message string, defaultYes bool) bool {
	if t.AssumeYes {
		return true
	}
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(t.Out, "%s %s ", message, hint)

	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.Out)
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}
