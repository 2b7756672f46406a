package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	consolePrompt      = "> "
	consoleHistoryFile = ".nus-cmd_history"
	consoleHistorySize = 200
)

// Console reads command lines typed on stdin. A terminal gets line editing
// and history; piped input is read line by line.
type Console struct {
	rl      *readline.Instance
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole creates a console reading from stdin.
func NewConsole() *Console {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return newPlainConsole(os.Stdin, os.Stdout)
	}

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, consoleHistoryFile)
	}
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:                 consolePrompt,
		HistoryFile:            historyFile,
		HistoryLimit:           consoleHistorySize,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return newPlainConsole(os.Stdin, os.Stdout)
	}
	return &Console{rl: rl, out: os.Stdout}
}

func newPlainConsole(in io.Reader, out io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out}
}

// Output returns the writer for replies.
func (c *Console) Output() io.Writer {
	return c.out
}

// ReadLine returns the next line, or io.EOF once input ends or Ctrl-C is
// pressed.
func (c *Console) ReadLine() (string, error) {
	if c.rl == nil {
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return c.scanner.Text(), nil
	}

	line, err := c.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return "", err
	}
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		c.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

// Run executes every line read with exec until input ends.
func (c *Console) Run(exec func(w io.Writer, line []byte)) error {
	for {
		line, err := c.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		exec(c.out, []byte(line))
	}
}

// Close saves the history and restores the terminal.
func (c *Console) Close() error {
	if c.rl == nil {
		return nil
	}
	return c.rl.Close()
}
