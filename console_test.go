package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestPlainConsole(t *testing.T) {
	var out bytes.Buffer
	c := newPlainConsole(strings.NewReader("AT+VER\nversion\r\n\nlast"), &out)

	var lines []string
	err := c.Run(func(w io.Writer, line []byte) {
		lines = append(lines, string(line))
		_, _ = io.WriteString(w, "<"+string(line)+">")
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"AT+VER", "version", "", "last"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", lines, want)
	}
	if got := out.String(); got != "<AT+VER><version><><last>" {
		t.Errorf("output = %q", got)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestPlainConsoleWithApp(t *testing.T) {
	_, p := newTestApp(t)

	var out bytes.Buffer
	c := newPlainConsole(strings.NewReader("AT+NAME=console\nAT+NAME?\n"), &out)
	err := c.Run(func(w io.Writer, line []byte) {
		p.Execute(w, line)
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "\r\nOK\r\n\r\n+NAME: console\r\n\r\nOK\r\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
