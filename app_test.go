package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/afpineda/NuS-NimBLE-Serial/commands"
)

func newTestApp(t *testing.T) (*App, *commands.Processor) {
	t.Helper()
	tr := commands.NewTestTransport()
	config, err := commands.NewConfigBuilder().
		WithDialer(tr.Dialer()).
		WithBufferSize(32).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}
	p, err := commands.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	t.Cleanup(func() {
		_ = p.Close()
	})

	app := NewApp(p, "", p.BufferSize())
	if err := p.SetATHandler(app); err != nil {
		t.Fatal(err)
	}
	if err := p.SetShellHandler(app.ShellHandler()); err != nil {
		t.Fatal(err)
	}
	return app, p
}

func TestApp(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "query default name",
			lines: []string{"AT+NAME?"},
			want:  "\r\n+NAME: NuS device\r\n\r\nOK\r\n",
		},
		{
			name:  "set then query name",
			lines: []string{`AT+NAME="Kitchen lamp";+NAME?`},
			want:  "\r\nOK\r\n\r\n+NAME: Kitchen lamp\r\n\r\nOK\r\n",
		},
		{
			name:  "empty name rejected",
			lines: []string{"AT+NAME="},
			want:  "\r\nINVALID INPUT PARAMETERS\r\n",
		},
		{
			name:  "name test",
			lines: []string{"AT+NAME=?"},
			want:  "\r\n+NAME: \"<name>\"\r\n\r\nOK\r\n",
		},
		{
			name:  "version",
			lines: []string{"AT+VER"},
			want:  "\r\n+VER: " + Version + "\r\n\r\nOK\r\n",
		},
		{
			name:  "buffer size",
			lines: []string{"AT+BUF?"},
			want:  "\r\n+BUF: 32\r\n\r\nOK\r\n",
		},
		{
			name:  "buffer size cannot be set",
			lines: []string{"AT+BUF=16"},
			want:  "\r\nERROR\r\n",
		},
		{
			name:  "lower case command names",
			lines: []string{"AT+ver?"},
			want:  "\r\n+VER: " + Version + "\r\n\r\nOK\r\n",
		},
		{
			name:  "echo switch",
			lines: []string{"AT+ECHO=1;+ECHO?", "echo hi"},
			want:  "\r\nOK\r\n\r\n+ECHO: 1\r\n\r\nOK\r\n" + "> echo hi\r\nhi\r\n",
		},
		{
			name:  "echo rejects other values",
			lines: []string{"AT+ECHO=2"},
			want:  "\r\nINVALID INPUT PARAMETERS\r\n",
		},
		{
			name:  "factory reset",
			lines: []string{"AT+NAME=x;+ECHO=1", "set a 1", "AT&F", "AT+NAME?;+ECHO?", "get"},
			want: "\r\nOK\r\n\r\nOK\r\n" +
				"> set a 1\r\nok\r\n" +
				"\r\nOK\r\n" +
				"\r\n+NAME: NuS device\r\n\r\nOK\r\n\r\n+ECHO: 0\r\n\r\nOK\r\n",
		},
		{
			name:  "shell set and get",
			lines: []string{`set greeting "hello world"`, "get greeting", "get missing"},
			want:  "ok\r\nhello world\r\nnot set: missing\r\n",
		},
		{
			name:  "shell get all sorted",
			lines: []string{"set b 2", "set a 1", "GET"},
			want:  "ok\r\nok\r\na=1\r\nb=2\r\n",
		},
		{
			name:  "shell usage",
			lines: []string{"set a", "get a b"},
			want:  "usage: set <key> <value>\r\nusage: get [key]\r\n",
		},
		{
			name:  "shell version",
			lines: []string{"version"},
			want:  Version + "\r\n",
		},
		{
			name:  "shell unknown command",
			lines: []string{"reboot now"},
			want:  "unknown command: reboot\r\n",
		},
		{
			name:  "shell parse error",
			lines: []string{`echo "oops`},
			want:  "error: ill-formed string\r\n",
		},
		{
			name:  "blank line is silent",
			lines: []string{"   "},
			want:  "",
		},
		{
			name:  "unsupported AT command",
			lines: []string{"AT+RST"},
			want:  "\r\nERROR\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p := newTestApp(t)

			var out bytes.Buffer
			for _, line := range tt.lines {
				p.Execute(&out, []byte(line))
			}
			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppHelp(t *testing.T) {
	_, p := newTestApp(t)

	var out bytes.Buffer
	p.Execute(&out, []byte("help"))

	want := "commands: help, echo, set, get, version\r\n" +
		"AT commands: AT+NAME, AT+VER, AT+BUF, AT&F, AT+ECHO\r\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
