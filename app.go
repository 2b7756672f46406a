package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/afpineda/NuS-NimBLE-Serial/at"
	"github.com/afpineda/NuS-NimBLE-Serial/shell"
)

// Version is reported by AT+VER and the version shell command.
const Version = "1.0.0"

// DefaultDeviceName is restored by AT&F.
const DefaultDeviceName = "NuS device"

// Responder sends replies back to the peer whose line is being executed.
type Responder interface {
	io.Writer
	PrintResponse(message string) error
}

// AT command identifiers
const (
	cmdName = iota
	cmdVersion
	cmdBufferSize
	cmdFactoryReset
	cmdEcho
)

var atCommands = map[string]int{
	"NAME": cmdName,
	"VER":  cmdVersion,
	"BUF":  cmdBufferSize,
	"F":    cmdFactoryReset,
	"ECHO": cmdEcho,
}

// App is the demo application: a device name, an echo switch and a small
// key/value store, reachable through AT commands and shell commands.
type App struct {
	out        Responder
	bufferSize int
	mux        *shell.Mux

	mu       sync.Mutex
	name     string
	echo     bool
	settings map[string]string
}

var (
	_ at.Handler = (*App)(nil)
	_ at.Tester  = (*App)(nil)
)

// NewApp creates an App replying through out. bufferSize is the working
// buffer size reported by AT+BUF.
func NewApp(out Responder, name string, bufferSize int) *App {
	if name == "" {
		name = DefaultDeviceName
	}
	a := &App{
		out:        out,
		bufferSize: bufferSize,
		name:       name,
		settings:   map[string]string{},
	}
	a.mux = shell.NewMux().
		Handle("help", a.help).
		Handle("echo", a.echoArgs).
		Handle("set", a.set).
		Handle("get", a.get).
		Handle("version", a.version).
		HandleUnknown(func(args []string) {
			a.println("unknown command: " + args[0])
		}).
		HandleParseError(func(result shell.ParseResult) {
			if result != shell.ParseNoCommand {
				a.println("error: " + result.String())
			}
		})
	return a
}

func (a *App) println(text string) {
	_, _ = io.WriteString(a.out, text+at.CRLF)
}

func (a *App) respond(text string) {
	_ = a.out.PrintResponse(text)
}

// CommandID resolves AT command names, ignoring case.
func (a *App) CommandID(name string) int {
	if id, ok := atCommands[strings.ToUpper(name)]; ok {
		return id
	}
	return -1
}

func (a *App) Execute(id int) at.Result {
	switch id {
	case cmdVersion:
		a.respond("+VER: " + Version)
		return at.ResultOK
	case cmdFactoryReset:
		a.mu.Lock()
		defer a.mu.Unlock()
		a.name = DefaultDeviceName
		a.echo = false
		clear(a.settings)
		return at.ResultOK
	}
	return at.ResultError
}

func (a *App) Set(id int, params []string) at.Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch id {
	case cmdName:
		if len(params) != 1 || params[0] == "" {
			return at.ResultInvalidParam
		}
		a.name = params[0]
		return at.ResultOK
	case cmdEcho:
		if len(params) != 1 {
			return at.ResultInvalidParam
		}
		switch params[0] {
		case "0":
			a.echo = false
		case "1":
			a.echo = true
		default:
			return at.ResultInvalidParam
		}
		return at.ResultOK
	}
	return at.ResultError
}

func (a *App) Query(id int) at.Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch id {
	case cmdName:
		a.respond("+NAME: " + a.name)
	case cmdVersion:
		a.respond("+VER: " + Version)
	case cmdBufferSize:
		a.respond(fmt.Sprintf("+BUF: %d", a.bufferSize))
	case cmdEcho:
		if a.echo {
			a.respond("+ECHO: 1")
		} else {
			a.respond("+ECHO: 0")
		}
	default:
		return at.ResultError
	}
	return at.ResultOK
}

// Test describes the parameters accepted by settable commands.
func (a *App) Test(id int) {
	switch id {
	case cmdName:
		a.respond(`+NAME: "<name>"`)
	case cmdEcho:
		a.respond("+ECHO: (0,1)")
	}
}

// ExecuteShell runs a shell command line, echoing it first when AT+ECHO=1.
func (a *App) ExecuteShell(args []string) {
	a.mu.Lock()
	echo := a.echo
	a.mu.Unlock()
	if echo {
		a.println("> " + strings.Join(args, " "))
	}
	a.mux.Execute(args)
}

// ShellHandler returns the handler of shell command lines.
func (a *App) ShellHandler() shell.Handler {
	return &shell.HandlerFuncs{
		OnExecute:    a.ExecuteShell,
		OnParseError: a.mux.ParseError,
	}
}

func (a *App) help([]string) {
	a.println("commands: " + strings.Join(a.mux.Names(), ", "))
	a.println("AT commands: AT+NAME, AT+VER, AT+BUF, AT&F, AT+ECHO")
}

func (a *App) echoArgs(args []string) {
	a.println(strings.Join(args[1:], " "))
}

func (a *App) set(args []string) {
	if len(args) != 3 {
		a.println("usage: set <key> <value>")
		return
	}
	a.mu.Lock()
	a.settings[args[1]] = args[2]
	a.mu.Unlock()
	a.println("ok")
}

func (a *App) get(args []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch len(args) {
	case 1:
		for _, key := range slices.Sorted(maps.Keys(a.settings)) {
			a.println(key + "=" + a.settings[key])
		}
	case 2:
		value, ok := a.settings[args[1]]
		if !ok {
			a.println("not set: " + args[1])
			return
		}
		a.println(value)
	default:
		a.println("usage: get [key]")
	}
}

func (a *App) version([]string) {
	a.println(Version)
}
