package shell

import "strings"

// Func executes one command. args[0] is the command name as typed.
type Func func(args []string)

// Mux dispatches command lines by their first word. Names are matched in the
// order they were registered, ignoring case unless CaseSensitive(true) is set.
type Mux struct {
	caseSensitive bool
	names         []string
	funcs         []Func
	unknown       Func
	parseError    func(result ParseResult)
}

var (
	_ Handler           = (*Mux)(nil)
	_ ParseErrorHandler = (*Mux)(nil)
)

// NewMux creates an empty, case insensitive Mux.
func NewMux() *Mux {
	return &Mux{}
}

// Handle registers fn for the command name. Empty names and nil functions are
// ignored.
func (m *Mux) Handle(name string, fn Func) *Mux {
	if name != "" && fn != nil {
		m.names = append(m.names, name)
		m.funcs = append(m.funcs, fn)
	}
	return m
}

// HandleUnknown sets the function executing unregistered commands.
func (m *Mux) HandleUnknown(fn Func) *Mux {
	m.unknown = fn
	return m
}

// HandleParseError sets the function receiving parsing errors.
func (m *Mux) HandleParseError(fn func(result ParseResult)) *Mux {
	m.parseError = fn
	return m
}

// CaseSensitive sets whether command names are case sensitive and returns the
// previous setting.
func (m *Mux) CaseSensitive(yes bool) bool {
	previous := m.caseSensitive
	m.caseSensitive = yes
	return previous
}

// Names returns the registered command names.
func (m *Mux) Names() []string {
	return append([]string(nil), m.names...)
}

func (m *Mux) lookup(name string) Func {
	for i, candidate := range m.names {
		if m.caseSensitive && candidate == name {
			return m.funcs[i]
		}
		if !m.caseSensitive && strings.EqualFold(candidate, name) {
			return m.funcs[i]
		}
	}
	return m.unknown
}

// Execute runs the function registered for args[0], or the unknown command
// function.
func (m *Mux) Execute(args []string) {
	if len(args) == 0 {
		return
	}
	if fn := m.lookup(args[0]); fn != nil {
		fn(args)
	}
}

// ParseError forwards result to the parse error function, if any.
func (m *Mux) ParseError(result ParseResult) {
	if m.parseError != nil {
		m.parseError(result)
	}
}
