package at

//go:generate go tool mockgen -destination=mock_handler_test.go -package=at_test . Handler

// Handler implements the AT commands of an application.
//
// CommandID resolves a command name to a unique non-negative identifier, or
// returns a negative value if the command is not supported. The name never
// contains the prefix ("&" or "+") and comprises alphabetic characters only,
// in the case they were received. The same ID may be returned for aliases.
//
// Execute runs a command with no suffix, Set a command with the "=" suffix and
// Query a command with the "?" suffix. Set always receives at least one
// parameter, any of which may be empty. The parameter slice is owned by the
// handler once Set is called.
type Handler interface {
	CommandID(name string) int
	Execute(id int) Result
	Set(id int, params []string) Result
	Query(id int) Result
}

// Tester is implemented by handlers supporting the "=?" suffix. The reply to
// a test command is always OK unless Test panics.
type Tester interface {
	Test(id int)
}

// Finisher is implemented by handlers that want the parsing result of each
// command in a line. index is the 0-based position of the command in the line,
// from left to right. Commands following a failure are not parsed and not
// reported.
type Finisher interface {
	Finished(index int, result ParseResult)
}

// NonATHandler is implemented by handlers that want lines lacking the AT
// preamble when no fallback grammar is configured.
type NonATHandler interface {
	NonAT(text string)
}

// HandlerFuncs adapts plain functions to Handler and its optional interfaces.
// A nil OnCommandID supports no command at all. Nil action functions answer
// ResultError, nil optional functions do nothing.
type HandlerFuncs struct {
	OnCommandID func(name string) int
	OnExecute   func(id int) Result
	OnSet       func(id int, params []string) Result
	OnQuery     func(id int) Result
	OnTest      func(id int)
	OnFinished  func(index int, result ParseResult)
	OnNonAT     func(text string)
}

var (
	_ Handler      = (*HandlerFuncs)(nil)
	_ Tester       = (*HandlerFuncs)(nil)
	_ Finisher     = (*HandlerFuncs)(nil)
	_ NonATHandler = (*HandlerFuncs)(nil)
)

func (f *HandlerFuncs) CommandID(name string) int {
	if f.OnCommandID == nil {
		return -1
	}
	return f.OnCommandID(name)
}

func (f *HandlerFuncs) Execute(id int) Result {
	if f.OnExecute == nil {
		return ResultError
	}
	return f.OnExecute(id)
}

func (f *HandlerFuncs) Set(id int, params []string) Result {
	if f.OnSet == nil {
		return ResultError
	}
	return f.OnSet(id, params)
}

func (f *HandlerFuncs) Query(id int) Result {
	if f.OnQuery == nil {
		return ResultError
	}
	return f.OnQuery(id)
}

func (f *HandlerFuncs) Test(id int) {
	if f.OnTest != nil {
		f.OnTest(id)
	}
}

func (f *HandlerFuncs) Finished(index int, result ParseResult) {
	if f.OnFinished != nil {
		f.OnFinished(index, result)
	}
}

func (f *HandlerFuncs) NonAT(text string) {
	if f.OnNonAT != nil {
		f.OnNonAT(text)
	}
}

// guard runs fn and converts a panic into fallback.
func guard(fallback Result, fn func() Result) (r Result) {
	defer func() {
		if recover() != nil {
			r = fallback
		}
	}()
	return fn()
}

// shield runs fn, discarding any panic.
func shield(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
