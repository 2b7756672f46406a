package shell

//go:generate go tool mockgen -destination=mock_handler_test.go -package=shell_test . Handler

// Handler executes parsed command lines. args holds the words from left to
// right; the first one is the command name. Execute is never called with an
// empty command line, but any word may be an empty string typed as "".
type Handler interface {
	Execute(args []string)
}

// ParseErrorHandler is implemented by handlers that want to know about
// command lines that could not be parsed.
type ParseErrorHandler interface {
	ParseError(result ParseResult)
}

// HandlerFuncs adapts plain functions to Handler and ParseErrorHandler.
type HandlerFuncs struct {
	OnExecute    func(args []string)
	OnParseError func(result ParseResult)
}

var (
	_ Handler           = (*HandlerFuncs)(nil)
	_ ParseErrorHandler = (*HandlerFuncs)(nil)
)

func (f *HandlerFuncs) Execute(args []string) {
	if f.OnExecute != nil {
		f.OnExecute(args)
	}
}

func (f *HandlerFuncs) ParseError(result ParseResult) {
	if f.OnParseError != nil {
		f.OnParseError(result)
	}
}

// shield runs fn, discarding any panic.
func shield(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
