package at

import (
	"io"

	"github.com/afpineda/NuS-NimBLE-Serial/internal/workbuf"
)

// Parser parses AT command lines and dispatches them to a Handler.
//
// A Parser is not safe for concurrent use. One Parse call, including every
// chained command and handler invocation, runs to completion on the calling
// goroutine.
type Parser struct {
	handler    Handler
	bufferSize int
	lowerCase  bool
	alloc      workbuf.Allocator
	fallback   func(line []byte)

	// out receives responses while a line is being parsed
	out io.Writer
}

// Option configures a Parser.
type Option func(*Parser)

// WithBufferSize sets the size of the working buffer. See SetBufferSize.
func WithBufferSize(size int) Option {
	return func(p *Parser) {
		p.SetBufferSize(size)
	}
}

// WithLowerCasePreamble allows "at" as a preamble.
func WithLowerCasePreamble(allow bool) Option {
	return func(p *Parser) {
		p.lowerCase = allow
	}
}

// WithAllocator replaces the function reserving working buffers.
func WithAllocator(alloc workbuf.Allocator) Option {
	return func(p *Parser) {
		if alloc != nil {
			p.alloc = alloc
		}
	}
}

// WithFallback sets the function receiving lines that are not AT command
// lines, including every line while no handler is set.
func WithFallback(fn func(line []byte)) Option {
	return func(p *Parser) {
		p.fallback = fn
	}
}

// NewParser creates a Parser for h. h may be nil and set later.
func NewParser(h Handler, opts ...Option) *Parser {
	p := &Parser{
		handler:    h,
		bufferSize: workbuf.DefaultSize,
		alloc:      workbuf.Make,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetHandler replaces the command handler.
func (p *Parser) SetHandler(h Handler) {
	p.handler = h
}

// Handler returns the current command handler.
func (p *Parser) Handler() Handler {
	return p.handler
}

// SetBufferSize sets the size of the working buffer. An error response is
// printed if command names or set parameters exceed it. Sizes below
// workbuf.MinSize are raised to it.
func (p *Parser) SetBufferSize(size int) {
	p.bufferSize = workbuf.Clamp(size)
}

// BufferSize returns the size of the working buffer.
func (p *Parser) BufferSize() int {
	return p.bufferSize
}

// LowerCasePreamble allows or disallows "at" as a preamble.
func (p *Parser) LowerCasePreamble(allow bool) {
	p.lowerCase = allow
}

// SetFallback replaces the function receiving non-AT lines.
func (p *Parser) SetFallback(fn func(line []byte)) {
	p.fallback = fn
}

// PrintResponse writes message as an AT response, enclosed in CR+LF pairs.
// Handlers may call it while a line is being parsed. message must not
// contain CR+LF.
func (p *Parser) PrintResponse(message string) {
	if p.out == nil {
		return
	}
	_, _ = io.WriteString(p.out, CRLF+message+CRLF)
}

func (p *Parser) printResult(r Result) {
	p.PrintResponse(r.String())
}

// Parse parses one command line, dispatching every command found to the
// handler and writing responses to w. in is not required to be terminated:
// nothing past len(in) is ever read.
//
// The returned value is the result of the last command parsed. Lines lacking
// the preamble return ParseNoPreamble (or ParseNoCallbacks while no handler is
// set) and are handed to the fallback.
func (p *Parser) Parse(w io.Writer, in []byte) ParseResult {
	prev := p.out
	p.out = w
	defer func() {
		p.out = prev
	}()

	if p.handler == nil {
		p.handOff(in)
		return ParseNoCallbacks
	}

	switch Classify(in, p.lowerCase) {
	case TypeProbe:
		// Signal that AT commands are accepted
		p.printResult(ResultOK)
		return ParseNoCommands
	case TypeOther:
		p.handOff(in)
		return ParseNoPreamble
	}

	result := ParseOK
	next := len(Preamble)
	for index := 0; next >= 0; index++ {
		next, result = p.parseCommand(in, next)
		if f, ok := p.handler.(Finisher); ok {
			shield(func() {
				f.Finished(index, result)
			})
		}
	}
	return result
}

func (p *Parser) handOff(in []byte) {
	if p.fallback != nil {
		p.fallback(in)
		return
	}
	if h, ok := p.handler.(NonATHandler); ok {
		shield(func() {
			h.NonAT(string(in))
		})
	}
}

// fail prints an error response and stops the line.
func (p *Parser) fail(r ParseResult) (int, ParseResult) {
	p.printResult(ResultError)
	return -1, r
}

// dispatched maps a handler result to the position of the following command
// and the command outcome.
func dispatched(in []byte, end int, r Result) (int, ParseResult) {
	if r.Failed() {
		return -1, ParseExecutionFailed
	}
	return following(in, end, r), ParseOK
}

// parseCommand parses the command starting at position i, which should hold
// a prefix. It returns the position of the next chained command, or -1.
func (p *Parser) parseCommand(in []byte, i int) (int, ParseResult) {
	if i >= len(in) || !isPrefix(in[i]) {
		return p.fail(ParseInvalidPrefix)
	}
	prefix := in[i]

	// Text between a prefix and a suffix or end token is a command name
	start := i + 1
	suffix := findSuffix(in, start)
	name := in[start:suffix]
	if len(name) == 0 || len(name) >= p.bufferSize || (prefix == PrefixBasic && len(name) != 1) {
		return p.fail(ParseInvalidCommandName)
	}

	buf := workbuf.New(p.alloc, len(name)+1)
	if buf == nil {
		return p.fail(ParseNoHeap)
	}
	for _, c := range name {
		buf.Put(c)
	}
	cmdName, _ := buf.Seal()

	if !isAlphaString(name) {
		return p.fail(ParseNonAlphabeticName)
	}

	id := p.resolve(cmdName)
	if id < 0 {
		return p.fail(ParseUnsupportedCommand)
	}
	return p.parseAction(in, suffix, id)
}

func (p *Parser) resolve(name string) (id int) {
	defer func() {
		if recover() != nil {
			id = -1
		}
	}()
	return p.handler.CommandID(name)
}

// parseAction selects the action from the suffix or end token at position i.
func (p *Parser) parseAction(in []byte, i int, id int) (int, ParseResult) {
	switch {
	case byteAt(in, i) == SuffixSet && byteAt(in, i+1) == SuffixQuery:
		if isEndToken(in, i+2) {
			r := ResultOK
			if t, ok := p.handler.(Tester); ok {
				r = guard(ResultError, func() Result {
					t.Test(id)
					return ResultOK
				})
			}
			p.printResult(r)
			return dispatched(in, i+2, r)
		}

	case byteAt(in, i) == SuffixQuery:
		if isEndToken(in, i+1) {
			r := guard(ResultError, func() Result {
				return p.handler.Query(id)
			})
			p.printResult(r)
			return dispatched(in, i+1, r)
		}

	case byteAt(in, i) == SuffixSet:
		return p.parseSetParameters(in, i+1, id)

	case isEndToken(in, i):
		r := guard(ResultError, func() Result {
			return p.handler.Execute(id)
		})
		p.printResult(r)
		return dispatched(in, i, r)
	}
	return p.fail(ParseEndTokenExpected)
}

// parseSetParameters tokenizes the comma separated parameters starting at
// position i into the working buffer and calls the handler.
func (p *Parser) parseSetParameters(in []byte, i int, id int) (int, ParseResult) {
	buf := workbuf.New(p.alloc, p.bufferSize)
	if buf == nil {
		return p.fail(ParseNoHeap)
	}

	var (
		params    []string
		quoted    bool
		illFormed bool
		overflow  bool
	)

scan:
	for !isEndToken(in, i) {
		c := in[i]
		if quoted {
			if c == Quote {
				if byteAt(in, i+1) == ParameterSeparator || isEndToken(in, i+1) {
					quoted = false
					i++
					continue
				}
				// text after the closing double quotes
				illFormed = true
				break
			}
			if c == Escape && i+1 < len(in) && in[i+1] != 0 {
				i++
				c = in[i]
			}
		} else {
			switch c {
			case Quote:
				if buf.Pending() {
					// text before the opening double quotes
					illFormed = true
					break scan
				}
				quoted = true
				i++
				continue
			case ParameterSeparator:
				token, ok := buf.Seal()
				if !ok {
					overflow = true
					break scan
				}
				params = append(params, token)
				i++
				continue
			}
		}

		if !buf.Put(c) {
			overflow = true
			break
		}
		i++
	}

	if overflow {
		return p.fail(ParseSetOverflow)
	}
	if illFormed || quoted {
		return p.fail(ParseIllFormedString)
	}

	last, ok := buf.Seal()
	if !ok {
		return p.fail(ParseSetOverflow)
	}
	params = append(params, last)

	r := guard(ResultError, func() Result {
		return p.handler.Set(id, params)
	})
	p.printResult(r)
	return dispatched(in, i, r)
}
