package shell

import "github.com/afpineda/NuS-NimBLE-Serial/internal/workbuf"

// Parser parses shell command lines and dispatches them to a Handler.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	handler    Handler
	bufferSize int
	alloc      workbuf.Allocator
}

// Option configures a Parser.
type Option func(*Parser)

// WithBufferSize sets the size of the working buffer. See SetBufferSize.
func WithBufferSize(size int) Option {
	return func(p *Parser) {
		p.SetBufferSize(size)
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

// SetBufferSize sets the size of the working buffer. Every word takes its
// length plus one byte. Sizes below workbuf.MinSize are raised to it.
func (p *Parser) SetBufferSize(size int) {
	p.bufferSize = workbuf.Clamp(size)
}

// BufferSize returns the size of the working buffer.
func (p *Parser) BufferSize() int {
	return p.bufferSize
}

// Parse parses one command line. On success the handler's Execute is called
// once with every word. On failure nothing is executed and, if the handler
// implements ParseErrorHandler, it is told why. Handler panics are discarded.
func (p *Parser) Parse(in []byte) ParseResult {
	if p.handler == nil {
		return ParseNoCallbacks
	}

	result := ParseNoCommand
	var words []string
	if skipSeparators(in, 0) >= 0 {
		// Read the size once, handlers may change it
		if buf := workbuf.New(p.alloc, p.bufferSize); buf != nil {
			words, result = tokenize(in, buf)
		} else {
			result = ParseNoHeap
		}
	}

	if result == ParseOK {
		shield(func() {
			p.handler.Execute(words)
		})
		return result
	}

	if h, ok := p.handler.(ParseErrorHandler); ok {
		shield(func() {
			h.ParseError(result)
		})
	}
	return result
}
