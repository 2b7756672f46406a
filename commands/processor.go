// Package commands serves AT and shell command lines received from a peer.
//
// A Processor reads newline framed lines from a Transport. Lines starting with
// the AT preamble are parsed with the AT grammar, any other line with the
// shell grammar. Replies produced by either grammar or by the handlers are
// written back to the peer.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/afpineda/NuS-NimBLE-Serial/at"
	"github.com/afpineda/NuS-NimBLE-Serial/shell"
)

// Processor dispatches command lines to an AT handler and a shell handler.
//
// Execute, Write and PrintResponse are safe for concurrent use. Lines are
// executed one at a time. Handlers may call Write and PrintResponse but no
// other method, since the processor is busy executing their line.
type Processor struct {
	transport Transport
	logger    *slog.Logger

	// mu serializes line execution and guards the parsers and stats
	mu          sync.Mutex
	atParser    *at.Parser
	shellParser *shell.Parser
	lastShell   shell.ParseResult
	stats       Stats

	// outMu guards the writer of the line being executed
	outMu sync.RWMutex
	out   io.Writer

	closed      atomic.Bool
	loopRunning atomic.Bool
}

// Outcome is the result of executing one line.
type Outcome struct {
	// AT is the result of the AT grammar. ParseNoPreamble and
	// ParseNoCallbacks mean the line was handed to the shell grammar.
	AT at.ParseResult
	// Shell is the result of the shell grammar, valid when ViaShell is set.
	Shell shell.ParseResult
	// ViaShell is set when the line was parsed by the shell grammar.
	ViaShell bool
}

// Err returns nil for successful lines and the parsing error otherwise.
func (o Outcome) Err() error {
	if o.ViaShell {
		return o.Shell.Err()
	}
	if o.AT.Success() {
		return nil
	}
	return o.AT.Err()
}

func (o Outcome) String() string {
	if o.ViaShell {
		return "shell " + o.Shell.String()
	}
	return "at " + o.AT.String()
}

// Stats counts the lines executed by a Processor.
type Stats struct {
	Lines      int
	ATLines    int
	ShellLines int
	// ATResults counts AT lines by the result of their last command.
	ATResults map[at.ParseResult]int
	// ShellResults counts shell lines by result.
	ShellResults map[shell.ParseResult]int
}

// New creates a Processor serving the transport opened by the configured
// Dialer. Handlers are set afterwards with SetATHandler and SetShellHandler.
func New(ctx context.Context, config Config) (*Processor, error) {
	if config.dialer == nil {
		return nil, ErrNoDialer
	}
	config.setDefaults()

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial transport: %w", err)
	}

	p := &Processor{
		transport: transport,
		logger:    config.logger,
		stats: Stats{
			ATResults:    map[at.ParseResult]int{},
			ShellResults: map[shell.ParseResult]int{},
		},
	}
	p.shellParser = shell.NewParser(nil,
		shell.WithBufferSize(config.bufferSize),
		shell.WithAllocator(config.alloc),
	)
	p.atParser = at.NewParser(nil,
		at.WithBufferSize(config.bufferSize),
		at.WithLowerCasePreamble(config.lowerCase),
		at.WithAllocator(config.alloc),
	)
	p.atParser.SetFallback(p.parseShell)
	return p, nil
}

// parseShell runs with mu held, from within the AT parser.
func (p *Processor) parseShell(line []byte) {
	p.lastShell = p.shellParser.Parse(line)
}

// configure applies a configuration change unless a peer is attached. The
// flag is checked again under mu, since Loop sets it under mu as well.
func (p *Processor) configure(apply func()) error {
	if p == nil || p.atParser == nil {
		return ErrNotInitialized
	}
	// Handlers run with mu held
	if p.loopRunning.Load() {
		return ErrPeerAttached
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loopRunning.Load() {
		return ErrPeerAttached
	}
	apply()
	return nil
}

// SetATHandler sets the handler of AT command lines. A nil handler sends every
// line to the shell grammar.
func (p *Processor) SetATHandler(h at.Handler) error {
	return p.configure(func() {
		p.atParser.SetHandler(h)
	})
}

// SetShellHandler sets the handler of shell command lines.
func (p *Processor) SetShellHandler(h shell.Handler) error {
	return p.configure(func() {
		p.shellParser.SetHandler(h)
	})
}

// SetBufferSize sets the working buffer size of both grammars.
func (p *Processor) SetBufferSize(size int) error {
	return p.configure(func() {
		p.atParser.SetBufferSize(size)
		p.shellParser.SetBufferSize(size)
	})
}

// BufferSize returns the working buffer size of both grammars.
func (p *Processor) BufferSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.atParser.BufferSize()
}

// LowerCasePreamble sets whether "at" is accepted as well as "AT".
func (p *Processor) LowerCasePreamble(allow bool) error {
	return p.configure(func() {
		p.atParser.LowerCasePreamble(allow)
	})
}

// Execute parses and dispatches one command line, writing every reply to w.
// A nil w sends replies to the transport.
func (p *Processor) Execute(w io.Writer, line []byte) Outcome {
	if w == nil {
		w = p.transport
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.setOut(w)
	defer p.setOut(nil)

	p.lastShell = shell.ParseNoCallbacks
	o := Outcome{AT: p.atParser.Parse(w, line)}
	if o.AT == at.ParseNoPreamble || o.AT == at.ParseNoCallbacks {
		o.ViaShell = true
		o.Shell = p.lastShell
	}

	p.stats.Lines++
	if o.ViaShell {
		p.stats.ShellLines++
		p.stats.ShellResults[o.Shell]++
	} else {
		p.stats.ATLines++
		p.stats.ATResults[o.AT]++
	}

	p.logger.Debug("Line executed", "line", string(line), "outcome", o.String())
	return o
}

func (p *Processor) setOut(w io.Writer) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	p.out = w
}

// Write sends p to the writer of the line being executed or, outside of
// Execute, to the transport. Handlers use it to reply to the peer.
func (p *Processor) Write(b []byte) (int, error) {
	p.outMu.RLock()
	w := p.out
	p.outMu.RUnlock()

	if w == nil {
		if p.closed.Load() {
			return 0, ErrAlreadyClosed
		}
		w = p.transport
	}
	n, err := w.Write(b)
	if err != nil {
		p.logger.Warn("Failed to write reply", "error", err)
	}
	return n, err
}

// PrintResponse writes message enclosed in CR+LF pairs, the way AT replies
// are framed.
func (p *Processor) PrintResponse(message string) error {
	_, err := io.WriteString(p, at.CRLF+message+at.CRLF)
	return err
}

// Stats returns a snapshot of the execution counters.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.ATResults = maps.Clone(p.stats.ATResults)
	s.ShellResults = maps.Clone(p.stats.ShellResults)
	return s
}

// Loop reads command lines from the transport and executes each of them,
// replying through the transport. It returns nil when the transport reaches
// EOF, the read error if reading fails, or the context error once ctx is
// cancelled.
//
// While Loop runs the configuration of the Processor cannot be changed.
//
// Usage:
//
//	p, err := commands.New(ctx, config)
//	if err != nil { return err }
//	p.SetATHandler(app)
//	go p.Loop(ctx)
func (p *Processor) Loop(ctx context.Context) error {
	if p == nil || p.transport == nil {
		return ErrNotInitialized
	}
	if p.loopRunning.Load() {
		return ErrLoopRunning
	}
	p.mu.Lock()
	if p.loopRunning.Load() {
		p.mu.Unlock()
		return ErrLoopRunning
	}
	p.loopRunning.Store(true)
	p.mu.Unlock()
	defer p.loopRunning.Store(false)

	scanner := bufio.NewScanner(p.transport)
	scanner.Split(at.Splitter)

	lines := make(chan []byte, 10)
	scanErrs := make(chan error, 1)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			if len(scanner.Bytes()) == 0 {
				continue
			}
			// The scanner reuses its buffer
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			scanErrs <- err
		}
	}()

	p.logger.Info("Peer attached")
	defer p.logger.Info("Peer detached")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErrs:
					return fmt.Errorf("read transport: %w", err)
				default:
					return nil
				}
			}
			o := p.Execute(p.transport, line)
			if err := o.Err(); err != nil {
				p.logger.Debug("Line rejected", "error", err)
			}
		}
	}
}

// Close closes the transport. Closing twice returns ErrAlreadyClosed.
func (p *Processor) Close() error {
	if p == nil || p.transport == nil {
		return ErrNotInitialized
	}
	if !p.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	return p.transport.Close()
}
