package commands

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// TestTransport is an in-memory Transport for tests. Reads block until data
// is queued with SendLine or the transport is closed, the way a serial port
// waits for the peer. Close only ends the read side: everything written,
// before or after Close, is kept and returned by Written.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	done     chan struct{}
	pending  []byte
	written  bytes.Buffer
	closed   bool
}

// NewTestTransport creates an open TestTransport.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 10),
		done:     make(chan struct{}),
	}
}

// Dialer returns a Dialer handing out t.
func (t *TestTransport) Dialer() Dialer {
	return DialerFunc(func(context.Context) (Transport, error) {
		return t, nil
	})
}

func (t *TestTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written.Write(p)
}

func (t *TestTransport) Read(p []byte) (int, error) {
	if len(t.pending) == 0 {
		select {
		case data := <-t.readChan:
			t.pending = data
		case <-t.done:
			// Lines queued before Close are still delivered
			select {
			case data := <-t.readChan:
				t.pending = data
			default:
				return 0, io.EOF
			}
		}
	}
	n := copy(p, t.pending)
	t.pending = t.pending[n:]
	return n, nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.done)
	return nil
}

// SendLine queues data to be read from the transport, as if the peer had
// sent it. It blocks while the queue is full and drops data once the
// transport is closed.
func (t *TestTransport) SendLine(data string) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return
	}
	select {
	case t.readChan <- []byte(data):
	case <-t.done:
	}
}

// Written returns everything written to the transport so far.
func (t *TestTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written.String()
}
