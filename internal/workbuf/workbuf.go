// Package workbuf provides the bounded scratch buffer used by the command
// grammars. Every write is checked against the configured capacity.
package workbuf

// MinSize is the smallest capacity a grammar may be configured with.
const MinSize = 5

// DefaultSize is the capacity used when none is configured.
const DefaultSize = 64

// Allocator reserves a byte slice of the requested length. It returns nil when
// memory cannot be reserved.
type Allocator func(size int) []byte

// Make is the default Allocator.
func Make(size int) []byte {
	return make([]byte, size)
}

// Buffer is a fixed capacity area split into consecutive tokens. Each sealed
// token consumes one extra slot as its terminator, so the capacity accounts
// for the token contents plus one byte per token.
type Buffer struct {
	b     []byte
	n     int
	start int
}

// New reserves a Buffer of the given size through alloc. It returns nil if
// the allocator fails.
func New(alloc Allocator, size int) *Buffer {
	if alloc == nil {
		alloc = Make
	}
	b := alloc(size)
	if b == nil || len(b) < size {
		return nil
	}
	return &Buffer{b: b[:size]}
}

// Put appends c to the current token. It reports false when the buffer is full.
func (w *Buffer) Put(c byte) bool {
	if w.n >= len(w.b) {
		return false
	}
	w.b[w.n] = c
	w.n++
	return true
}

// Pending reports whether the current token holds any byte.
func (w *Buffer) Pending() bool {
	return w.n > w.start
}

// Seal terminates the current token and returns its contents. ok is false
// when there is no room left for the terminator.
func (w *Buffer) Seal() (token string, ok bool) {
	if w.n >= len(w.b) {
		return "", false
	}
	token = string(w.b[w.start:w.n])
	w.b[w.n] = 0
	w.n++
	w.start = w.n
	return token, true
}

// Clamp applies the MinSize floor to a requested size.
func Clamp(size int) int {
	if size < MinSize {
		return MinSize
	}
	return size
}
