package workbuf

import "testing"

func TestBuffer(t *testing.T) {
	b := New(Make, 6)
	if b == nil {
		t.Fatal("New() returned nil")
	}

	for _, c := range []byte("ab") {
		if !b.Put(c) {
			t.Fatalf("Put(%q) failed", c)
		}
	}
	if !b.Pending() {
		t.Error("Pending() = false after Put")
	}
	token, ok := b.Seal()
	if !ok || token != "ab" {
		t.Fatalf("Seal() = %q, %v; want \"ab\", true", token, ok)
	}
	if b.Pending() {
		t.Error("Pending() = true after Seal")
	}

	// Empty tokens still take a terminator
	if token, ok := b.Seal(); !ok || token != "" {
		t.Fatalf("Seal() = %q, %v; want \"\", true", token, ok)
	}

	// Two bytes left out of six
	if !b.Put('c') || !b.Put('d') {
		t.Fatal("Put() failed with room left")
	}
	if b.Put('e') {
		t.Error("Put() succeeded past capacity")
	}
	if _, ok := b.Seal(); ok {
		t.Error("Seal() succeeded without room for the terminator")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		alloc Allocator
		ok    bool
	}{
		{name: "default allocator", alloc: nil, ok: true},
		{name: "failing allocator", alloc: func(int) []byte { return nil }, ok: false},
		{name: "short allocation", alloc: func(n int) []byte { return make([]byte, n-1) }, ok: false},
		{name: "larger allocation", alloc: func(n int) []byte { return make([]byte, 2*n) }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.alloc, 8)
			if (b != nil) != tt.ok {
				t.Fatalf("New() = %v, want ok %v", b, tt.ok)
			}
			if b == nil {
				return
			}
			// Larger allocations are cut down to the requested size
			for i := range 8 {
				if !b.Put('x') {
					t.Fatalf("Put() #%d failed", i+1)
				}
			}
			if b.Put('x') {
				t.Error("Put() succeeded past the requested size")
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{-1, MinSize},
		{0, MinSize},
		{MinSize - 1, MinSize},
		{MinSize, MinSize},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.size); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
