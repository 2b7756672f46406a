package shell_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/afpineda/NuS-NimBLE-Serial/shell"
)

func TestMux(t *testing.T) {
	tests := []struct {
		name          string
		caseSensitive bool
		line          string
		want          string
	}{
		{name: "exact match", line: "get x", want: "get:x"},
		{name: "case insensitive by default", line: "GET x", want: "get:x"},
		{name: "case sensitive", caseSensitive: true, line: "GET x", want: "unknown:GET"},
		{name: "first registration wins", line: "dup", want: "dup1:"},
		{name: "unknown command", line: "reboot", want: "unknown:reboot"},
		{name: "parse error", line: `get "x`, want: "error:ill-formed string"},
		{name: "empty line", line: "", want: "error:no command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			record := func(tag string) shell.Func {
				return func(args []string) {
					got = append(got, tag+":"+strings.Join(args[1:], ","))
				}
			}

			mux := shell.NewMux().
				Handle("get", record("get")).
				Handle("dup", record("dup1")).
				Handle("DUP", record("dup2")).
				HandleUnknown(func(args []string) {
					got = append(got, "unknown:"+args[0])
				}).
				HandleParseError(func(result shell.ParseResult) {
					got = append(got, "error:"+result.String())
				})
			if previous := mux.CaseSensitive(tt.caseSensitive); previous {
				t.Error("CaseSensitive() previous = true, want false")
			}

			shell.NewParser(mux).Parse([]byte(tt.line))

			if !reflect.DeepEqual(got, []string{tt.want}) {
				t.Errorf("dispatched %q, want [%q]", got, tt.want)
			}
		})
	}
}

func TestMuxRegistration(t *testing.T) {
	mux := shell.NewMux().
		Handle("", func([]string) {}).
		Handle("nil", nil).
		Handle("ok", func([]string) {})

	if got := mux.Names(); !reflect.DeepEqual(got, []string{"ok"}) {
		t.Errorf("Names() = %q, want [\"ok\"]", got)
	}

	// Names returns a copy
	mux.Names()[0] = "changed"
	if got := mux.Names(); got[0] != "ok" {
		t.Errorf("Names() = %q after modifying a copy", got)
	}

	mux.CaseSensitive(true)
	if previous := mux.CaseSensitive(false); !previous {
		t.Error("CaseSensitive() previous = false, want true")
	}
}

func TestMuxWithoutHooks(t *testing.T) {
	mux := shell.NewMux()
	p := shell.NewParser(mux)

	// Unknown commands and parse errors are dropped silently
	if got := p.Parse([]byte("anything")); got != shell.ParseOK {
		t.Errorf("Parse() = %v, want %v", got, shell.ParseOK)
	}
	if got := p.Parse([]byte(`"open`)); got != shell.ParseIllFormedString {
		t.Errorf("Parse() = %v, want %v", got, shell.ParseIllFormedString)
	}
	mux.Execute(nil)
}
