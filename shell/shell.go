// Package shell parses command lines made of space separated words, where
// words may be enclosed in double quotes. A double quote inside a quoted word
// is written twice:
//
//	echo "say ""hello""" ""
//
// is parsed as the words `echo`, `say "hello"` and an empty word.
package shell

import "fmt"

const (
	Quote = '"'
	Space = ' '
	Tab   = '\t'
)

// ParseResult is the detailed outcome of parsing one shell command line.
type ParseResult int

const (
	ParseOK              ParseResult = iota // No parsing error
	ParseNoCallbacks                        // No handler set
	ParseNoCommand                          // Command line is empty
	ParseBufferOverflow                     // Command line exceeds the buffer size
	ParseIllFormedString                    // A word is not properly enclosed between double quotes
	ParseNoHeap                             // Unable to allocate the working buffer
)

var parseResultNames = [...]string{
	ParseOK:              "ok",
	ParseNoCallbacks:     "no callbacks",
	ParseNoCommand:       "no command",
	ParseBufferOverflow:  "buffer overflow",
	ParseIllFormedString: "ill-formed string",
	ParseNoHeap:          "no heap",
}

func (r ParseResult) String() string {
	if r < 0 || int(r) >= len(parseResultNames) {
		return fmt.Sprintf("ParseResult(%d)", int(r))
	}
	return parseResultNames[r]
}

// Err returns nil for ParseOK and a *ParseError otherwise.
func (r ParseResult) Err() error {
	if r == ParseOK {
		return nil
	}
	return &ParseError{Result: r}
}

// ParseError wraps a failed ParseResult so it can travel as an error.
type ParseError struct {
	Result ParseResult
}

func (e *ParseError) Error() string {
	return "shell: " + e.Result.String()
}

// Is matches any *ParseError carrying the same result.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Result == e.Result
}
