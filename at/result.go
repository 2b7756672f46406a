package at

import "fmt"

// Result is the outcome of executing an AT command, as reported by the
// application handler. Negative means error and non-negative means success.
type Result int

const (
	ResultSendFail     Result = -3 // Failure to send a command to a protocol stack
	ResultInvalidParam Result = -2 // Command not executed due to invalid or missing parameter(s)
	ResultError        Result = -1 // Command executed with no success
	ResultOK           Result = 0  // Command executed with success
	ResultSendOK       Result = 1  // Command sent to a protocol stack, execution pending
)

// Failed reports whether r denotes an error.
func (r Result) Failed() bool {
	return r < 0
}

// String returns the response text rendered for r. Unknown negative values
// render as ERROR and unknown positive values as SEND OK.
func (r Result) String() string {
	switch r {
	case ResultSendFail:
		return SendFail
	case ResultInvalidParam:
		return InvalidParams
	case ResultOK:
		return OK
	case ResultSendOK:
		return SendOK
	}
	if r < 0 {
		return ERROR
	}
	return SendOK
}

// ParseResult is the detailed outcome of parsing one AT command.
type ParseResult int

const (
	ParseOK                 ParseResult = iota // No parsing error
	ParseNoCallbacks                           // No handler set
	ParseNoPreamble                            // Not an AT command line
	ParseNoCommands                            // AT preamble found but no commands
	ParseInvalidPrefix                         // Prefix token was not found
	ParseInvalidCommandName                    // Empty name, too long, or "&" prefix with more than one letter
	ParseNonAlphabeticName                     // Command name contains non alphabetic characters
	ParseUnsupportedCommand                    // Valid command name not supported by the application
	ParseEndTokenExpected                      // Command end token was expected but not found
	ParseSetOverflow                           // Parameters of a set command exceed the buffer size
	ParseIllFormedString                       // String parameter not properly enclosed between double quotes
	ParseNoHeap                                // Unable to allocate the working buffer
	ParseExecutionFailed                       // Command dispatched, handler reported an error
)

var parseResultNames = [...]string{
	ParseOK:                 "ok",
	ParseNoCallbacks:        "no callbacks",
	ParseNoPreamble:         "no preamble",
	ParseNoCommands:         "no commands",
	ParseInvalidPrefix:      "invalid prefix",
	ParseInvalidCommandName: "invalid command name",
	ParseNonAlphabeticName:  "non alphabetic command name",
	ParseUnsupportedCommand: "unsupported command",
	ParseEndTokenExpected:   "end token expected",
	ParseSetOverflow:        "parameters overflow",
	ParseIllFormedString:    "ill-formed string",
	ParseNoHeap:             "no heap",
	ParseExecutionFailed:    "execution failed",
}

func (r ParseResult) String() string {
	if r < 0 || int(r) >= len(parseResultNames) {
		return fmt.Sprintf("ParseResult(%d)", int(r))
	}
	return parseResultNames[r]
}

// Success reports whether r is a non-error outcome.
func (r ParseResult) Success() bool {
	return r == ParseOK || r == ParseNoCommands
}

// Err returns nil for successful outcomes and a *ParseError otherwise.
func (r ParseResult) Err() error {
	if r.Success() {
		return nil
	}
	return &ParseError{Result: r}
}

// ParseError wraps a failed ParseResult so it can travel as an error.
type ParseError struct {
	Result ParseResult
}

func (e *ParseError) Error() string {
	return "at: " + e.Result.String()
}

// Is matches any *ParseError carrying the same result.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Result == e.Result
}
