package at

const (
	// Terminal Control
	CRLF = "\r\n"

	// Preamble
	Preamble      = "AT"
	LowerPreamble = "at"

	// Prefixes
	PrefixGeneric = '+'
	PrefixBasic   = '&'

	// Suffixes
	SuffixQuery = '?'
	SuffixSet   = '='

	// Separators
	CommandSeparator   = ';'
	ParameterSeparator = ','
	Quote              = '"'
	Escape             = '\\'

	// Response Codes
	OK            = "OK"
	ERROR         = "ERROR"
	InvalidParams = "INVALID INPUT PARAMETERS"
	SendOK        = "SEND OK"
	SendFail      = "SEND FAIL"
)

// LineType tells how a received line must be handled.
type LineType int

const (
	TypeOther    LineType = iota // No AT preamble, belongs to another grammar
	TypeProbe                    // Bare preamble, no commands
	TypeCommands                 // Preamble followed by at least one prefix
)

func (t LineType) String() string {
	switch t {
	case TypeProbe:
		return "probe"
	case TypeCommands:
		return "commands"
	default:
		return "other"
	}
}
