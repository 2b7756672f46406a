package at

// hasPreamble checks the first two bytes of in.
func hasPreamble(in []byte, lowerCase bool) bool {
	if len(in) < 2 {
		return false
	}
	if in[0] == Preamble[0] && in[1] == Preamble[1] {
		return true
	}
	return lowerCase && in[0] == LowerPreamble[0] && in[1] == LowerPreamble[1]
}

// isLineEnd checks for bytes terminating a whole command line.
func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r' || c == 0
}

// isPrefix checks for a command name prefix.
func isPrefix(c byte) bool {
	return c == PrefixGeneric || c == PrefixBasic
}

// isAlpha checks if a character is alphabetic
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isAlphaString reports whether name is made of alphabetic characters only.
// The empty string is alphabetic.
func isAlphaString(name []byte) bool {
	for _, c := range name {
		if !isAlpha(c) {
			return false
		}
	}
	return true
}

// isEndToken reports whether position i of in ends a single command.
// Positions past the end of in are end tokens.
func isEndToken(in []byte, i int) bool {
	if i >= len(in) {
		return true
	}
	return in[i] == CommandSeparator || isLineEnd(in[i])
}

// byteAt returns the byte at position i, or zero past the end of in.
func byteAt(in []byte, i int) byte {
	if i >= len(in) {
		return 0
	}
	return in[i]
}

// findSuffix returns the position of the first suffix or end token at or
// after i.
func findSuffix(in []byte, i int) int {
	for !isEndToken(in, i) && in[i] != SuffixQuery && in[i] != SuffixSet {
		i++
	}
	return i
}

// following returns the position where the next chained command starts, or
// -1 when parsing must stop. i points to the end token of the command just
// executed.
func following(in []byte, i int, r Result) int {
	if r.Failed() || i >= len(in) {
		return -1
	}
	if in[i] == CommandSeparator {
		return i + 1
	}
	return -1
}
