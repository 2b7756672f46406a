package at

import (
	"bufio"
	"bytes"
)

// Splitter is used for framing command packets out of a byte stream. It uses
// the signature of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// Each packet is terminated by a line feed. A carriage return right before
// the line feed is dropped, so both "\n" and "\r\n" terminals are accepted.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final packet.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, dropCR(data[0:i]), nil
	}

	if atEOF {
		return len(data), dropCR(data), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[0 : len(data)-1]
	}
	return data
}

// Classify identifies whether a received line belongs to the AT grammar.
// lowerCase allows the "at" preamble.
func Classify(line []byte, lowerCase bool) LineType {
	if !hasPreamble(line, lowerCase) {
		return TypeOther
	}
	if len(line) == 2 || isLineEnd(line[2]) {
		return TypeProbe
	}
	if isPrefix(line[2]) {
		return TypeCommands
	}
	return TypeOther
}
