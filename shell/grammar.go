package shell

import "github.com/afpineda/NuS-NimBLE-Serial/internal/workbuf"

func isSeparator(c byte) bool {
	return c == Space || c == Tab
}

// isControl checks for bytes ending the command line.
func isControl(c byte) bool {
	return c < ' ' && c != Tab
}

// isWordEnd reports whether position i of in ends an unquoted word.
func isWordEnd(in []byte, i int) bool {
	return i >= len(in) || isSeparator(in[i]) || isControl(in[i])
}

// skipSeparators returns the position of the next word, or -1 when the line
// has no more words.
func skipSeparators(in []byte, i int) int {
	for i < len(in) && isSeparator(in[i]) {
		i++
	}
	if i >= len(in) || isControl(in[i]) {
		return -1
	}
	return i
}

// tokenize splits in into words, copying them to buf.
func tokenize(in []byte, buf *workbuf.Buffer) ([]string, ParseResult) {
	i := skipSeparators(in, 0)
	if i < 0 {
		return nil, ParseNoCommand
	}

	var words []string
	for i >= 0 {
		if in[i] == Quote {
			i++
			closed := false
			for i < len(in) && !isControl(in[i]) {
				if in[i] == Quote {
					if i+1 < len(in) && in[i+1] == Quote {
						// Escaped double quotes
						if !buf.Put(Quote) {
							return nil, ParseBufferOverflow
						}
						i += 2
						continue
					}
					closed = true
					i++
					break
				}
				if !buf.Put(in[i]) {
					return nil, ParseBufferOverflow
				}
				i++
			}
			if !closed || !isWordEnd(in, i) {
				// No closing double quotes or text after closing double quotes
				return nil, ParseIllFormedString
			}
		} else {
			for !isWordEnd(in, i) {
				if !buf.Put(in[i]) {
					return nil, ParseBufferOverflow
				}
				i++
			}
		}

		word, ok := buf.Seal()
		if !ok {
			return nil, ParseBufferOverflow
		}
		words = append(words, word)
		i = skipSeparators(in, i)
	}
	return words, ParseOK
}

// Tokenize splits a command line into words using a working buffer of the
// given size. Nothing past len(in) is read.
func Tokenize(in []byte, size int) ([]string, ParseResult) {
	return tokenize(in, workbuf.New(workbuf.Make, workbuf.Clamp(size)))
}
