package parser

import "strings"

// input is the unconsumed part of the text. Rules take an input and return the
// input left after what they matched, so backtracking is keeping the old value.
type input struct {
	src string
	pos int
}

func (in input) eof() bool {
	return in.pos >= len(in.src)
}

func (in input) peek() byte {
	if in.eof() {
		return 0
	}
	return in.src[in.pos]
}

func (in input) rest() string {
	return in.src[in.pos:]
}

func (in input) advance(n int) input {
	in.pos += n
	return in
}

func (in input) hasPrefix(s string) bool {
	return strings.HasPrefix(in.rest(), s)
}

func (in input) skipWS() input {
	for !in.eof() && isWhite(in.src[in.pos]) {
		in.pos++
	}
	return in
}

// atEOL reports whether the current line ends here.
func (in input) atEOL() bool {
	return in.eof() || in.hasPrefix("\n") || in.hasPrefix("\r\n")
}

func (in input) skipEOL() input {
	switch {
	case in.hasPrefix("\r\n"):
		return in.advance(2)
	case in.hasPrefix("\n"):
		return in.advance(1)
	}
	return in
}

// lineEnd returns the offset where the current line's content ends.
func (in input) lineEnd() int {
	i := strings.IndexByte(in.rest(), '\n')
	if i < 0 {
		return len(in.src)
	}
	end := in.pos + i
	if end > in.pos && in.src[end-1] == '\r' {
		end--
	}
	return end
}

// toEOL consumes the rest of the line content, leaving the line break.
func (in input) toEOL() (string, input) {
	end := in.lineEnd()
	return in.src[in.pos:end], input{src: in.src, pos: end}
}

func (in input) isBlankLine() bool {
	return in.skipWS().atEOL()
}

func (in input) startsIndented() bool {
	return !in.eof() && isWhite(in.src[in.pos])
}

// fail builds a syntax error at the current position.
func (in input) fail(expected string) *Error {
	span := in.src[in.pos:in.lineEnd()]
	if len(span) > maxSpan {
		span = span[:maxSpan]
	}
	return &Error{Kind: KindSyntax, Offset: in.pos, Expected: expected, Span: span}
}

func (in input) expect(tok string) (input, *Error) {
	if !in.hasPrefix(tok) {
		return in, in.fail("\"" + tok + "\"")
	}
	return in.advance(len(tok)), nil
}

// expectEOL requires the line to end after optional trailing whitespace.
func (in input) expectEOL() (input, *Error) {
	in = in.skipWS()
	if !in.atEOL() {
		return in, in.fail("end of line")
	}
	return in.skipEOL(), nil
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
