package parser

import (
	"strings"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
)

// transaction parses a header line
//
//	DATE[=EFFECTIVE] [STATUS] [(CODE)] DESCRIPTION [; COMMENT]
//
// and the indented block below it.
func transaction(in input) (journal.Transaction, input, *Error) {
	var tx journal.Transaction
	start := in

	d, in, err := date(in)
	if err != nil {
		return tx, start, err
	}
	tx.Date = d
	if in.peek() == '=' {
		eff, rest, err := date(in.advance(1))
		if err != nil {
			return tx, start, err
		}
		tx.EffectiveDate = &eff
		in = rest
	}
	if !in.atEOL() && !isWhite(in.peek()) {
		return tx, start, in.fail("whitespace after date")
	}

	in = in.skipWS()
	tx.Status, in = status(in)
	if in.peek() == '(' {
		end := strings.IndexByte(in.src[in.pos:in.lineEnd()], ')')
		if end < 0 {
			return tx, start, in.fail("closing ) of transaction code")
		}
		tx.Code = in.src[in.pos+1 : in.pos+end]
		in = in.advance(end + 1).skipWS()
	}

	var comments []string
	tx.Description, comments, in = description(in)
	in = in.skipEOL()

	blockComments, postings, in, err := block(in)
	if err != nil {
		return tx, start, err
	}
	tx.Comment = strings.Join(append(comments, blockComments...), "\n")
	tx.Postings = postings
	return tx, in, nil
}

// description reads header text up to an optional trailing comment.
func description(in input) (string, []string, input) {
	end := in.lineEnd()
	text := in.src[in.pos:end]
	i := strings.IndexByte(text, ';')
	if i < 0 {
		return strings.TrimRight(text, " \t"), nil, input{src: in.src, pos: end}
	}
	comment, rest := commentText(in.advance(i))
	return strings.TrimRight(text[:i], " \t"), []string{comment}, rest
}
