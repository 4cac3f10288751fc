// Package parser turns journal text into a journal.Document.
//
// Parsing is a single pass over a fully buffered text. Alternatives are tried in a
// fixed order and only inside the item being parsed; once an item has started, a
// failure aborts the whole document.
package parser

import (
	"time"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/shopspring/decimal"
)

// ParseDocument parses a complete journal text.
func ParseDocument(text string) (journal.Document, error) {
	var doc journal.Document
	in := input{src: text}
	for !in.eof() {
		item, rest, err := documentItem(in)
		if err != nil {
			return journal.Document{}, locate(text, err)
		}
		doc.Items = append(doc.Items, item)
		in = rest
	}
	return doc, nil
}

// documentItem classifies the line by its first character and parses one item.
func documentItem(in input) (journal.Item, input, *Error) {
	if in.isBlankLine() {
		_, rest := in.toEOL()
		return journal.EmptyLine{}, rest.skipEOL(), nil
	}

	switch c := in.peek(); {
	case c == ';' || c == '#' || c == '%':
		text, rest := commentText(in)
		return journal.LineComment{Text: text}, rest.skipEOL(), nil
	case isDigit(c):
		tx, rest, err := transaction(in)
		if err != nil {
			return nil, in, err
		}
		return tx, rest, nil
	case c == '~':
		ptx, rest, err := periodicTransaction(in)
		if err != nil {
			return nil, in, err
		}
		return ptx, rest, nil
	case c == 'P':
		cp, rest, err := commodityPrice(in)
		if err != nil {
			return nil, in, err
		}
		return cp, rest, nil
	case in.hasPrefix("include"):
		inc, rest, err := include(in)
		if err != nil {
			return nil, in, err
		}
		return inc, rest, nil
	}
	return nil, in, in.fail("transaction, periodic transaction, price, include, comment or blank line")
}

// ParsePosting parses a single posting line. Leading indentation is optional and
// the whole text must be consumed.
func ParsePosting(text string) (journal.Posting, error) {
	in := input{src: text}.skipWS()
	p, comments, rest, err := posting(in)
	if err == nil {
		rest, err = rest.expectEOL()
	}
	if err == nil && !rest.eof() {
		err = rest.fail("end of input")
	}
	if err != nil {
		return journal.Posting{}, locate(text, err)
	}
	if len(comments) > 0 {
		p.Comment = comments[0]
	}
	return p, nil
}

// ParseDate parses a YYYY-MM-DD date (separators -, / or .) at the start of text
// and returns the remaining text.
func ParseDate(text string) (time.Time, string, error) {
	d, rest, err := date(input{src: text})
	if err != nil {
		return time.Time{}, text, locate(text, err)
	}
	return d, rest.rest(), nil
}

// ParseQuantity parses an exact decimal quantity at the start of text.
func ParseQuantity(text string) (decimal.Decimal, string, error) {
	q, rest, err := quantity(input{src: text})
	if err != nil {
		return decimal.Decimal{}, text, locate(text, err)
	}
	return q, rest.rest(), nil
}

// ParseCommodity parses a quoted or bare commodity name at the start of text.
func ParseCommodity(text string) (string, string, error) {
	name, rest, err := commodity(input{src: text})
	if err != nil {
		return "", text, locate(text, err)
	}
	return name, rest.rest(), nil
}

// ParseAmount parses an amount with its commodity on either side.
func ParseAmount(text string) (journal.Amount, string, error) {
	a, rest, err := amount(input{src: text})
	if err != nil {
		return journal.Amount{}, text, locate(text, err)
	}
	return a, rest.rest(), nil
}
