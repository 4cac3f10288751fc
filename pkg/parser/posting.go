package parser

import (
	"strings"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
)

func status(in input) (journal.Status, input) {
	switch in.peek() {
	case '!':
		return journal.StatusPending, in.advance(1).skipWS()
	case '*':
		return journal.StatusCleared, in.advance(1).skipWS()
	}
	return journal.StatusNone, in
}

// account reads up to two spaces, a tab, a ';' or the end of the line,
// and unwraps the virtual-posting brackets.
func account(in input) (string, journal.Reality, input, *Error) {
	start := in
	end := in.lineEnd()
	i := in.pos
	for ; i < end; i++ {
		c := in.src[i]
		if c == '\t' || c == ';' || (c == ' ' && i+1 < end && in.src[i+1] == ' ') {
			break
		}
	}
	name := strings.TrimRight(in.src[in.pos:i], " ")
	if name == "" {
		return "", journal.Real, start, in.fail("account")
	}
	in.pos = i

	reality := journal.Real
	if n := len(name); n > 2 {
		switch {
		case name[0] == '(' && name[n-1] == ')':
			reality, name = journal.UnbalancedVirtual, name[1:n-1]
		case name[0] == '[' && name[n-1] == ']':
			reality, name = journal.BalancedVirtual, name[1:n-1]
		}
	}
	return name, reality, in, nil
}

// lotPrice parses {unit} or {{total}}.
func lotPrice(in input) (*journal.Price, input, *Error) {
	open, closing, kind := "{", "}", journal.PriceUnit
	if in.hasPrefix("{{") {
		open, closing, kind = "{{", "}}", journal.PriceTotal
	}
	start := in
	in = in.advance(len(open))
	a, in, err := amount(in)
	if err != nil {
		return nil, start, err
	}
	if in, err = in.skipWS().expect(closing); err != nil {
		return nil, start, err
	}
	return &journal.Price{Type: kind, Amount: a}, in, nil
}

// postedPrice parses @ unit or @@ total.
func postedPrice(in input) (*journal.Price, input, *Error) {
	start := in
	kind, width := journal.PriceUnit, 1
	if in.hasPrefix("@@") {
		kind, width = journal.PriceTotal, 2
	}
	a, in, err := amount(in.advance(width))
	if err != nil {
		return nil, start, err
	}
	return &journal.Price{Type: kind, Amount: a}, in, nil
}

// balance parses what follows '=': the literal 0, or an amount.
func balance(in input) (*journal.Balance, input, *Error) {
	in = in.skipWS()
	if in.peek() == '0' {
		after := in.advance(1).skipWS()
		if after.atEOL() || after.peek() == ';' {
			b := journal.ZeroBalance()
			return &b, in.advance(1), nil
		}
	}
	a, rest, err := amount(in)
	if err != nil {
		return nil, in, err
	}
	b := journal.AmountBalance(a)
	return &b, rest, nil
}

// commentText reads a comment whose marker is at the current position.
// One space after the marker is part of the syntax, not of the text.
func commentText(in input) (string, input) {
	in = in.advance(1)
	if in.peek() == ' ' {
		in = in.advance(1)
	}
	return in.toEOL()
}

// posting parses one posting line without its indentation or line break.
// The returned slice holds the inline comment, if any.
func posting(in input) (journal.Posting, []string, input, *Error) {
	var p journal.Posting
	var comments []string

	p.Status, in = status(in)
	name, reality, in, err := account(in)
	if err != nil {
		return p, nil, in, err
	}
	p.Account, p.Reality = name, reality

	in = in.skipWS()
	if !in.atEOL() && in.peek() != ';' && in.peek() != '=' {
		a, rest, err := amount(in)
		if err != nil {
			return p, nil, in, err
		}
		pa := &journal.PostingAmount{Amount: a}
		in = rest.skipWS()
		if in.peek() == '{' {
			if pa.LotPrice, in, err = lotPrice(in); err != nil {
				return p, nil, in, err
			}
			in = in.skipWS()
		}
		if in.peek() == '@' {
			if pa.Price, in, err = postedPrice(in); err != nil {
				return p, nil, in, err
			}
			in = in.skipWS()
		}
		p.Amount = pa
	}

	if in.peek() == '=' {
		if p.Balance, in, err = balance(in.advance(1)); err != nil {
			return p, nil, in, err
		}
		in = in.skipWS()
	}

	if in.peek() == ';' {
		var text string
		text, in = commentText(in)
		comments = append(comments, text)
	}
	if !in.atEOL() {
		return p, nil, in, in.fail("end of posting")
	}
	return p, comments, in, nil
}

// block parses the indented lines under a header: comment lines before the first
// posting belong to the header, later ones to the posting they follow.
func block(in input) ([]string, []journal.Posting, input, *Error) {
	var headerComments []string
	var postings []journal.Posting
	var postingComments [][]string

	for in.startsIndented() && !in.isBlankLine() {
		line := in.skipWS()
		if line.peek() == ';' {
			text, rest := commentText(line)
			if len(postings) == 0 {
				headerComments = append(headerComments, text)
			} else {
				last := len(postings) - 1
				postingComments[last] = append(postingComments[last], text)
			}
			in = rest.skipEOL()
			continue
		}

		p, comments, rest, err := posting(line)
		if err != nil {
			return nil, nil, in, err
		}
		postings = append(postings, p)
		postingComments = append(postingComments, comments)
		in = rest.skipEOL()
	}

	for i := range postings {
		postings[i].Comment = strings.Join(postingComments[i], "\n")
	}
	return headerComments, postings, in, nil
}
