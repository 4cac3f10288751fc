package parser

import (
	"strings"
	"time"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
)

// requireWS consumes at least one space or tab.
func requireWS(in input, what string) (input, *Error) {
	if !isWhite(in.peek()) {
		return in, in.fail(what)
	}
	return in.skipWS(), nil
}

// commodityPrice parses
//
//	P DATE [HH:MM:SS] COMMODITY AMOUNT
func commodityPrice(in input) (journal.CommodityPrice, input, *Error) {
	var cp journal.CommodityPrice
	start := in

	in, err := in.expect("P")
	if err != nil {
		return cp, start, err
	}
	if in, err = requireWS(in, "whitespace after P"); err != nil {
		return cp, start, err
	}
	d, in, err := date(in)
	if err != nil {
		return cp, start, err
	}
	if in, err = requireWS(in, "whitespace after date"); err != nil {
		return cp, start, err
	}

	var hour, minute, second int
	if isDigit(in.peek()) {
		if hour, minute, second, in, err = clock(in); err != nil {
			return cp, start, err
		}
		if in, err = requireWS(in, "whitespace after time"); err != nil {
			return cp, start, err
		}
	}
	cp.DateTime = time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, time.UTC)

	if cp.CommodityName, in, err = commodity(in); err != nil {
		return cp, start, err
	}
	if cp.Amount, in, err = amount(in); err != nil {
		return cp, start, err
	}
	if in, err = in.expectEOL(); err != nil {
		return cp, start, err
	}
	return cp, in, nil
}

// include parses "include PATH".
func include(in input) (journal.Include, input, *Error) {
	start := in
	in, err := in.expect("include")
	if err != nil {
		return journal.Include{}, start, err
	}
	if in, err = requireWS(in, "whitespace after include"); err != nil {
		return journal.Include{}, start, err
	}
	path, rest := in.toEOL()
	path = strings.TrimRight(path, " \t")
	if path == "" {
		return journal.Include{}, start, in.fail("include path")
	}
	return journal.Include{Path: path}, rest.skipEOL(), nil
}
