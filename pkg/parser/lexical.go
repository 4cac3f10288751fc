package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/shopspring/decimal"
)

func isDateSeparator(c byte) bool {
	return c == '-' || c == '/' || c == '.'
}

// isCommodityChar covers ASCII letters, '$' and every byte of a multi-byte UTF-8 rune.
// Digits are excluded, so a bare commodity stops at the first digit.
func isCommodityChar(c byte) bool {
	return isLetter(c) || c == '$' || c > 0x7F
}

// number reads exactly n digits.
func number(in input, n int) (int, input, *Error) {
	if len(in.rest()) < n {
		return 0, in, in.fail(strconv.Itoa(n) + " digits")
	}
	for i := 0; i < n; i++ {
		if !isDigit(in.src[in.pos+i]) {
			return 0, in, in.advance(i).fail("digit")
		}
	}
	v, _ := strconv.Atoi(in.src[in.pos : in.pos+n])
	return v, in.advance(n), nil
}

func dateSeparator(in input) (input, *Error) {
	if !isDateSeparator(in.peek()) {
		return in, in.fail("date separator (-, / or .)")
	}
	return in.advance(1), nil
}

// date parses YYYY?MM?DD where each ? is any of - / . on its own.
func date(in input) (time.Time, input, *Error) {
	start := in
	year, in, err := number(in, 4)
	if err != nil {
		return time.Time{}, start, err
	}
	if in, err = dateSeparator(in); err != nil {
		return time.Time{}, start, err
	}
	month, in, err := number(in, 2)
	if err != nil {
		return time.Time{}, start, err
	}
	if in, err = dateSeparator(in); err != nil {
		return time.Time{}, start, err
	}
	day, in, err := number(in, 2)
	if err != nil {
		return time.Time{}, start, err
	}

	d := journal.Date(year, time.Month(month), day)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, start, &Error{
			Kind:     KindNonExistingDate,
			Offset:   start.pos,
			Expected: "calendar date",
			Span:     start.src[start.pos:in.pos],
		}
	}
	return d, in, nil
}

// clock parses HH:MM:SS.
func clock(in input) (hour, minute, second int, rest input, err *Error) {
	start := in
	if hour, in, err = number(in, 2); err != nil {
		return 0, 0, 0, start, err
	}
	if in, err = in.expect(":"); err != nil {
		return 0, 0, 0, start, err
	}
	if minute, in, err = number(in, 2); err != nil {
		return 0, 0, 0, start, err
	}
	if in, err = in.expect(":"); err != nil {
		return 0, 0, 0, start, err
	}
	if second, in, err = number(in, 2); err != nil {
		return 0, 0, 0, start, err
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, start, &Error{
			Kind:     KindNonExistingDate,
			Offset:   start.pos,
			Expected: "time of day",
			Span:     start.src[start.pos:in.pos],
		}
	}
	return hour, minute, second, in, nil
}

func digits(in input) input {
	for !in.eof() && isDigit(in.peek()) {
		in = in.advance(1)
	}
	return in
}

// quantity parses -?[0-9]+(\.[0-9]+)? keeping the scale of the text.
func quantity(in input) (decimal.Decimal, input, *Error) {
	start := in
	if in.peek() == '-' {
		in = in.advance(1)
	}
	if !isDigit(in.peek()) {
		return decimal.Decimal{}, start, in.fail("quantity")
	}
	in = digits(in)
	if in.peek() == '.' {
		if frac := in.advance(1); isDigit(frac.peek()) {
			in = digits(frac)
		}
	}
	q, convErr := decimal.NewFromString(start.src[start.pos:in.pos])
	if convErr != nil {
		return decimal.Decimal{}, start, start.fail("quantity")
	}
	return q, in, nil
}

// commodity parses either "quoted text" or a bare symbol such as $, EUR or €.
func commodity(in input) (string, input, *Error) {
	start := in
	if in.peek() == '"' {
		in = in.advance(1)
		end := strings.IndexAny(in.rest(), "\"\n")
		if end <= 0 || in.src[in.pos+end] != '"' {
			return "", start, in.fail("quoted commodity")
		}
		name := in.src[in.pos : in.pos+end]
		return name, in.advance(end + 1), nil
	}
	if !isCommodityChar(in.peek()) {
		return "", start, in.fail("commodity")
	}
	for !in.eof() && isCommodityChar(in.peek()) {
		in = in.advance(1)
	}
	return start.src[start.pos:in.pos], in, nil
}

// amount tries, in order: -? commodity quantity (left), quantity commodity (right),
// and a bare quantity (right, empty commodity). Whitespace between tokens is ignored.
func amount(in input) (journal.Amount, input, *Error) {
	a, rest, errLeft := leftAmount(in)
	if errLeft == nil {
		return a, rest, nil
	}
	a, rest, errRight := rightAmount(in)
	if errRight == nil {
		return a, rest, nil
	}
	q, rest, errBare := quantity(in.skipWS())
	if errBare == nil {
		return journal.Amount{
			Quantity:  q,
			Commodity: journal.Commodity{Position: journal.CommodityRight},
		}, rest, nil
	}
	err := furthest(furthest(errLeft, errRight), errBare)
	if at := in.skipWS(); err.Offset == at.pos {
		err = at.fail("amount")
	}
	return journal.Amount{}, in, err
}

func leftAmount(in input) (journal.Amount, input, *Error) {
	start := in
	in = in.skipWS()
	negative := false
	if in.peek() == '-' {
		negative = true
		in = in.advance(1).skipWS()
	}
	name, in, err := commodity(in)
	if err != nil {
		return journal.Amount{}, start, err
	}
	q, in, err := quantity(in.skipWS())
	if err != nil {
		return journal.Amount{}, start, err
	}
	if negative {
		q = q.Neg()
	}
	return journal.Amount{
		Quantity:  q,
		Commodity: journal.Commodity{Name: name, Position: journal.CommodityLeft},
	}, in, nil
}

func rightAmount(in input) (journal.Amount, input, *Error) {
	start := in
	q, in, err := quantity(in.skipWS())
	if err != nil {
		return journal.Amount{}, start, err
	}
	name, in, err := commodity(in.skipWS())
	if err != nil {
		return journal.Amount{}, start, err
	}
	return journal.Amount{
		Quantity:  q,
		Commodity: journal.Commodity{Name: name, Position: journal.CommodityRight},
	}, in, nil
}
