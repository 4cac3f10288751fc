package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
)

// word reads a run of ASCII letters.
func word(in input) (string, input) {
	start := in
	for !in.eof() && isLetter(in.peek()) {
		in = in.advance(1)
	}
	return strings.ToLower(start.src[start.pos:in.pos]), in
}

var keywordPeriods = map[string]journal.Period{
	"daily":   journal.Daily(),
	"weekly":  journal.Weekly(),
	"monthly": journal.Monthly(),
	"yearly":  journal.Yearly(),
}

var everyPeriods = map[string]journal.Period{
	"day":   journal.Daily(),
	"week":  journal.Weekly(),
	"month": journal.Monthly(),
	"year":  journal.Yearly(),
}

var unitPeriods = map[string]func(int) journal.Period{
	"day":    journal.EveryNDays,
	"days":   journal.EveryNDays,
	"week":   journal.EveryNWeeks,
	"weeks":  journal.EveryNWeeks,
	"month":  journal.EveryNMonths,
	"months": journal.EveryNMonths,
	"year":   journal.EveryNYears,
	"years":  journal.EveryNYears,
}

// period parses daily|weekly|monthly|yearly, every <unit>, every N <units> or a date.
func period(in input) (journal.Period, input, *Error) {
	start := in
	if isDigit(in.peek()) {
		d, rest, err := date(in)
		if err != nil {
			return journal.Period{}, start, err
		}
		return journal.OnDate(d), rest, nil
	}

	w, in := word(in)
	if p, ok := keywordPeriods[w]; ok {
		return p, in, nil
	}
	if w != "every" {
		return journal.Period{}, start, start.fail("period")
	}

	in = in.skipWS()
	if !isDigit(in.peek()) {
		unitStart := in
		u, rest := word(in)
		if p, ok := everyPeriods[u]; ok {
			return p, rest, nil
		}
		return journal.Period{}, start, unitStart.fail("period unit")
	}

	countStart := in
	in = digits(in)
	n, convErr := strconv.Atoi(countStart.src[countStart.pos:in.pos])
	if convErr != nil || n < 1 {
		return journal.Period{}, start, countStart.fail("positive count")
	}
	unitStart := in.skipWS()
	u, rest := word(unitStart)
	build, ok := unitPeriods[u]
	if !ok || unitStart.pos == in.pos {
		return journal.Period{}, start, unitStart.fail("days, weeks, months or years")
	}
	return build(n), rest, nil
}

// periodicTransaction parses
//
//	~ PERIOD [from DATE] [to DATE] [; COMMENT]
//
// and the indented block below it.
func periodicTransaction(in input) (journal.PeriodicTransaction, input, *Error) {
	var ptx journal.PeriodicTransaction
	start := in

	in, err := in.expect("~")
	if err != nil {
		return ptx, start, err
	}
	if ptx.Period, in, err = period(in.skipWS()); err != nil {
		return ptx, start, err
	}

	for _, bound := range []struct {
		keyword string
		target  **time.Time
	}{
		{"from", &ptx.StartDate},
		{"to", &ptx.EndDate},
	} {
		after := in.skipWS()
		w, rest := word(after)
		if w != bound.keyword || after.pos == in.pos {
			continue
		}
		d, rest, err := date(rest.skipWS())
		if err != nil {
			return ptx, start, err
		}
		*bound.target = &d
		in = rest
	}

	var comments []string
	in = in.skipWS()
	switch {
	case in.peek() == ';':
		var text string
		text, in = commentText(in)
		comments = append(comments, text)
	case !in.atEOL():
		return ptx, start, in.fail("from, to, comment or end of line")
	}
	in = in.skipEOL()

	blockComments, postings, in, err := block(in)
	if err != nil {
		return ptx, start, err
	}
	ptx.Comment = strings.Join(append(comments, blockComments...), "\n")
	ptx.Postings = postings
	return ptx, in, nil
}
