package journal

import "time"

// PeriodKind is the recurrence rule of a periodic transaction.
type PeriodKind int

const (
	PeriodDaily PeriodKind = iota
	PeriodWeekly
	PeriodMonthly
	PeriodYearly
	PeriodOnDate
	PeriodEveryNDays
	PeriodEveryNWeeks
	PeriodEveryNMonths
	PeriodEveryNYears
)

// Period describes when a periodic transaction recurs.
// Date is set only for PeriodOnDate, Count only for the PeriodEveryN* kinds.
type Period struct {
	Kind  PeriodKind
	Date  time.Time
	Count int
}

func Daily() Period   { return Period{Kind: PeriodDaily} }
func Weekly() Period  { return Period{Kind: PeriodWeekly} }
func Monthly() Period { return Period{Kind: PeriodMonthly} }
func Yearly() Period  { return Period{Kind: PeriodYearly} }

// OnDate recurs on the given date.
func OnDate(d time.Time) Period { return Period{Kind: PeriodOnDate, Date: d} }

// EveryNDays and its siblings expect a positive count.
func EveryNDays(n int) Period   { return Period{Kind: PeriodEveryNDays, Count: n} }
func EveryNWeeks(n int) Period  { return Period{Kind: PeriodEveryNWeeks, Count: n} }
func EveryNMonths(n int) Period { return Period{Kind: PeriodEveryNMonths, Count: n} }
func EveryNYears(n int) Period  { return Period{Kind: PeriodEveryNYears, Count: n} }
