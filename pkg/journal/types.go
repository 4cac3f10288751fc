// Package journal defines the in-memory representation of a plain-text accounting journal.
//
// Every value is built once, by the parser or by a calling program, and is not mutated
// afterwards. A Document owns its items exclusively; nothing points back to its parent.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is an ordered sequence of journal items.
// The order is the serialization order.
type Document struct {
	Items []Item
}

// Item is one top-level entry of a Document.
// New variants may be added; type switches over Item should keep a default case.
type Item interface {
	isItem()
}

// EmptyLine is a blank line between items.
type EmptyLine struct{}

// LineComment is a top-level comment line.
type LineComment struct {
	Text string
}

// Include records an include directive. The path is not resolved.
type Include struct {
	Path string
}

func (EmptyLine) isItem()           {}
func (LineComment) isItem()         {}
func (Include) isItem()             {}
func (Transaction) isItem()         {}
func (PeriodicTransaction) isItem() {}
func (CommodityPrice) isItem()      {}

// Transaction is a dated journal entry with its postings.
type Transaction struct {
	Comment       string     // Multi-line comment, lines joined with "\n" (optional)
	Date          time.Time  // Recorded date
	EffectiveDate *time.Time // Settlement date (optional, no ordering against Date)
	Status        Status     // StatusNone when absent
	Code          string     // Short reference, e.g. a cheque number (optional)
	Description   string
	Postings      []Posting
}

// PeriodicTransaction is a template transaction tagged with a recurrence rule.
type PeriodicTransaction struct {
	Period    Period
	Comment   string
	StartDate *time.Time
	EndDate   *time.Time
	Postings  []Posting
}

// Status is the pending/cleared marker of a transaction or posting.
type Status int

const (
	StatusNone Status = iota
	StatusPending
	StatusCleared
)

// Reality selects whether a posting is real or virtual.
type Reality int

const (
	Real              Reality = iota
	BalancedVirtual           // [Account]
	UnbalancedVirtual         // (Account)
)

// Posting is one account movement inside a transaction.
type Posting struct {
	Account string
	Reality Reality
	Amount  *PostingAmount
	Balance *Balance
	Status  Status // overrides the transaction status when set
	Comment string
}

// PostingAmount is an amount with its optional lot price and posted price.
type PostingAmount struct {
	Amount   Amount
	LotPrice *Price
	Price    *Price
}

// Amount is an exact quantity of a commodity.
type Amount struct {
	Quantity  decimal.Decimal
	Commodity Commodity
}

// CommodityPosition tells on which side of the quantity the symbol is written.
type CommodityPosition int

const (
	// CommodityLeft is written directly before the quantity: $1.20
	CommodityLeft CommodityPosition = iota
	// CommodityRight follows the quantity after one space: 1.20 EUR
	CommodityRight
)

// Commodity is a currency or any other tradable unit.
type Commodity struct {
	Name     string
	Position CommodityPosition
}

// PriceType distinguishes per-unit from whole-lot prices.
type PriceType int

const (
	PriceUnit PriceType = iota
	PriceTotal
)

// Price is either a per-unit price or a total price for the lot.
type Price struct {
	Type   PriceType
	Amount Amount
}

// UnitPrice returns a per-unit price.
func UnitPrice(a Amount) Price {
	return Price{Type: PriceUnit, Amount: a}
}

// TotalPrice returns a price for the whole lot.
func TotalPrice(a Amount) Price {
	return Price{Type: PriceTotal, Amount: a}
}

// BalanceKind distinguishes the literal zero assertion from an amount.
type BalanceKind int

const (
	BalanceZero BalanceKind = iota
	BalanceAmount
)

// Balance is a balance assertion attached to a posting.
// Amount is meaningful only when Kind is BalanceAmount.
type Balance struct {
	Kind   BalanceKind
	Amount Amount
}

// ZeroBalance asserts a zero balance.
func ZeroBalance() Balance {
	return Balance{Kind: BalanceZero}
}

// AmountBalance asserts the given balance.
func AmountBalance(a Amount) Balance {
	return Balance{Kind: BalanceAmount, Amount: a}
}

// CommodityPrice is a standalone price-history fact.
type CommodityPrice struct {
	DateTime      time.Time
	CommodityName string
	Amount        Amount
}

// Date returns midnight UTC of the given day, the form the parser produces.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
