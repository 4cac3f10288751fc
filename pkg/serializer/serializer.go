package serializer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/shopspring/decimal"
)

// FormatDocument renders all items in order, one per line, ending with a newline.
// An empty document renders as the empty string.
func FormatDocument(doc journal.Document, s Settings) string {
	if len(doc.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, item := range doc.Items {
		sb.WriteString(FormatItem(item, s))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatItem renders one document item without its trailing newline.
// Unknown item types render as an empty string.
func FormatItem(item journal.Item, s Settings) string {
	switch it := item.(type) {
	case journal.EmptyLine:
		return ""
	case journal.LineComment:
		return "; " + it.Text
	case journal.Include:
		return "include " + it.Path
	case journal.Transaction:
		return FormatTransaction(it, s)
	case journal.PeriodicTransaction:
		return FormatPeriodicTransaction(it, s)
	case journal.CommodityPrice:
		return FormatCommodityPrice(it, s)
	default:
		return ""
	}
}

// FormatTransaction renders the header, the comment lines and the postings.
func FormatTransaction(tx journal.Transaction, s Settings) string {
	s = s.normalized()
	var sb strings.Builder

	sb.WriteString(FormatDate(tx.Date, s))
	if tx.EffectiveDate != nil {
		sb.WriteString("=")
		sb.WriteString(FormatDate(*tx.EffectiveDate, s))
	}
	if tx.Status != journal.StatusNone {
		sb.WriteString(" ")
		sb.WriteString(FormatStatus(tx.Status))
	}
	if tx.Code != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", tx.Code))
	}
	sb.WriteString(" ")
	sb.WriteString(tx.Description)

	writeBody(&sb, tx.Comment, tx.Postings, s)
	return sb.String()
}

// FormatPeriodicTransaction renders "~ PERIOD [from DATE] [to DATE]" and the body.
func FormatPeriodicTransaction(ptx journal.PeriodicTransaction, s Settings) string {
	s = s.normalized()
	var sb strings.Builder

	sb.WriteString("~ ")
	sb.WriteString(FormatPeriod(ptx.Period, s))
	if ptx.StartDate != nil {
		sb.WriteString(" from ")
		sb.WriteString(FormatDate(*ptx.StartDate, s))
	}
	if ptx.EndDate != nil {
		sb.WriteString(" to ")
		sb.WriteString(FormatDate(*ptx.EndDate, s))
	}

	writeBody(&sb, ptx.Comment, ptx.Postings, s)
	return sb.String()
}

func writeBody(sb *strings.Builder, comment string, postings []journal.Posting, s Settings) {
	indent := strings.Repeat(" ", s.IndentWidth)
	writeComment(sb, comment, indent)
	for _, p := range postings {
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString(FormatPosting(p, s))
	}
}

// writeComment writes each comment line as its own indented "; line".
func writeComment(sb *strings.Builder, comment, indent string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("; ")
		sb.WriteString(line)
	}
}

// FormatPeriod renders a recurrence rule.
func FormatPeriod(p journal.Period, s Settings) string {
	switch p.Kind {
	case journal.PeriodDaily:
		return "daily"
	case journal.PeriodWeekly:
		return "weekly"
	case journal.PeriodMonthly:
		return "monthly"
	case journal.PeriodYearly:
		return "yearly"
	case journal.PeriodOnDate:
		return FormatDate(p.Date, s)
	case journal.PeriodEveryNDays:
		return fmt.Sprintf("every %d days", p.Count)
	case journal.PeriodEveryNWeeks:
		return fmt.Sprintf("every %d weeks", p.Count)
	case journal.PeriodEveryNMonths:
		return fmt.Sprintf("every %d months", p.Count)
	case journal.PeriodEveryNYears:
		return fmt.Sprintf("every %d years", p.Count)
	}
	return ""
}

// FormatPosting renders a posting without indentation. Its comment lines follow
// on their own indented lines.
func FormatPosting(p journal.Posting, s Settings) string {
	s = s.normalized()
	var sb strings.Builder

	if p.Status != journal.StatusNone {
		sb.WriteString(FormatStatus(p.Status))
		sb.WriteString(" ")
	}
	switch p.Reality {
	case journal.BalancedVirtual:
		sb.WriteString("[" + p.Account + "]")
	case journal.UnbalancedVirtual:
		sb.WriteString("(" + p.Account + ")")
	default:
		sb.WriteString(p.Account)
	}

	if p.Amount != nil || p.Balance != nil {
		sb.WriteString(amountSeparator(utf8.RuneCountInString(sb.String()), s))
	}
	if p.Amount != nil {
		sb.WriteString(FormatPostingAmount(*p.Amount, s))
		if p.Balance != nil {
			sb.WriteString(" ")
		}
	}
	if p.Balance != nil {
		sb.WriteString("= ")
		sb.WriteString(FormatBalance(*p.Balance, s))
	}

	writeComment(&sb, p.Comment, strings.Repeat(" ", s.IndentWidth))
	return sb.String()
}

// amountSeparator pads after the account so the amount lands on s.AmountColumn.
func amountSeparator(width int, s Settings) string {
	pad := s.AmountColumn - s.IndentWidth - width
	if pad < 2 {
		pad = 2
	}
	return strings.Repeat(" ", pad)
}

// FormatPostingAmount renders "AMOUNT [{LOT}|{{LOT}}] [@ PRICE|@@ PRICE]".
func FormatPostingAmount(pa journal.PostingAmount, s Settings) string {
	out := FormatAmount(pa.Amount, s)
	if pa.LotPrice != nil {
		lot := FormatAmount(pa.LotPrice.Amount, s)
		if pa.LotPrice.Type == journal.PriceTotal {
			out += " {{" + lot + "}}"
		} else {
			out += " {" + lot + "}"
		}
	}
	if pa.Price != nil {
		price := FormatAmount(pa.Price.Amount, s)
		if pa.Price.Type == journal.PriceTotal {
			out += " @@ " + price
		} else {
			out += " @ " + price
		}
	}
	return out
}

// FormatAmount renders COMMODITYQUANTITY for left commodities and
// QUANTITY COMMODITY for right ones. An empty commodity name renders the
// quantity alone, which reads back as a right commodity.
func FormatAmount(a journal.Amount, s Settings) string {
	q := formatQuantity(a.Quantity)
	if a.Commodity.Name == "" {
		return q
	}
	name := formatCommodity(a.Commodity.Name)
	if a.Commodity.Position == journal.CommodityLeft {
		return name + q
	}
	return q + " " + name
}

// formatQuantity keeps the scale the quantity was written with.
func formatQuantity(q decimal.Decimal) string {
	places := -q.Exponent()
	if places < 0 {
		places = 0
	}
	return q.StringFixed(places)
}

// formatCommodity quotes names that would not read back as a bare commodity.
func formatCommodity(name string) string {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '$' || c > 0x7F) {
			return `"` + name + `"`
		}
	}
	return name
}

// FormatBalance renders a balance assertion value. An amount balance of a
// bare 0 renders the same as BalanceZero and reads back as one.
func FormatBalance(b journal.Balance, s Settings) string {
	if b.Kind == journal.BalanceZero {
		return "0"
	}
	return FormatAmount(b.Amount, s)
}

// FormatStatus renders ! for pending and * for cleared.
func FormatStatus(st journal.Status) string {
	switch st {
	case journal.StatusPending:
		return "!"
	case journal.StatusCleared:
		return "*"
	}
	return ""
}

// FormatCommodityPrice renders "P YYYY-MM-DD HH:MM:SS NAME AMOUNT".
func FormatCommodityPrice(cp journal.CommodityPrice, s Settings) string {
	s = s.normalized()
	return fmt.Sprintf("P %s %s %s %s",
		FormatDate(cp.DateTime, s),
		cp.DateTime.Format("15:04:05"),
		formatCommodity(cp.CommodityName),
		FormatAmount(cp.Amount, s),
	)
}

// FormatDate renders a date with the configured separator.
func FormatDate(t time.Time, s Settings) string {
	sep := s.normalized().DateSeparator
	return t.Format("2006" + sep + "01" + sep + "02")
}
