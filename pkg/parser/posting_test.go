package parser

import (
	"errors"
	"testing"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(cents int64) journal.Amount {
	return journal.Amount{
		Quantity:  decimal.New(cents, -2),
		Commodity: journal.Commodity{Name: "USD", Position: journal.CommodityLeft},
	}
}

func pln(cents int64) journal.Amount {
	return journal.Amount{
		Quantity:  decimal.New(cents, -2),
		Commodity: journal.Commodity{Name: "PLN", Position: journal.CommodityRight},
	}
}

func TestParsePosting(t *testing.T) {
	unitLot := journal.UnitPrice(pln(500))
	totalLot := journal.TotalPrice(pln(500))
	unitPrice := journal.UnitPrice(pln(600))
	totalPrice := journal.TotalPrice(pln(600))
	zero := journal.ZeroBalance()
	fifty := journal.AmountBalance(usd(5000))

	tests := []struct {
		name  string
		input string
		want  journal.Posting
	}{
		{
			name:  "account only",
			input: "  Assets:Cash",
			want:  journal.Posting{Account: "Assets:Cash"},
		},
		{
			name:  "account with spaces",
			input: "  TEST:ABC 123  USD1.20",
			want: journal.Posting{
				Account: "TEST:ABC 123",
				Amount:  &journal.PostingAmount{Amount: usd(120)},
			},
		},
		{
			name:  "tab separator",
			input: "\tExpenses:Food\tUSD1.20",
			want: journal.Posting{
				Account: "Expenses:Food",
				Amount:  &journal.PostingAmount{Amount: usd(120)},
			},
		},
		{
			name:  "cleared with balance and comment",
			input: "* Assets:Checking  USD42.00 = USD50.00 ; asdf",
			want: journal.Posting{
				Account: "Assets:Checking",
				Status:  journal.StatusCleared,
				Amount:  &journal.PostingAmount{Amount: usd(4200)},
				Balance: &fifty,
				Comment: "asdf",
			},
		},
		{
			name:  "pending",
			input: "! Assets:Checking",
			want:  journal.Posting{Account: "Assets:Checking", Status: journal.StatusPending},
		},
		{
			name:  "unbalanced virtual",
			input: "(Budget:Food)  USD1.20",
			want: journal.Posting{
				Account: "Budget:Food",
				Reality: journal.UnbalancedVirtual,
				Amount:  &journal.PostingAmount{Amount: usd(120)},
			},
		},
		{
			name:  "balanced virtual",
			input: "[Savings:Goal]  USD1.20",
			want: journal.Posting{
				Account: "Savings:Goal",
				Reality: journal.BalancedVirtual,
				Amount:  &journal.PostingAmount{Amount: usd(120)},
			},
		},
		{
			name:  "unit lot and unit price",
			input: "Assets:Broker  USD1.20 {5.00 PLN} @ 6.00 PLN",
			want: journal.Posting{
				Account: "Assets:Broker",
				Amount:  &journal.PostingAmount{Amount: usd(120), LotPrice: &unitLot, Price: &unitPrice},
			},
		},
		{
			name:  "total lot and total price",
			input: "Assets:Broker  USD1.20 {{5.00 PLN}} @@ 6.00 PLN",
			want: journal.Posting{
				Account: "Assets:Broker",
				Amount:  &journal.PostingAmount{Amount: usd(120), LotPrice: &totalLot, Price: &totalPrice},
			},
		},
		{
			name:  "zero balance without amount",
			input: "Assets:Cash  = 0",
			want:  journal.Posting{Account: "Assets:Cash", Balance: &zero},
		},
		{
			name:  "zero balance before comment",
			input: "Assets:Cash  USD1.20 = 0 ; closed",
			want: journal.Posting{
				Account: "Assets:Cash",
				Amount:  &journal.PostingAmount{Amount: usd(120)},
				Balance: &zero,
				Comment: "closed",
			},
		},
		{
			name:  "inline comment without amount",
			input: "Assets:Cash ; note",
			want:  journal.Posting{Account: "Assets:Cash", Comment: "note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosting(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePosting_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "   ", "account"},
		{"garbage amount", "Assets:Cash  ???", "amount"},
		{"unclosed lot", "Assets:Cash  USD1.20 {5.00 PLN", "\"}\""},
		{"trailing text", "Assets:Cash  USD1.20 extra", "end of posting"},
		{"two lines", "Assets:Cash\nAssets:Bank", "end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePosting(tt.input)
			require.Error(t, err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, KindSyntax, perr.Kind)
			assert.Equal(t, tt.expected, perr.Expected)
		})
	}
}
