package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := journal.Date(2017, time.March, 24)

	tests := []struct {
		name  string
		input string
		rest  string
	}{
		{"dashes", "2017-03-24", ""},
		{"slashes", "2017/03/24", ""},
		{"dots", "2017.03.24", ""},
		{"mixed separators", "2017-03/24", ""},
		{"trailing text", "2017-03-24 Grocery", " Grocery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseDate_AllSeparatorsAgree(t *testing.T) {
	for _, d := range []time.Time{
		journal.Date(2020, time.February, 29),
		journal.Date(2019, time.December, 31),
		journal.Date(2000, time.January, 1),
	} {
		var values []time.Time
		for _, layout := range []string{"2006-01-02", "2006/01/02", "2006.01.02"} {
			got, _, err := ParseDate(d.Format(layout))
			require.NoError(t, err)
			values = append(values, got)
		}
		assert.Equal(t, []time.Time{d, d, d}, values)
	}
}

func TestParseDate_NonExistingDate(t *testing.T) {
	tests := []string{"2017-13-24", "2017-02-29", "2017-04-31", "2017-00-10"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseDate(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNonExistingDate))

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, KindNonExistingDate, perr.Kind)
			assert.Equal(t, input, perr.Span)
			assert.Equal(t, 1, perr.Line)
			assert.Equal(t, 1, perr.Column)
		})
	}
}

func TestParseDate_SyntaxError(t *testing.T) {
	tests := []string{"17-03-24", "2017_03_24", "2017-3-24", "abcd-01-01", ""}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseDate(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  decimal.Decimal
		rest  string
	}{
		{"2.02", decimal.New(202, -2), ""},
		{"-12.13", decimal.New(-1213, -2), ""},
		{"0.1", decimal.New(1, -1), ""},
		{"3", decimal.New(3, 0), ""},
		{"0.10", decimal.New(10, -2), ""},
		{"5. USD", decimal.New(5, 0), ". USD"},
		{"42USD", decimal.New(42, 0), "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := ParseQuantity(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.want.Exponent(), got.Exponent())
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseQuantity_Invalid(t *testing.T) {
	for _, input := range []string{"", "-", ".5", "abc"} {
		_, _, err := ParseQuantity(input)
		assert.Error(t, err, "ParseQuantity(%q)", input)
	}
}

func TestParseCommodity(t *testing.T) {
	tests := []struct {
		input string
		want  string
		rest  string
	}{
		{`"ABC 123"`, "ABC 123", ""},
		{"ABC ", "ABC", " "},
		{"$1", "$", "1"},
		{"€", "€", ""},
		{"zł 5", "zł", " 5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := ParseCommodity(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseCommodity_Invalid(t *testing.T) {
	for _, input := range []string{"1USD", `""`, `"open`, "-", ""} {
		_, _, err := ParseCommodity(input)
		assert.Error(t, err, "ParseCommodity(%q)", input)
	}
}

func TestParseAmount(t *testing.T) {
	dollar := journal.Commodity{Name: "$", Position: journal.CommodityLeft}
	usd := journal.Commodity{Name: "USD", Position: journal.CommodityRight}

	tests := []struct {
		input string
		want  journal.Amount
	}{
		{"$1.20", journal.Amount{Quantity: decimal.New(120, -2), Commodity: dollar}},
		{"$-1.20", journal.Amount{Quantity: decimal.New(-120, -2), Commodity: dollar}},
		{"-$1.20", journal.Amount{Quantity: decimal.New(-120, -2), Commodity: dollar}},
		{"- $ 1.20", journal.Amount{Quantity: decimal.New(-120, -2), Commodity: dollar}},
		{"1.20USD", journal.Amount{Quantity: decimal.New(120, -2), Commodity: usd}},
		{"-1.20 USD", journal.Amount{Quantity: decimal.New(-120, -2), Commodity: usd}},
		{`10 "ACME 2"`, journal.Amount{
			Quantity:  decimal.New(10, 0),
			Commodity: journal.Commodity{Name: "ACME 2", Position: journal.CommodityRight},
		}},
		{"100", journal.Amount{
			Quantity:  decimal.New(100, 0),
			Commodity: journal.Commodity{Position: journal.CommodityRight},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, rest)
		})
	}
}

func TestParseAmount_DeepestFailure(t *testing.T) {
	_, _, err := ParseAmount("$ x")

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindSyntax, perr.Kind)
	assert.Equal(t, 2, perr.Offset)
	assert.Equal(t, "quantity", perr.Expected)
}
