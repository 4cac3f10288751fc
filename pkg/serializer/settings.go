// Package serializer renders journal values back to text.
//
// Every function takes the Settings explicitly. The zero Settings value renders
// exactly like DefaultSettings.
package serializer

// Settings controls the cosmetic choices of the rendered text.
type Settings struct {
	// IndentWidth is the number of spaces before postings and comment lines (default 2).
	IndentWidth int `yaml:"indent_width"`
	// AmountColumn pads postings so the amount starts at this column, keeping at
	// least two spaces after the account. 0 always uses two spaces.
	AmountColumn int `yaml:"amount_column"`
	// DateSeparator joins year, month and day: "-" (default), "/" or ".".
	DateSeparator string `yaml:"date_separator"`
}

const (
	defaultIndentWidth   = 2
	defaultDateSeparator = "-"
)

// DefaultSettings returns the canonical format.
func DefaultSettings() Settings {
	return Settings{
		IndentWidth:   defaultIndentWidth,
		DateSeparator: defaultDateSeparator,
	}
}

func (s Settings) normalized() Settings {
	if s.IndentWidth <= 0 {
		s.IndentWidth = defaultIndentWidth
	}
	switch s.DateSeparator {
	case "-", "/", ".":
	default:
		s.DateSeparator = defaultDateSeparator
	}
	if s.AmountColumn < 0 {
		s.AmountColumn = 0
	}
	return s
}
