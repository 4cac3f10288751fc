// Package journalfile provides the repository pattern for monthly journal files.
package journalfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/pigeonworks-llc/journalfmt/pkg/parser"
	"github.com/pigeonworks-llc/journalfmt/pkg/pathutil"
	"github.com/pigeonworks-llc/journalfmt/pkg/serializer"
)

// Repository defines the interface for monthly journal file operations.
type Repository interface {
	// AppendTransaction appends a transaction to a monthly file
	AppendTransaction(yearMonth string, tx journal.Transaction, comment ...string) error

	// ReadMonth parses a monthly file
	ReadMonth(yearMonth string) (journal.Document, error)

	// WriteMonth replaces a monthly file with the rendered document
	WriteMonth(yearMonth string, doc journal.Document) error

	// MonthFileExists checks if a monthly file exists
	MonthFileExists(yearMonth string) bool

	// GetMonthFilesInYear gets all monthly files in a year
	GetMonthFilesInYear(year string) ([]string, error)

	// EnsureMonthFile ensures a monthly file exists with header
	EnsureMonthFile(yearMonth string) error
}

// FileSystemRepository is a file system implementation of Repository.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
	settings     serializer.Settings
	now          func() time.Time
}

// NewFileSystemRepository creates a new FileSystemRepository that renders with settings.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver, settings serializer.Settings) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
		settings:     settings,
		now:          time.Now,
	}
}

// AppendTransaction appends a transaction to a monthly file.
// It creates the file if it doesn't exist. The transaction date must fall in yearMonth.
func (r *FileSystemRepository) AppendTransaction(yearMonth string, tx journal.Transaction, comment ...string) error {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}
	if got := pathutil.YearMonth(tx.Date); got != yearMonth {
		return fmt.Errorf("transaction dated %s does not belong to %s", serializer.FormatDate(tx.Date, r.settings), yearMonth)
	}

	if err := r.EnsureMonthFile(yearMonth); err != nil {
		return fmt.Errorf("failed to ensure month file: %w", err)
	}

	var items []journal.Item
	if len(comment) > 0 && comment[0] != "" {
		items = append(items, journal.LineComment{Text: comment[0]})
	}
	items = append(items, tx, journal.EmptyLine{})
	content := serializer.FormatDocument(journal.Document{Items: items}, r.settings)

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for appending: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}

// ReadMonth parses a monthly file.
// Returns an empty document if the file doesn't exist.
func (r *FileSystemRepository) ReadMonth(yearMonth string) (journal.Document, error) {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return journal.Document{}, fmt.Errorf("failed to get month file path: %w", err)
	}

	if !r.pathResolver.FileExists(filePath) {
		return journal.Document{}, nil
	}

	return ReadFile(filePath)
}

// WriteMonth renders doc and replaces the monthly file with it.
func (r *FileSystemRepository) WriteMonth(yearMonth string, doc journal.Document) error {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}

	if err := r.pathResolver.EnsureParentDir(filePath); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	return WriteFile(filePath, doc, r.settings)
}

// MonthFileExists checks if a monthly file exists.
func (r *FileSystemRepository) MonthFileExists(yearMonth string) bool {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return false
	}

	return r.pathResolver.FileExists(filePath)
}

// GetMonthFilesInYear gets all monthly files in a year.
// Returns a sorted slice of year-month strings (e.g., ["2024-01", "2024-02"]).
func (r *FileSystemRepository) GetMonthFilesInYear(year string) ([]string, error) {
	yearDir := r.pathResolver.GetYearDir(year)
	if !r.pathResolver.FileExists(yearDir) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(yearDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read year directory: %w", err)
	}

	monthFiles := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if filepath.Ext(name) != pathutil.JournalExt {
			continue
		}
		monthKey := strings.TrimSuffix(name, pathutil.JournalExt)
		if pathutil.ValidateYearMonth(monthKey) != nil || monthKey[:4] != year {
			continue
		}
		monthFiles = append(monthFiles, monthKey)
	}

	sort.Strings(monthFiles)
	return monthFiles, nil
}

// EnsureMonthFile ensures a monthly file exists with header.
// If the file already exists, this is a no-op.
func (r *FileSystemRepository) EnsureMonthFile(yearMonth string) error {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}

	if r.pathResolver.FileExists(filePath) {
		return nil
	}

	if err := r.pathResolver.EnsureParentDir(filePath); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	return WriteFile(filePath, r.fileHeader(yearMonth), r.settings)
}

// fileHeader is the document a new monthly file starts with.
func (r *FileSystemRepository) fileHeader(yearMonth string) journal.Document {
	return journal.Document{Items: []journal.Item{
		journal.LineComment{Text: "Journal for " + yearMonth},
		journal.LineComment{Text: "Generated at " + r.now().Format(time.RFC3339)},
		journal.EmptyLine{},
	}}
}

// ReadFile parses the journal file at path.
// Parse errors keep their *parser.Error so callers can report the position.
func ReadFile(path string) (journal.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return journal.Document{}, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := parser.ParseDocument(string(data))
	if err != nil {
		return journal.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// WriteFile renders doc to path, replacing any previous content.
func WriteFile(path string, doc journal.Document, settings serializer.Settings) error {
	if err := os.WriteFile(path, []byte(serializer.FormatDocument(doc, settings)), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ParseErrorOf returns the parser error wrapped in err, if any.
func ParseErrorOf(err error) (*parser.Error, bool) {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
