// Package pathutil provides centralized path management for journal files and the price database.
package pathutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// JournalExt is the extension of monthly journal files.
const JournalExt = ".journal"

// PathResolver manages paths for journal files and the price database.
type PathResolver struct {
	journalRoot  string
	databasePath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// JournalRoot is the root directory for all journal files (e.g., ~/accounting/journal)
	JournalRoot string
	// DatabasePath is the path to the SQLite database file for price history
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {JournalRoot}/.prices/prices.db
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.JournalRoot, ".prices", "prices.db")
	}

	return &PathResolver{
		journalRoot:  config.JournalRoot,
		databasePath: dbPath,
	}
}

// FromEnv creates a PathResolver from environment variables.
// Expected environment variables:
//   - JOURNAL_ROOT: Root directory for journal files (required)
//   - JOURNAL_DB_PATH: Database file path (optional)
func FromEnv() (*PathResolver, error) {
	journalRoot := os.Getenv("JOURNAL_ROOT")
	if journalRoot == "" {
		return nil, fmt.Errorf("JOURNAL_ROOT environment variable is required")
	}

	return New(Config{
		JournalRoot:  journalRoot,
		DatabasePath: os.Getenv("JOURNAL_DB_PATH"),
	}), nil
}

// GetJournalRoot returns the journal root directory.
func (p *PathResolver) GetJournalRoot() string {
	return p.journalRoot
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetYearDir returns the directory path for a year.
// Example: ~/accounting/journal/2024
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.journalRoot, year)
}

// GetMonthFilePath returns the file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ~/accounting/journal/2024/2024-01.journal
func (p *PathResolver) GetMonthFilePath(yearMonth string) (string, error) {
	if err := ValidateYearMonth(yearMonth); err != nil {
		return "", err
	}

	yearDir := p.GetYearDir(yearMonth[:4])
	return filepath.Join(yearDir, yearMonth+JournalExt), nil
}

// ValidateYearMonth checks that yearMonth is a real YYYY-MM month.
func ValidateYearMonth(yearMonth string) error {
	if len(yearMonth) != 7 {
		return fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}
	if _, err := time.Parse("2006-01", yearMonth); err != nil {
		return fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}
	return nil
}

// YearMonth returns the YYYY-MM key of the month containing t.
func YearMonth(t time.Time) string {
	return t.Format("2006-01")
}

// ListJournalFiles returns every journal file under the root, sorted.
// A missing root yields no files.
func (p *PathResolver) ListJournalFiles() ([]string, error) {
	if !p.IsDir(p.journalRoot) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(p.journalRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.journalRoot && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == JournalExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk journal root %s: %w", p.journalRoot, err)
	}

	sort.Strings(files)
	return files, nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// IsDir checks if a path is a directory.
func (p *PathResolver) IsDir(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}
