package pathutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultDatabasePath(t *testing.T) {
	p := New(Config{JournalRoot: "/data/journal"})
	assert.Equal(t, "/data/journal", p.GetJournalRoot())
	assert.Equal(t, filepath.Join("/data/journal", ".prices", "prices.db"), p.GetDatabasePath())

	p = New(Config{JournalRoot: "/data/journal", DatabasePath: "/var/lib/prices.db"})
	assert.Equal(t, "/var/lib/prices.db", p.GetDatabasePath())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("JOURNAL_ROOT", "")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("JOURNAL_ROOT", "/data/journal")
	t.Setenv("JOURNAL_DB_PATH", "/data/p.db")
	p, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/data/p.db", p.GetDatabasePath())
}

func TestGetMonthFilePath(t *testing.T) {
	p := New(Config{JournalRoot: "/data/journal"})

	tests := []struct {
		yearMonth string
		want      string
		wantErr   bool
	}{
		{"2024-01", filepath.Join("/data/journal", "2024", "2024-01.journal"), false},
		{"2018-12", filepath.Join("/data/journal", "2018", "2018-12.journal"), false},
		{"2024-13", "", true},
		{"2024-1", "", true},
		{"202401", "", true},
		{"2024-01-15", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.yearMonth, func(t *testing.T) {
			got, err := p.GetMonthFilePath(tt.yearMonth)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearMonth(t *testing.T) {
	assert.Equal(t, "2018-10", YearMonth(time.Date(2018, time.October, 14, 0, 0, 0, 0, time.UTC)))
}

func TestListJournalFiles(t *testing.T) {
	root := t.TempDir()
	p := New(Config{JournalRoot: root})

	for _, name := range []string{
		filepath.Join("2024", "2024-02.journal"),
		filepath.Join("2024", "2024-01.journal"),
		filepath.Join("2023", "2023-12.journal"),
		filepath.Join("2024", "notes.txt"),
		filepath.Join(".prices", "old.journal"),
	} {
		path := filepath.Join(root, name)
		require.NoError(t, p.EnsureParentDir(path))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	files, err := p.ListJournalFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "2023", "2023-12.journal"),
		filepath.Join(root, "2024", "2024-01.journal"),
		filepath.Join(root, "2024", "2024-02.journal"),
	}, files)

	missing := New(Config{JournalRoot: filepath.Join(root, "nope")})
	files, err = missing.ListJournalFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileHelpers(t *testing.T) {
	root := t.TempDir()
	p := New(Config{JournalRoot: root})

	file := filepath.Join(root, "a", "b", "c.journal")
	assert.False(t, p.FileExists(file))
	require.NoError(t, p.EnsureParentDir(file))
	assert.True(t, p.IsDir(filepath.Join(root, "a", "b")))
	require.NoError(t, os.WriteFile(file, []byte("; x\n"), 0644))
	assert.True(t, p.FileExists(file))
	assert.False(t, p.IsDir(file))
}
