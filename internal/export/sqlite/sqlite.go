package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robalyx/cipherlab/internal/analysis"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// FileName is the name of the written report database.
const FileName = "report.db"

const schema = `
CREATE TABLE report (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE frequencies (
	char TEXT PRIMARY KEY,
	count INTEGER NOT NULL,
	percentage REAL NOT NULL
);

CREATE TABLE patterns (
	name TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);

CREATE TABLE candidates (
	shift INTEGER PRIMARY KEY,
	score REAL NOT NULL,
	preview TEXT NOT NULL,
	top_chars TEXT NOT NULL
);
`

// Exporter handles exporting reports to SQLite databases.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the report into a fresh report.db.
func (e *Exporter) Export(report *analysis.Report) ([]string, error) {
	path := filepath.Join(e.outDir, FileName)

	// Remove existing file if it exists
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove existing file %s: %w", FileName, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := writeReport(conn, report); err != nil {
		return nil, err
	}

	return []string{path}, nil
}

// writeReport inserts every report section inside one transaction.
func writeReport(conn *sqlite.Conn, report *analysis.Report) (err error) {
	defer sqlitex.Save(conn)(&err)

	meta := [][2]string{
		{"source", report.Source},
		{"digest", report.Digest},
		{"characters", strconv.Itoa(report.Characters)},
		{"letters", strconv.Itoa(report.Letters)},
		{"score", strconv.FormatFloat(report.Score, 'f', 2, 64)},
		{"created_at", report.CreatedAt.UTC().Format(time.RFC3339)},
	}
	for _, kv := range meta {
		if err = insert(conn, "INSERT INTO report (key, value) VALUES (?, ?)", kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to insert report metadata: %w", err)
		}
	}

	for _, entry := range report.Frequencies {
		err = insert(conn, "INSERT INTO frequencies (char, count, percentage) VALUES (?, ?, ?)",
			string(entry.Char), entry.Count, entry.Percentage)
		if err != nil {
			return fmt.Errorf("failed to insert frequency: %w", err)
		}
	}

	patterns := map[string]int{
		"repeated_chars": report.Patterns.RepeatedChars,
		"common_words":   report.Patterns.CommonWords,
		"double_letters": report.Patterns.DoubleLetters,
	}
	for name, count := range patterns {
		if err = insert(conn, "INSERT INTO patterns (name, count) VALUES (?, ?)", name, count); err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
	}

	for _, candidate := range report.Candidates {
		topChars := make([]rune, 0, len(candidate.TopChars))
		for _, entry := range candidate.TopChars {
			topChars = append(topChars, entry.Char)
		}

		err = insert(conn, "INSERT INTO candidates (shift, score, preview, top_chars) VALUES (?, ?, ?, ?)",
			candidate.Shift, candidate.Score, candidate.Preview, string(topChars))
		if err != nil {
			return fmt.Errorf("failed to insert candidate: %w", err)
		}
	}

	return nil
}

func insert(conn *sqlite.Conn, query string, args ...any) error {
	return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args})
}
