package sqlite_test

import (
	"testing"

	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/cipher"
	exportSQLite "github.com/robalyx/cipherlab/internal/export/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// countRows returns the number of rows in a table.
func countRows(t *testing.T, conn *sqlite.Conn, table string) int {
	t.Helper()

	var count int
	err := sqlitex.ExecuteTransient(conn, "SELECT COUNT(*) FROM "+table, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt(0)
			return nil
		},
	})
	require.NoError(t, err)
	return count
}

func TestExporterExport(t *testing.T) {
	t.Parallel()

	engine := cipher.NewEngine(cipher.DefaultOptions(), zap.NewNop())
	report := analysis.BuildReport("HELLO THE WORLD", engine, 4)

	outDir := t.TempDir()
	exporter := exportSQLite.New(outDir)

	// Exporting twice replaces the previous database.
	_, err := exporter.Export(report)
	require.NoError(t, err)
	paths, err := exporter.Export(report)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	conn, err := sqlite.OpenConn(paths[0], sqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, 6, countRows(t, conn, "report"))
	assert.Equal(t, len(report.Frequencies), countRows(t, conn, "frequencies"))
	assert.Equal(t, 3, countRows(t, conn, "patterns"))
	assert.Equal(t, 4, countRows(t, conn, "candidates"))

	var commonWords int
	err = sqlitex.ExecuteTransient(conn, "SELECT count FROM patterns WHERE name = ?", &sqlitex.ExecOptions{
		Args: []any{"common_words"},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			commonWords = stmt.ColumnInt(0)
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, commonWords)

	var topChar string
	var topCount int
	err = sqlitex.ExecuteTransient(conn,
		"SELECT char, count FROM frequencies ORDER BY count DESC, char LIMIT 1",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				topChar = stmt.ColumnText(0)
				topCount = stmt.ColumnInt(1)
				return nil
			},
		})
	require.NoError(t, err)
	assert.Equal(t, "L", topChar)
	assert.Equal(t, 3, topCount)
}
