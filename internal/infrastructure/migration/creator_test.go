package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add vouchers index", "add_vouchers_index"},
		{"Add-Vouchers-Index", "add_vouchers_index"},
		{"add__entries__table", "add_entries_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DriverSQLite), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DriverSQLite, "000001_init_schema.up.sql"), []byte("--"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DriverSQLite, "000001_init_schema.down.sql"), []byte("--"), 0o644))

	mf, err := CreateMigration(dir, "add voucher notes", "Adds a notes column")
	require.NoError(t, err)

	assert.EqualValues(t, 2, mf.Version)
	require.Len(t, mf.Scripts, len(Dialects))
	for _, pair := range mf.Scripts {
		assert.Equal(t, "000002_add_voucher_notes.up.sql", filepath.Base(pair.UpPath))
		assert.Equal(t, "000002_add_voucher_notes.down.sql", filepath.Base(pair.DownPath))

		up, err := os.ReadFile(pair.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add voucher notes (up, "+pair.Dialect+")")
		assert.Contains(t, string(up), "Adds a notes column")
	}

	pg, err := ListMigrations(filepath.Join(dir, DriverPostgres))
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_add_voucher_notes"}, pg)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000002_add_index.up.sql",
		"000002_add_index.down.sql",
		"000001_init.up.sql",
		"000001_init.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_add_index"}, migrations)

	latest, err := LatestVersion(dir)
	require.NoError(t, err)
	assert.EqualValues(t, 2, latest)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	migrations, err := ListMigrations("/nonexistent/path/to/migrations")
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestEmbeddedScriptsCoverEveryDialect(t *testing.T) {
	for _, dialect := range Dialects {
		entries, err := migrationFiles.ReadDir("sql/" + dialect)
		require.NoError(t, err)
		assert.NotEmpty(t, entries, dialect)
	}
}
