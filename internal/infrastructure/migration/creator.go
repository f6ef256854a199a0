package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const scriptTemplate = `-- {{.Name}} ({{.Direction}}, {{.Dialect}})
-- Created: {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`

var scriptTmpl = template.Must(template.New("migration").Parse(scriptTemplate))

// Dialects lists the script directories every migration is written for
var Dialects = []string{DriverSQLite, DriverPostgres}

// ScriptPair is one dialect's up and down script of a migration
type ScriptPair struct {
	Dialect  string
	UpPath   string
	DownPath string
}

// MigrationFile describes a newly created migration
type MigrationFile struct {
	Version     uint
	Name        string
	Description string
	Scripts     []ScriptPair
}

// CreateMigration writes empty up and down scripts under sqlDir/<dialect> for
// every dialect, numbered one past the highest existing version.
func CreateMigration(sqlDir, name, description string) (*MigrationFile, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	var latest uint
	for _, dialect := range Dialects {
		v, err := LatestVersion(filepath.Join(sqlDir, dialect))
		if err != nil {
			return nil, err
		}
		latest = max(latest, v)
	}

	mf := &MigrationFile{
		Version:     latest + 1,
		Name:        name,
		Description: description,
	}
	fileBase := fmt.Sprintf("%06d_%s", mf.Version, base)
	timestamp := time.Now().Format(time.RFC3339)

	var written []string
	cleanup := func() {
		for _, p := range written {
			_ = os.Remove(p)
		}
	}

	for _, dialect := range Dialects {
		dir := filepath.Join(sqlDir, dialect)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to create migrations directory: %w", err)
		}

		pair := ScriptPair{
			Dialect:  dialect,
			UpPath:   filepath.Join(dir, fileBase+".up.sql"),
			DownPath: filepath.Join(dir, fileBase+".down.sql"),
		}
		for path, direction := range map[string]string{pair.UpPath: "up", pair.DownPath: "down"} {
			data := map[string]string{
				"Name":        name,
				"Direction":   direction,
				"Dialect":     dialect,
				"Timestamp":   timestamp,
				"Description": description,
			}
			if err := writeScript(path, data); err != nil {
				cleanup()
				return nil, err
			}
			written = append(written, path)
		}
		mf.Scripts = append(mf.Scripts, pair)
	}

	return mf, nil
}

func writeScript(path string, data map[string]string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if err := scriptTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// sanitizeName converts a migration name to a safe file name format
func sanitizeName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			result = append(result, c)
		case c >= 'A' && c <= 'Z':
			result = append(result, c+'a'-'A')
		case c == ' ' || c == '-' || c == '_':
			if len(result) > 0 && result[len(result)-1] != '_' {
				result = append(result, '_')
			}
		}
	}
	return strings.TrimSuffix(string(result), "_")
}

// ListMigrations returns the base names of the migrations in dir, sorted
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			migrations = append(migrations, base)
		}
	}
	slices.Sort(migrations)
	return migrations, nil
}

// LatestVersion returns the highest version number found in dir
func LatestVersion(dir string) (uint, error) {
	migrations, err := ListMigrations(dir)
	if err != nil {
		return 0, err
	}
	var latest uint
	for _, m := range migrations {
		prefix, _, _ := strings.Cut(m, "_")
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		latest = max(latest, uint(v))
	}
	return latest, nil
}
