package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed scripts
var scriptsFS embed.FS

// ScriptsDir is where versioned scripts live relative to the repository root.
const ScriptsDir = "internal/infrastructure/migration/scripts"

// gooseDialect maps a database driver name onto goose's dialect and the
// scripts sub-directory written for it.
func gooseDialect(driver string) (goose.Dialect, string, error) {
	switch strings.ToLower(driver) {
	case "postgres":
		return goose.DialectPostgres, "postgres", nil
	case "mysql":
		return goose.DialectMySQL, "mysql", nil
	default:
		return "", "", fmt.Errorf("no versioned migration scripts for driver %q", driver)
	}
}

func dialectScripts(dir string) (fs.FS, error) {
	sub, err := fs.Sub(scriptsFS, "scripts/"+dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migration scripts: %w", dir, err)
	}
	return sub, nil
}
