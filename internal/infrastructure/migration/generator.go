package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

var (
	versionPrefix = regexp.MustCompile(`^(\d+)_`)
	unsafeName    = regexp.MustCompile(`[^a-z0-9_]+`)
)

// Dialects that carry versioned scripts. A new migration is written once per dialect.
var scriptDialects = []string{"postgres", "mysql"}

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGenerator creates a new migration generator rooted at scriptsPath,
// which holds one sub-directory per dialect.
func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewComponentLogger("migration.generator"),
	}
}

// CreateMigration writes an empty goose script with the next sequential
// version into every dialect directory and returns the created paths.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	version, err := g.nextVersion()
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("%05d_%s.sql", version, slug)
	created := make([]string, 0, len(scriptDialects))

	for _, dialect := range scriptDialects {
		dir := filepath.Join(g.scriptsPath, dialect)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("failed to create scripts directory: %w", err)
		}

		path := filepath.Join(dir, fileName)
		if err := os.WriteFile(path, []byte(migrationTemplate(slug, dialect)), 0o644); err != nil {
			return created, fmt.Errorf("failed to create %s migration: %w", dialect, err)
		}
		created = append(created, path)
	}

	g.logger.Infow("migration files created successfully",
		"version", version,
		"files", created)

	return created, nil
}

// nextVersion is one past the highest version found in any dialect directory.
func (g *Generator) nextVersion() (int64, error) {
	var highest int64
	for _, dialect := range scriptDialects {
		entries, err := os.ReadDir(filepath.Join(g.scriptsPath, dialect))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read scripts directory: %w", err)
		}

		for _, e := range entries {
			m := versionPrefix.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			v, err := strconv.ParseInt(m[1], 10, 64)
			if err == nil && v > highest {
				highest = v
			}
		}
	}
	return highest + 1, nil
}

func migrationTemplate(name, dialect string) string {
	return fmt.Sprintf(`-- Migration: %s (%s)

-- +goose Up
-- +goose StatementBegin
SELECT 1;
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
SELECT 1;
-- +goose StatementEnd
`, name, dialect)
}
