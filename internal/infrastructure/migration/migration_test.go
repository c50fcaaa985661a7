package migration

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEmbeddedScripts_MatchAcrossDialects(t *testing.T) {
	var names [2][]string
	for i, dir := range scriptDialects {
		scripts, err := dialectScripts(dir)
		require.NoError(t, err)

		entries, err := fs.ReadDir(scripts, ".")
		require.NoError(t, err)
		for _, e := range entries {
			names[i] = append(names[i], e.Name())
		}
	}

	require.NotEmpty(t, names[0])
	assert.Equal(t, names[0], names[1])
	assert.Contains(t, names[0], "00001_create_tickets.sql")
}

func TestNewManager_PicksStrategy(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{driver: "postgres", want: "goose"},
		{driver: "mysql", want: "goose"},
		{driver: "sqlite", want: "gorm_auto_migrate"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			m := NewManager(tt.driver)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())

			_, err := m.Goose()
			if tt.want == "goose" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestManager_MigrateSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, NewManager("sqlite").Migrate(context.Background(), db))

	assert.True(t, db.Migrator().HasTable("tickets"))
	assert.True(t, db.Migrator().HasTable("ocr_tickets"))
	assert.True(t, db.Migrator().HasColumn("tickets", "resolution_status"))
}

func TestGooseStrategy_UnsupportedDriver(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	err = NewGooseStrategy("sqlite").Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no versioned migration scripts")
}

func TestGenerator_CreateMigration(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "postgres"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres", "00003_create_ocr_tickets.sql"), nil, 0o644))

	created, err := NewGenerator(root).CreateMigration("Add ticket Tags!")
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, filepath.Join(root, "postgres", "00004_add_ticket_tags.sql"), created[0])
	assert.Equal(t, filepath.Join(root, "mysql", "00004_add_ticket_tags.sql"), created[1])

	content, err := os.ReadFile(created[1])
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "-- +goose Down")

	_, err = NewGenerator(root).CreateMigration("!!!")
	assert.Error(t, err)
}
