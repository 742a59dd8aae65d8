package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/internal/models"
)

func runMigrate(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	require.NoError(t, cmd.Run(context.Background(), append([]string{"migrate"}, args...)), out.String())
	return out.String()
}

func countRows(t *testing.T, path string) (chefs, recipes int64) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, db.Model(&models.Chef{}).Count(&chefs).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	return chefs, recipes
}

func TestMigrateSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipenest.db")

	out := runMigrate(t, "--db-path", path, "--log-level", "error")
	assert.Contains(t, out, "seeded 1 chef(s) and 2 recipe(s)")

	out = runMigrate(t, "--db-path", path, "--log-level", "error")
	assert.Contains(t, out, "seeded 0 chef(s) and 0 recipe(s)")

	chefs, recipes := countRows(t, path)
	assert.EqualValues(t, 1, chefs)
	assert.EqualValues(t, 2, recipes)
}

func TestMigrateSkipSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipenest.db")
	runMigrate(t, "--db-path", path, "--skip-seed", "--log-level", "error")

	chefs, recipes := countRows(t, path)
	assert.Zero(t, chefs)
	assert.Zero(t, recipes)
}

func TestMigrateRejectsPostgresWithoutURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newCommand()
	cmd.Writer = &bytes.Buffer{}
	cmd.ErrWriter = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"migrate", "--db-driver", "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
