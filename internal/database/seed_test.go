package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/logging"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/testhelpers"
)

func countRows(t *testing.T, db *gorm.DB) (chefs, recipes int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.Chef{}).Count(&chefs).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	return chefs, recipes
}

func TestSeedEmptyDatabase(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	result, err := database.Seed(context.Background(), db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{ChefsInserted: 1, RecipesInserted: 2}, result)

	var chefs []models.Chef
	require.NoError(t, db.Find(&chefs).Error)
	require.Len(t, chefs, 1)
	assert.Equal(t, "Default Chef", chefs[0].Name)
	assert.Equal(t, "Smith", chefs[0].Surname)
	assert.Equal(t, "chef@example.com", chefs[0].Email)
	assert.Equal(t, "hashedpassword", chefs[0].PasswordHash)
	assert.Equal(t, 0.0, chefs[0].Rating)

	var recipes []models.Recipe
	require.NoError(t, db.Order("id").Find(&recipes).Error)
	require.Len(t, recipes, 2)
	assert.Equal(t, uint(11), recipes[0].ID)
	assert.Equal(t, "Recipe 1", recipes[0].Title)
	assert.Equal(t, "Delicious dish", recipes[0].Description)
	assert.Equal(t, uint(12), recipes[1].ID)
	assert.Equal(t, "Recipe 2", recipes[1].Title)
	assert.Equal(t, "Tasty treat", recipes[1].Description)
	for _, r := range recipes {
		assert.Equal(t, chefs[0].ID, r.ChefID)
		assert.Empty(t, r.Image)
		assert.Zero(t, r.Likes)
		assert.Zero(t, r.Dislikes)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	_, err := database.Seed(ctx, db, logging.Discard())
	require.NoError(t, err)

	result, err := database.Seed(ctx, db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{}, result)

	chefs, recipes := countRows(t, db)
	assert.Equal(t, int64(1), chefs)
	assert.Equal(t, int64(2), recipes)
}

func TestSeedSkipsNonEmptyChefTable(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	existing := models.Chef{Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&existing).Error)

	result, err := database.Seed(context.Background(), db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChefsInserted)
	assert.Equal(t, 2, result.RecipesInserted)

	chefs, _ := countRows(t, db)
	assert.Equal(t, int64(1), chefs)

	var recipes []models.Recipe
	require.NoError(t, db.Find(&recipes).Error)
	for _, r := range recipes {
		assert.Equal(t, existing.ID, r.ChefID)
	}
}

func TestSeedSkipsNonEmptyRecipeTable(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	chef := models.Chef{Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&chef).Error)
	recipe := models.Recipe{Title: "Pie", ChefID: chef.ID}
	require.NoError(t, db.Create(&recipe).Error)

	result, err := database.Seed(context.Background(), db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{}, result)

	chefs, recipes := countRows(t, db)
	assert.Equal(t, int64(1), chefs)
	assert.Equal(t, int64(1), recipes)
}

func TestInitializeCreatesSchemaAndSeeds(t *testing.T) {
	cfg := testhelpers.SQLiteConfig(t)
	db := testhelpers.OpenTestDatabase(t, cfg)

	result, err := database.Initialize(context.Background(), db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{ChefsInserted: 1, RecipesInserted: 2}, result)

	// A second process start against the same file inserts nothing.
	again := testhelpers.OpenTestDatabase(t, cfg)
	result, err = database.Initialize(context.Background(), again, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{}, result)

	chefs, recipes := countRows(t, again)
	assert.Equal(t, int64(1), chefs)
	assert.Equal(t, int64(2), recipes)
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, db.Migrator().DropTable(&models.Recipe{}))

	_, err := database.Seed(context.Background(), db, logging.Discard())
	require.Error(t, err)

	var chefs int64
	require.NoError(t, db.Model(&models.Chef{}).Count(&chefs).Error)
	assert.Zero(t, chefs, "chef insert must be rolled back with the failed transaction")
}
