package ingredient

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (IngredientService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// glebarez/sqlite gives every pooled connection its own :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.Ingredient{}))
	return NewIngredientService(NewIngredientRepository(db)), db
}

func seed(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	ing := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

func TestGetIngredient(t *testing.T) {
	svc, db := setupService(t)
	sugar := seed(t, db, "Sugar", "g")

	res, err := svc.GetIngredient(context.Background(), sugar.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Sugar", res.Name)
	require.Equal(t, "g", res.MeasurementUnit)

	_, err = svc.GetIngredient(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestGetIngredients_PrefixSearch(t *testing.T) {
	svc, db := setupService(t)
	seed(t, db, "Salt", "g")
	seed(t, db, "Salmon", "g")
	seed(t, db, "Pepper", "g")

	res, err := svc.GetIngredients(context.Background(), "Sal")
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.Equal(t, "Salmon", res[0].Name)
	require.Equal(t, "Salt", res[1].Name)

	all, err := svc.GetIngredients(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}
