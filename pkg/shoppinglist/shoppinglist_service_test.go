package shoppinglist

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// glebarez/sqlite gives every pooled connection its own :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.ShoppingCart{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	u := &entities.User{
		ID:       uuid.New(),
		Email:    username + "@example.com",
		Username: username,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	ing := &entities.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
	}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

func createRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, lines map[*entities.Ingredient]int) *entities.Recipe {
	r := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        name,
		Text:        "test recipe",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(r).Error)
	for ing, amount := range lines {
		require.NoError(t, db.Create(&entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     r.ID,
			IngredientID: ing.ID,
			Amount:       amount,
		}).Error)
	}
	return r
}

func addToCart(t *testing.T, db *gorm.DB, u *entities.User, r *entities.Recipe) {
	require.NoError(t, db.Create(&entities.ShoppingCart{
		ID:        uuid.New(),
		UserID:    u.ID,
		RecipeID:  r.ID,
		CreatedAt: time.Now(),
	}).Error)
}

func TestCollectItems_SumsAcrossRecipes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShoppingListRepository(db)

	u := createUser(t, db, "buyer")
	sugar := createIngredient(t, db, "Sugar", "g")
	flour := createIngredient(t, db, "Flour", "g")

	r1 := createRecipe(t, db, u, "Cake", map[*entities.Ingredient]int{sugar: 100, flour: 200})
	r2 := createRecipe(t, db, u, "Cookies", map[*entities.Ingredient]int{sugar: 50})
	addToCart(t, db, u, r1)
	addToCart(t, db, u, r2)

	items, err := repo.CollectItems(context.Background(), u.ID.String())
	require.NoError(t, err)
	require.Equal(t, []domain.ShoppingListItem{
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 200},
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 150},
	}, items)
}

func TestCollectItems_DistinctUnitsNotMerged(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShoppingListRepository(db)

	u := createUser(t, db, "buyer")
	milkML := createIngredient(t, db, "Milk", "ml")
	milkL := createIngredient(t, db, "Milk", "l")

	r := createRecipe(t, db, u, "Porridge", map[*entities.Ingredient]int{milkML: 250, milkL: 1})
	addToCart(t, db, u, r)

	items, err := repo.CollectItems(context.Background(), u.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, "Milk", item.Name)
	}
}

func TestCollectItems_OnlyCartRecipesCounted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShoppingListRepository(db)

	u := createUser(t, db, "buyer")
	other := createUser(t, db, "other")
	sugar := createIngredient(t, db, "Sugar", "g")

	inCart := createRecipe(t, db, u, "Cake", map[*entities.Ingredient]int{sugar: 100})
	outOfCart := createRecipe(t, db, u, "Pie", map[*entities.Ingredient]int{sugar: 999})
	addToCart(t, db, u, inCart)
	addToCart(t, db, other, outOfCart)

	items, err := repo.CollectItems(context.Background(), u.ID.String())
	require.NoError(t, err)
	require.Equal(t, []domain.ShoppingListItem{
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 100},
	}, items)
}

func TestBuildShoppingList_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	service := NewShoppingListService(NewShoppingListRepository(db))

	u := createUser(t, db, "empty")

	doc, err := service.BuildShoppingList(context.Background(), u.ID.String())
	require.NoError(t, err)
	require.Equal(t, "application/pdf", doc.ContentType)
	require.Equal(t, "shopping_cart.pdf", doc.Filename)
	require.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}

func TestBuildShoppingList_RendersPDF(t *testing.T) {
	db := setupTestDB(t)
	service := NewShoppingListService(NewShoppingListRepository(db))

	u := createUser(t, db, "buyer")
	sugar := createIngredient(t, db, "Sugar", "g")
	r := createRecipe(t, db, u, "Cake", map[*entities.Ingredient]int{sugar: 100})
	addToCart(t, db, u, r)

	doc, err := service.BuildShoppingList(context.Background(), u.ID.String())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
	require.NotEmpty(t, doc.Content)
}

func TestFormatItem(t *testing.T) {
	line := FormatItem(domain.ShoppingListItem{
		Name:            "Sugar",
		MeasurementUnit: "g",
		TotalAmount:     150,
	})
	require.Equal(t, "Sugar (g) — 150", line)
}
