package shortlink

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"context"
	"regexp"
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
		&entities.Favorite{},
		&entities.ShoppingCart{},
		&entities.ShortLink{},
	))
	return db
}

func createRecipe(t *testing.T, db *gorm.DB) *entities.Recipe {
	author := &entities.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Username: uuid.NewString(),
	}
	require.NoError(t, db.Create(author).Error)

	r := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        "Borscht",
		Text:        "test recipe",
		CookingTime: 60,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func newService(db *gorm.DB) *shortLinkService {
	svc := NewShortLinkService(NewShortLinkRepository(db), recipe.NewRecipeRepository(db))
	return svc.(*shortLinkService)
}

func TestGetOrCreateLink_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	r := createRecipe(t, db)

	key, err := svc.GetOrCreateLink(context.Background(), r.ID.String())
	require.NoError(t, err)
	require.Len(t, key, KeyLength)
	require.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), key)

	recipeID, err := svc.Resolve(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, r.ID.String(), recipeID)
}

func TestGetOrCreateLink_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	r := createRecipe(t, db)

	first, err := svc.GetOrCreateLink(context.Background(), r.ID.String())
	require.NoError(t, err)
	second, err := svc.GetOrCreateLink(context.Background(), r.ID.String())
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&entities.ShortLink{}).Where("recipe_id = ?", r.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetOrCreateLink_RecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.GetOrCreateLink(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestResolve_UnknownKey(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Resolve(context.Background(), "doesnotexist")
	require.ErrorIs(t, err, domain.ErrShortLinkNotFound)
}

func TestGetOrCreateLink_KeyCollisionRetries(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)

	taken := createRecipe(t, db)
	require.NoError(t, db.Create(&entities.ShortLink{
		ID:        uuid.New(),
		Key:       "AAAAAA",
		RecipeID:  taken.ID,
		CreatedAt: time.Now(),
	}).Error)

	keys := []string{"AAAAAA", "BBBBBB"}
	svc.generateKey = func() (string, error) {
		key := keys[0]
		keys = keys[1:]
		return key, nil
	}

	r := createRecipe(t, db)
	key, err := svc.GetOrCreateLink(context.Background(), r.ID.String())
	require.NoError(t, err)
	require.Equal(t, "BBBBBB", key)
}

func TestGetOrCreateLink_Exhausted(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)

	taken := createRecipe(t, db)
	require.NoError(t, db.Create(&entities.ShortLink{
		ID:        uuid.New(),
		Key:       "AAAAAA",
		RecipeID:  taken.ID,
		CreatedAt: time.Now(),
	}).Error)

	svc.generateKey = func() (string, error) { return "AAAAAA", nil }

	r := createRecipe(t, db)
	_, err := svc.GetOrCreateLink(context.Background(), r.ID.String())
	require.ErrorIs(t, err, domain.ErrShortLinkExhausted)
}

// racingLinkRepo simulates losing the first-creation race: the initial
// existence check misses, the insert then collides with the row another
// caller slipped in, and the follow-up read must surface the winner's key.
type racingLinkRepo struct {
	ShortLinkRepository
	missedFirstRead bool
}

func (r *racingLinkRepo) GetByRecipeID(ctx context.Context, recipeID string) (*entities.ShortLink, error) {
	if !r.missedFirstRead {
		r.missedFirstRead = true
		return nil, gorm.ErrRecordNotFound
	}
	return r.ShortLinkRepository.GetByRecipeID(ctx, recipeID)
}

func TestGetOrCreateLink_RaceLoserGetsWinnersKey(t *testing.T) {
	db := setupTestDB(t)
	r := createRecipe(t, db)

	// The "winner" already linked the recipe.
	require.NoError(t, db.Create(&entities.ShortLink{
		ID:        uuid.New(),
		Key:       "WINNER",
		RecipeID:  r.ID,
		CreatedAt: time.Now(),
	}).Error)

	repo := &racingLinkRepo{ShortLinkRepository: NewShortLinkRepository(db)}
	svc := NewShortLinkService(repo, recipe.NewRecipeRepository(db)).(*shortLinkService)

	key, err := svc.GetOrCreateLink(context.Background(), r.ID.String())
	require.NoError(t, err)
	require.Equal(t, "WINNER", key)

	var count int64
	require.NoError(t, db.Model(&entities.ShortLink{}).Where("recipe_id = ?", r.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRandomKey_Properties(t *testing.T) {
	seen := make(map[string]bool)
	pattern := regexp.MustCompile(`^[A-Za-z0-9_-]{6}$`)
	for i := 0; i < 100; i++ {
		key, err := randomKey()
		require.NoError(t, err)
		require.Regexp(t, pattern, key)
		seen[key] = true
	}
	// 100 draws from a 64^6 space should not all collapse.
	require.Greater(t, len(seen), 90)
}
