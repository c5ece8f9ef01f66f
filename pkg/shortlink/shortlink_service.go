package shortlink

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// KeyLength matches the short fixed key column width.
	KeyLength = 6
	// maxKeyAttempts bounds retries on key collision before giving up.
	maxKeyAttempts = 5
)

type (
	ShortLinkService interface {
		GetOrCreateLink(ctx context.Context, recipeID string) (string, error)
		Resolve(ctx context.Context, key string) (string, error)
	}

	shortLinkService struct {
		shortLinkRepository ShortLinkRepository
		recipeRepository    recipe.RecipeRepository
		generateKey         func() (string, error)
	}
)

func NewShortLinkService(shortLinkRepository ShortLinkRepository, recipeRepository recipe.RecipeRepository) ShortLinkService {
	return &shortLinkService{
		shortLinkRepository: shortLinkRepository,
		recipeRepository:    recipeRepository,
		generateKey:         randomKey,
	}
}

// GetOrCreateLink returns the existing key for the recipe, or mints a new one.
// Inserts race against both unique columns: a loser on the recipe index
// re-reads and returns the winner's key; a key collision regenerates, bounded
// by maxKeyAttempts.
func (s *shortLinkService) GetOrCreateLink(ctx context.Context, recipeID string) (string, error) {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	link, err := s.shortLinkRepository.GetByRecipeID(ctx, recipeID)
	if err == nil {
		return link.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key, err := s.generateKey()
		if err != nil {
			return "", err
		}

		createErr := s.shortLinkRepository.Create(ctx, &entities.ShortLink{
			ID:        uuid.New(),
			Key:       key,
			RecipeID:  recipeUUID,
			CreatedAt: time.Now(),
		})
		if createErr == nil {
			return key, nil
		}

		// Either another caller linked this recipe first, or the key
		// collided. The re-read distinguishes the two.
		if link, lookupErr := s.shortLinkRepository.GetByRecipeID(ctx, recipeID); lookupErr == nil {
			return link.Key, nil
		} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return "", lookupErr
		}
	}

	return "", domain.ErrShortLinkExhausted
}

func (s *shortLinkService) Resolve(ctx context.Context, key string) (string, error) {
	link, err := s.shortLinkRepository.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrShortLinkNotFound
		}
		return "", err
	}
	return link.RecipeID.String(), nil
}

func randomKey() (string, error) {
	buf := make([]byte, KeyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:KeyLength], nil
}
