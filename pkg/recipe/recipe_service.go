package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/ingredient"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error

		FavoriteRecipe(ctx context.Context, recipeID, userID string) error
		UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) error
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository, ingredientRepository ingredient.IngredientRepository) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	if req.CookingTime < utils.MinCookingTime() {
		return domain.RecipeResponse{}, domain.ErrCookingTimeTooShort
	}

	authorUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	lines, err := s.buildIngredientLines(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, recipe, userID), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toRecipeResponse(ctx, recipe, userID))
	}
	return result, count, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrRecipeAccessDenied
	}

	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Image != "" {
		recipe.Image = req.Image
	}
	if req.Text != "" {
		recipe.Text = req.Text
	}
	if req.CookingTime != 0 {
		if req.CookingTime < utils.MinCookingTime() {
			return domain.RecipeResponse{}, domain.ErrCookingTimeTooShort
		}
		recipe.CookingTime = req.CookingTime
	}

	var lines []*entities.RecipeIngredient
	if req.Ingredients != nil {
		lines, err = s.buildIngredientLines(ctx, req.Ingredients)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	// Save through a copy without preloaded associations so gorm does not
	// upsert them alongside the recipe row.
	updated := entities.Recipe{
		ID:          recipe.ID,
		AuthorID:    recipe.AuthorID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Timestamp:   recipe.Timestamp,
	}
	if err := s.recipeRepository.UpdateRecipe(ctx, &updated, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID {
		return domain.ErrRecipeAccessDenied
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	if err := s.checkRecipeExists(ctx, recipeID); err != nil {
		return err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if favorited {
		return domain.ErrAlreadyFavorited
	}

	return s.recipeRepository.AddFavorite(ctx, userID, recipeID)
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	affected, err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) error {
	if err := s.checkRecipeExists(ctx, recipeID); err != nil {
		return err
	}

	inCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if inCart {
		return domain.ErrAlreadyInCart
	}

	return s.recipeRepository.AddToCart(ctx, userID, recipeID)
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	affected, err := s.recipeRepository.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) checkRecipeExists(ctx context.Context, recipeID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// buildIngredientLines validates the requested lines against the ingredient
// directory: every ingredient must exist, appear at most once, and carry at
// least the configured minimum amount.
func (s *recipeService) buildIngredientLines(ctx context.Context, reqs []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredient, error) {
	seen := make(map[string]bool, len(reqs))
	lines := make([]*entities.RecipeIngredient, 0, len(reqs))

	for _, req := range reqs {
		if req.Amount < utils.MinIngredientAmount() {
			return nil, domain.ErrAmountTooSmall
		}
		if seen[req.IngredientID] {
			return nil, domain.ErrDuplicateIngredientLine
		}
		seen[req.IngredientID] = true

		ing, err := s.ingredientRepository.GetIngredientByID(ctx, req.IngredientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrIngredientNotFound
			}
			return nil, err
		}

		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ing.ID,
			Amount:       req.Amount,
		})
	}

	return lines, nil
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, userID string) domain.RecipeResponse {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		res := domain.RecipeIngredientResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			res.Name = line.Ingredient.Name
			res.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, res)
	}

	author := domain.UserResponse{ID: recipe.AuthorID.String()}
	if recipe.Author != nil {
		author.Email = recipe.Author.Email
		author.Username = recipe.Author.Username
		author.FirstName = recipe.Author.FirstName
		author.LastName = recipe.Author.LastName
		author.Avatar = recipe.Author.Avatar
	}

	isFavorited := false
	isInCart := false
	if userID != "" {
		isFavorited, _ = s.recipeRepository.IsFavorited(ctx, userID, recipe.ID.String())
		isInCart, _ = s.recipeRepository.IsInCart(ctx, userID, recipe.ID.String())
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Author:           author,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        recipe.CreatedAt,
	}
}
