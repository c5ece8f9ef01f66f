package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessFavorite        = "recipe added to favorites"
	MessageSuccessUnfavorite      = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to add recipe to favorites"
	MessageFailedUnfavorite      = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"

	ErrRecipeNotFound          = errors.New("recipe not found")
	ErrRecipeAccessDenied      = errors.New("not the author of this recipe")
	ErrCookingTimeTooShort     = errors.New("cooking time below minimum")
	ErrAmountTooSmall          = errors.New("ingredient amount below minimum")
	ErrDuplicateIngredientLine = errors.New("ingredient listed twice in recipe")
	ErrAlreadyFavorited        = errors.New("recipe already in favorites")
	ErrNotFavorited            = errors.New("recipe not in favorites")
	ErrAlreadyInCart           = errors.New("recipe already in shopping cart")
	ErrNotInCart               = errors.New("recipe not in shopping cart")
)

type (
	RecipeIngredientRequest struct {
		IngredientID string `json:"ingredient_id" validate:"required,uuid"`
		Amount       int    `json:"amount" validate:"required,min=1"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=256"`
		Image       string                    `json:"image"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	UpdateRecipeRequest struct {
		Name        string                    `json:"name" validate:"omitempty,max=256"`
		Image       string                    `json:"image"`
		Text        string                    `json:"text"`
		CookingTime int                       `json:"cooking_time" validate:"omitempty,min=1"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"omitempty,min=1,dive"`
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	// RecipeShortResponse is the compact shape used in subscription listings.
	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeResponse struct {
		ID                string                     `json:"id"`
		Author            UserResponse               `json:"author"`
		Name              string                     `json:"name"`
		Image             string                     `json:"image,omitempty"`
		Text              string                     `json:"text"`
		CookingTime       int                        `json:"cooking_time"`
		Ingredients       []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited       bool                       `json:"is_favorited"`
		IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
		CreatedAt         time.Time                  `json:"created_at"`
	}

	RecipeFilter struct {
		AuthorID         string
		OnlyFavorited    bool
		OnlyInCart       bool
	}
)
