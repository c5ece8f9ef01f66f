package shoppinglist

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		CollectItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// CollectItems gathers every ingredient line of every recipe in the user's
// cart, grouped by (name, measurement unit) with amounts summed. Grouping is
// by name and unit rather than ingredient id, so distinct ingredient rows
// sharing both are merged; callers depend on that. Rows come back sorted by
// name so the rendered list is deterministic.
func (r *shoppingListRepository) CollectItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
