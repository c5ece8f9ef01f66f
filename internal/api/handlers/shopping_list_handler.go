package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/shoppinglist"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingListHandler interface {
		DownloadShoppingList(c *fiber.Ctx) error
	}

	shoppingListHandler struct {
		shoppingListService shoppinglist.ShoppingListService
	}
)

func NewShoppingListHandler(shoppingListService shoppinglist.ShoppingListService) ShoppingListHandler {
	return &shoppingListHandler{shoppingListService: shoppingListService}
}

func (h *shoppingListHandler) DownloadShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	doc, err := h.shoppingListService.BuildShoppingList(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDownloadShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Content)
}
