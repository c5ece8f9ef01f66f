package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/shortlink"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type (
	ShortLinkHandler interface {
		GetLink(c *fiber.Ctx) error
		Redirect(c *fiber.Ctx) error
	}

	shortLinkHandler struct {
		shortLinkService shortlink.ShortLinkService
	}
)

func NewShortLinkHandler(shortLinkService shortlink.ShortLinkService) ShortLinkHandler {
	return &shortLinkHandler{shortLinkService: shortLinkService}
}

func (h *shortLinkHandler) GetLink(c *fiber.Ctx) error {
	key, err := h.shortLinkService.GetOrCreateLink(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetShortLink, err)
		case errors.Is(err, domain.ErrShortLinkExhausted):
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedGetShortLink, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShortLink, err)
		}
	}

	// The full URL is composed from the request's own scheme and host.
	return c.JSON(domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s://%s/api/s/%s", c.Protocol(), c.Hostname(), key),
	})
}

func (h *shortLinkHandler) Redirect(c *fiber.Ctx) error {
	recipeID, err := h.shortLinkService.Resolve(c.Context(), c.Params("key"))
	if err != nil {
		if errors.Is(err, domain.ErrShortLinkNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetShortLink, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShortLink, err)
	}

	return c.Redirect(fmt.Sprintf("/recipes/%s/", recipeID), fiber.StatusFound)
}
