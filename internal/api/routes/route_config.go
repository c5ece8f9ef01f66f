package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	IngredientHandler   handlers.IngredientHandler
	RecipeHandler       handlers.RecipeHandler
	ShoppingListHandler handlers.ShoppingListHandler
	ShortLinkHandler    handlers.ShortLinkHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Ingredients()
	c.Recipes()
	c.ShortLinks()
	c.GuestRoute()
}

func (c *Config) Users() {
	users := c.App.Group("/api/users")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Post("/forget", c.UserHandler.ForgotPassword)
		users.Post("/reset", c.UserHandler.ResetPassword)
		users.Get("/me", auth, c.UserHandler.Me)
		users.Put("/me/avatar", auth, c.UserHandler.UpdateAvatar)
		users.Delete("/me/avatar", auth, c.UserHandler.DeleteAvatar)
		users.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)
		users.Post("/:id/subscribe", auth, c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	// Fixed paths go before the :id routes so fiber does not swallow them.
	recipes.Get("/download_shopping_cart", auth, c.ShoppingListHandler.DownloadShoppingList)

	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", auth, c.RecipeHandler.FavoriteRecipe)
	recipes.Delete("/:id/favorite", auth, c.RecipeHandler.UnfavoriteRecipe)
	recipes.Post("/:id/shopping_cart", auth, c.RecipeHandler.AddToCart)
	recipes.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromCart)

	recipes.Get("/:id/get-link", c.ShortLinkHandler.GetLink)
}

func (c *Config) ShortLinks() {
	c.App.Get("/api/s/:key", c.ShortLinkHandler.Redirect)
	c.App.Get("/s/:key", c.ShortLinkHandler.Redirect)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
