package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/handlers"
	"github.com/gxmovies/backend/internal/middleware/auth"
)

type Deps struct {
	UserHandler         *handlers.UserHandler
	MovieHandler        *handlers.MovieHandler
	CartHandler         *handlers.CartHandler
	FavoriteHandler     *handlers.FavoriteHandler
	ReviewHandler       *handlers.ReviewHandler
	PurchaseHandler     *handlers.PurchaseHandler
	AdminHandler        *handlers.AdminHandler
	SearchHandler       *handlers.SearchHandler
	NotificationHandler *handlers.NotificationHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/notifications", d.NotificationHandler.Stream)

	api := e.Group("/api")

	// registration and logins sit outside the rate limiter
	authGroup := api.Group("/users/auth")
	authGroup.POST("/send-otp", d.UserHandler.SendOTP)
	authGroup.POST("/register", d.UserHandler.Register)
	authGroup.POST("/login/user", d.UserHandler.LoginUser)
	authGroup.POST("/login/admin", d.UserHandler.LoginAdmin)

	users := api.Group("/users")
	users.GET("/me", d.UserHandler.Me, auth.RequireUser)
	users.GET("/:id", d.UserHandler.GetUser, auth.RequireUser)
	users.PUT("/:id", d.UserHandler.Update, auth.RequireUser)
	users.GET("", d.UserHandler.GetAll, auth.AdminOnly)
	users.PUT("/:id/block", d.UserHandler.Block, auth.AdminOnly)
	users.PUT("/:id/unblock", d.UserHandler.Unblock, auth.AdminOnly)

	movies := api.Group("/movies")
	movies.GET("/search", d.SearchHandler.Search)
	movies.GET("/available", d.MovieHandler.GetAvailable)
	movies.GET("/genre/:genre", d.MovieHandler.GetByGenre)
	movies.GET("/:id", d.MovieHandler.Get)
	movies.GET("", d.MovieHandler.GetAll, auth.AdminOnly)
	movies.POST("", d.MovieHandler.Add, auth.AdminOnly)
	movies.PUT("/:id", d.MovieHandler.Update, auth.AdminOnly)
	movies.DELETE("/:id", d.MovieHandler.Delete, auth.AdminOnly)

	carts := api.Group("/carts", auth.RequireUser)
	carts.GET("", d.CartHandler.List)
	carts.POST("/:movieId", d.CartHandler.Add)
	carts.GET("/contains/:movieId", d.CartHandler.Contains)
	carts.DELETE("/batch", d.CartHandler.RemoveMany)
	carts.DELETE("/clear", d.CartHandler.Clear)
	carts.DELETE("/:movieId", d.CartHandler.Remove)

	favorites := api.Group("/favorites", auth.RequireUser)
	favorites.GET("", d.FavoriteHandler.List)
	favorites.POST("/:movieId", d.FavoriteHandler.Add)
	favorites.GET("/contains/:movieId", d.FavoriteHandler.Contains)
	favorites.DELETE("/id/:id", d.FavoriteHandler.RemoveByID)
	favorites.DELETE("/:movieId", d.FavoriteHandler.Remove)

	reviews := api.Group("/reviews")
	reviews.GET("/movie/:movieId", d.ReviewHandler.ByMovie)
	reviews.POST("", d.ReviewHandler.Create, auth.RequireUser)
	reviews.PUT("/:id/report", d.ReviewHandler.Report, auth.RequireUser)
	reviews.DELETE("/:id", d.ReviewHandler.Delete, auth.AdminOnly)
	reviews.GET("/reported", d.ReviewHandler.Reported, auth.AdminOnly)

	purchases := api.Group("/purchases", auth.RequireUser)
	purchases.POST("", d.PurchaseHandler.Create)
	purchases.GET("", d.PurchaseHandler.History)
	purchases.GET("/movies", d.PurchaseHandler.Movies)
	purchases.GET("/contains/:movieId", d.PurchaseHandler.IsPurchased)
	purchases.GET("/:id/details", d.PurchaseHandler.Details)
	purchases.GET("/:id/invoice", d.PurchaseHandler.Invoice)

	admin := api.Group("/admin", auth.AdminOnly)
	admin.GET("/summary", d.AdminHandler.Summary)
	admin.GET("/chart", d.AdminHandler.ChartData)
}
