package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"postboard/internal/auth"
	"postboard/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Secured routes (require a non-revoked bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: parseTokenFunc(jwtService, tokenStore),
	}))

	secured.GET("/user", authHandler.Me)
	secured.POST("/logout", authHandler.Logout)

	// Profile routes
	secured.GET("/profile", profileHandler.Show)
	secured.PUT("/profile", profileHandler.Update)

	// Post routes
	secured.GET("/posts", postHandler.Index)
	secured.POST("/posts", postHandler.Store)
	secured.GET("/posts/:id", postHandler.Show)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Destroy)

	// Like routes
	secured.GET("/posts/:id/likes", likeHandler.Index)
	secured.POST("/posts/:id/like", likeHandler.Store)
	secured.DELETE("/posts/:id/like", likeHandler.Destroy)

	// Comment routes
	secured.GET("/posts/:id/comments", commentHandler.Index)
	secured.POST("/posts/:id/comments", commentHandler.Store)
	secured.PUT("/posts/:id/comments/:commentId", commentHandler.Update)
	secured.DELETE("/posts/:id/comments/:commentId", commentHandler.Destroy)
}

// parseTokenFunc validates the JWT signature and claims, then checks the
// per-user revocation watermark so logged-out tokens stop working. The
// returned claims end up in the context under "user".
func parseTokenFunc(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) func(c echo.Context, tokenString string) (interface{}, error) {
	return func(c echo.Context, tokenString string) (interface{}, error) {
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			return nil, err
		}

		revoked, err := tokenStore.IsRevoked(c.Request().Context(), claims.UserID, claims.IssuedAtNano)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
		}

		return claims, nil
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
