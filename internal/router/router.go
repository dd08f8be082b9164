package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"autostats/internal/auth"
	"autostats/internal/config"
	"autostats/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	vehicleHandler *handler.VehicleHandler,
	recordHandler *handler.ServiceRecordHandler,
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
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/confirm", authHandler.ConfirmEmail)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Vehicle routes
	secured.GET("/vehicles", vehicleHandler.List)
	secured.POST("/vehicles", vehicleHandler.Create)
	secured.GET("/vehicles/:id", vehicleHandler.Get)
	secured.PUT("/vehicles/:id", vehicleHandler.Update)
	secured.DELETE("/vehicles/:id", vehicleHandler.Delete)

	// Service-record routes, scoped under the owning vehicle
	secured.GET("/vehicles/:id/service-records", recordHandler.ListForVehicle)
	secured.POST("/vehicles/:id/service-records", recordHandler.Create)
	secured.GET("/vehicles/:id/service-records/export", recordHandler.Export)
	secured.PUT("/service-records/:id", recordHandler.Update)
	secured.DELETE("/service-records/:id", recordHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
