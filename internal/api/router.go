package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderlust-travel/wanderlust/internal/api/handler"
	"github.com/wanderlust-travel/wanderlust/internal/api/middleware"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
	"github.com/wanderlust-travel/wanderlust/internal/core/service"
	"github.com/wanderlust-travel/wanderlust/internal/infrastructure/config"
	mongodb "github.com/wanderlust-travel/wanderlust/internal/infrastructure/db/mongo"
	redisdb "github.com/wanderlust-travel/wanderlust/internal/infrastructure/db/redis"
	"github.com/wanderlust-travel/wanderlust/internal/session"
	"github.com/wanderlust-travel/wanderlust/internal/web"
)

const sessionTTL = 14 * 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, blobStore ports.BlobStore, cleaner service.ImageCleaner, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// HTML forms can only GET and POST; the hidden _method field upgrades
	// them to PUT/DELETE before routing.
	e.Pre(echomiddleware.MethodOverrideWithConfig(echomiddleware.MethodOverrideConfig{
		Getter: echomiddleware.MethodFromForm("_method"),
	}))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("wanderlust"))

	// --- Sessions ---
	codec := session.NewCookieCodec(cfg.SessionSecret, sessionTTL)
	sessions := session.NewManager(redisdb.NewSessionStore(rdb), codec, sessionTTL, cfg.Env == "production", log)
	e.Use(session.Middleware(sessions))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	listingRepo := mongodb.NewListingRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo, log)
	listingService := service.NewListingService(listingRepo, reviewRepo, userRepo, cleaner, log)
	reviewService := service.NewReviewService(reviewRepo, listingRepo, log)

	listingHandler := handler.NewListingHandler(listingService, blobStore)
	reviewHandler := handler.NewReviewHandler(reviewService)
	userHandler := handler.NewUserHandler(authService, sessions)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Gates ---
	login := middleware.RequireLogin()
	owner := middleware.RequireListingOwner(listingService)
	reviewAuthorOrOwner := middleware.RequireReviewAuthorOrOwner(listingService, reviewService)

	// --- Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/listings")
	})

	e.GET("/listings", listingHandler.Index)
	e.GET("/listings/new", listingHandler.NewForm, middleware.Gates(login))
	e.POST("/listings", listingHandler.Create, middleware.Gates(login))
	e.GET("/listings/:id", listingHandler.Show)
	e.GET("/listings/:id/edit", listingHandler.EditForm, middleware.Gates(login, owner))
	e.PUT("/listings/:id", listingHandler.Update, middleware.Gates(login, owner))
	e.DELETE("/listings/:id", listingHandler.Delete, middleware.Gates(login, owner))

	e.POST("/listings/:id/reviews", reviewHandler.Create, middleware.Gates(login))
	e.DELETE("/listings/:id/reviews/:reviewId", reviewHandler.Delete, middleware.Gates(login, reviewAuthorOrOwner))

	e.GET("/signup", userHandler.SignupForm)
	e.POST("/signup", userHandler.Signup)
	e.GET("/login", userHandler.LoginForm)
	e.POST("/login", userHandler.Login)
	// Logout is ungated: for an anonymous session it is a harmless no-op,
	// and a login gate here would record /logout as the post-login target.
	e.GET("/logout", userHandler.Logout)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e, nil
}
