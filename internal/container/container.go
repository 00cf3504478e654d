package container

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-user-directory/app/observability/metrics"
	"github.com/FACorreiaa/go-user-directory/config"
	"github.com/FACorreiaa/go-user-directory/internal/api/auth"
	"github.com/FACorreiaa/go-user-directory/internal/api/user"
	"github.com/FACorreiaa/go-user-directory/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Directory   *user.UserDirectory
	Issuer      *auth.TokenIssuer
	Metrics     *metrics.AppMetrics
	AuthHandler *auth.HandlerImpl
	UserHandler *user.HandlerImpl
}

// NewContainer initializes and returns a new dependency container.
func NewContainer(cfg *config.Config, logger *slog.Logger, meter metric.Meter) (*Container, error) {
	appMetrics, err := metrics.New(meter)
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	directory, err := user.NewUserDirectory(user.WithBcryptCost(cfg.Security.BcryptCost))
	if err != nil {
		return nil, fmt.Errorf("init user directory: %w", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	authService := auth.NewAuthService(directory, issuer, cfg.Security, appMetrics, logger)
	authHandler := auth.NewAuthHandlerImpl(authService, logger)

	userService := user.NewUserService(directory, appMetrics, logger)
	userHandler := user.NewHandlerImpl(userService, logger)

	logger.Info("Container initialized", slog.String("bootstrap_admin", user.BootstrapAdminLogin))

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Directory:   directory,
		Issuer:      issuer,
		Metrics:     appMetrics,
		AuthHandler: authHandler,
		UserHandler: userHandler,
	}, nil
}

// RouterConfig returns the dependencies SetupRouter needs.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		AuthHandler:            c.AuthHandler,
		UserHandler:            c.UserHandler,
		AuthenticateMiddleware: auth.Authenticate(c.Logger, c.Issuer),
		AllowedOrigins:         c.Config.CORS.AllowedOrigins,
	}
}
