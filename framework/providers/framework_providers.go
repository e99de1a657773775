package providers

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-magic/framework/config"
	"github.com/km-arc/go-magic/framework/container"
	"github.com/km-arc/go-magic/framework/log"
	"github.com/km-arc/go-magic/framework/routing"
)

// Names of the components bound by the framework providers.
const (
	Config = "config"
	Logger = "logger"
	Router = "router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the environment configuration.
//
// Bound names:
//   - "config", alias "configuration" → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	envFiles := p.EnvFiles
	err := app.Register(Config, container.Inject(func() *config.Config {
		return config.Load(envFiles...)
	}))
	if err != nil {
		return err
	}
	return app.Alias(Config, "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider binds the application logger and, once booted, traces
// every component the container builds at debug level.
//
// Bound names:
//   - "logger" → zerolog.Logger (depends on "config")
type LogServiceProvider struct{}

func (p *LogServiceProvider) Register(app *container.Container) error {
	return app.Singleton(Logger, func(cfg *config.Config) zerolog.Logger {
		return log.New(log.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cfg.App.Name)
	}, Config)
}

func (p *LogServiceProvider) Boot(app *container.Container) error {
	logger, err := container.Resolve[zerolog.Logger](app, Logger)
	if err != nil {
		return err
	}
	app.AfterResolving(func(name string, instance any) {
		logger.Debug().Str("component", name).Str("type", fmt.Sprintf("%T", instance)).Msg("resolved")
	})
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the router.
//
// Bound names:
//   - "router" → *routing.Router (depends on "config", "logger")
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Singleton(Router, func(cfg *config.Config, logger zerolog.Logger) *routing.Router {
		opts := []routing.Option{routing.WithLogger(logger)}
		if cfg.Router.Greedy {
			opts = append(opts, routing.WithGreedyCapture())
		}
		return routing.New(opts...)
	}, Config, Logger)
}
