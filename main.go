package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-magic/framework/app"
	"github.com/km-arc/go-magic/framework/container"
	"github.com/km-arc/go-magic/framework/providers"
	"github.com/km-arc/go-magic/framework/routing"
)

// Greeter says hello through the application logger.
type Greeter struct {
	greeting string
	logger   zerolog.Logger
}

func (g *Greeter) Greet(name string) string {
	msg := fmt.Sprintf("%s, %s!", g.greeting, name)
	g.logger.Info().Str("name", name).Msg("greeted")
	return msg
}

// Clock is registered implicitly, by type.
type Clock struct {
	started time.Time
}

func (c *Clock) Uptime() time.Duration { return time.Since(c.started) }

// Status depends on *Clock and *Greeter through their parameter types.
type Status struct {
	clock   *Clock
	greeter *Greeter
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := register(application.Container); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	routes(application.Router(), application.Container)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger := application.Logger()
		logger.Fatal().Err(err).Msg("server error")
	}
}

// ── Components ───────────────────────────────────────────────────────────────

func register(c *container.Container) error {
	if err := c.Register("greeting", container.Value("Hello")); err != nil {
		return err
	}

	// explicit: dependency names listed before the factory
	err := c.Register("greeter", container.Inject("greeting", providers.Logger,
		func(greeting string, logger zerolog.Logger) *Greeter {
			return &Greeter{greeting: greeting, logger: logger}
		}))
	if err != nil {
		return err
	}
	if _, err := c.Provide(func() *Clock { return &Clock{started: time.Now()} }); err != nil {
		return err
	}
	if err := c.Alias("greeter", container.TypeKey((*Greeter)(nil))); err != nil {
		return err
	}

	// implicit: dependencies derived from parameter types
	return c.Register("status", container.Implicit(func(clock *Clock, greeter *Greeter) *Status {
		return &Status{clock: clock, greeter: greeter}
	}))
}

// ── Routes ───────────────────────────────────────────────────────────────────

func routes(r *routing.Router, c *container.Container) {
	r.MustAddRoute("/", func(routing.Params) (any, error) {
		return "Hello World!", nil
	})

	r.MustAddRoute("/hello/<username>", func(p routing.Params) (any, error) {
		greeter, err := container.Resolve[*Greeter](c, "greeter")
		if err != nil {
			return nil, err
		}
		return greeter.Greet(p.Get("username")), nil
	})

	// never reached: "/hello/<username>" was registered first
	r.MustAddRoute("/hello/static", func(routing.Params) (any, error) {
		return "static", nil
	})

	r.Prefix("/api", func(api *routing.Router) {
		api.MustAddRoute("/status", func(routing.Params) (any, error) {
			status, err := container.Resolve[*Status](c, "status")
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"uptime":   status.clock.Uptime().Round(time.Millisecond).String(),
				"greeting": status.greeter.greeting,
			}, nil
		})

		api.MustAddRoute("/routes", func(routing.Params) (any, error) {
			out := make([]string, 0)
			for _, route := range r.Routes() {
				out = append(out, route.Template)
			}
			return out, nil
		})
	})
}
