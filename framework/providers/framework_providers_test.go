package providers_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-magic/framework/config"
	"github.com/km-arc/go-magic/framework/container"
	"github.com/km-arc/go-magic/framework/providers"
	"github.com/km-arc/go-magic/framework/routing"
)

func boot(t *testing.T) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}}))
	require.NoError(t, reg.Register(&providers.LogServiceProvider{}))
	require.NoError(t, reg.Register(&providers.RoutingServiceProvider{}))
	require.NoError(t, reg.Boot())
	return c
}

func TestProviders_BindFrameworkComponents(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	c := boot(t)

	cfg, err := container.Resolve[*config.Config](c, providers.Config)
	require.NoError(t, err)
	alias, err := container.Resolve[*config.Config](c, "configuration")
	require.NoError(t, err)
	assert.Same(t, cfg, alias)

	_, err = container.Resolve[zerolog.Logger](c, providers.Logger)
	require.NoError(t, err)

	r, err := container.Resolve[*routing.Router](c, providers.Router)
	require.NoError(t, err)
	assert.Same(t, r, container.MustResolve[*routing.Router](c, providers.Router))
}

func TestRoutingProvider_GreedyFromConfig(t *testing.T) {
	t.Setenv("ROUTER_GREEDY", "true")
	t.Setenv("LOG_LEVEL", "error")
	c := boot(t)

	r := container.MustResolve[*routing.Router](c, providers.Router)
	r.MustAddRoute("/files/<path>", func(p routing.Params) (any, error) { return p.Get("path"), nil })

	got, err := r.Dispatch("/files/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "a/b.txt", got)
}

func TestLogProvider_BootResolvesLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	c := boot(t)

	assert.True(t, c.Resolved(providers.Logger))
	assert.True(t, c.Resolved(providers.Config))
	assert.False(t, c.Resolved(providers.Router), "router stays lazy until requested")
}
