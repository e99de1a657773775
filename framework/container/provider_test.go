package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-magic/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type greetingProvider struct {
	container.BaseProvider
	registerCalls int
}

func (p *greetingProvider) Register(app *container.Container) error {
	p.registerCalls++
	return app.Register("greeting", container.Value("Hello"))
}

type greeterProvider struct {
	registerCalled bool
	bootCalled     bool
	booted         *greeter
}

func (p *greeterProvider) Register(app *container.Container) error {
	p.registerCalled = true
	return app.Singleton("greeter", func(g string) *greeter { return &greeter{greeting: g} }, "greeting")
}

func (p *greeterProvider) Boot(app *container.Container) error {
	p.bootCalled = true
	g, err := container.Resolve[*greeter](app, "greeter")
	p.booted = g
	return err
}

type failingProvider struct {
	container.BaseProvider
}

func (p *failingProvider) Register(_ *container.Container) error {
	return errors.New("no config")
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_RegisterCalledImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	p := &greeterProvider{}

	require.NoError(t, reg.Register(p))
	assert.True(t, p.registerCalled)
	assert.False(t, p.bootCalled, "Boot must wait for registry.Boot()")
}

func TestRegistry_BootResolvesAcrossProviders(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	// greeter depends on greeting, registered by a later provider
	gp := &greeterProvider{}
	require.NoError(t, reg.Register(gp))
	require.NoError(t, reg.Register(&greetingProvider{}))
	require.NoError(t, reg.Boot())

	require.NotNil(t, gp.booted)
	assert.Equal(t, "Hello", gp.booted.greeting)
	assert.Same(t, gp.booted, container.MustResolve[*greeter](c, "greeter"))
}

func TestRegistry_BootIdempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	assert.False(t, reg.Booted())

	require.NoError(t, reg.Boot())
	require.NoError(t, reg.Boot())
	assert.True(t, reg.Booted())
}

func TestRegistry_DuplicateRegisterIgnored(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	p := &greetingProvider{}

	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalls)
	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_RegisterAfterBootBootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Register(&greetingProvider{}))
	require.NoError(t, reg.Boot())

	p := &greeterProvider{}
	require.NoError(t, reg.Register(p))
	assert.True(t, p.bootCalled)
	assert.Equal(t, "Hello", p.booted.greeting)
}

func TestRegistry_BootFailureSurfaces(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Register(&greeterProvider{}))

	err := reg.Boot()
	assert.ErrorIs(t, err, container.ErrDependencyNotFound)
}

func TestRegistry_RegisterFailureNotRecorded(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	err := reg.Register(&failingProvider{})
	assert.ErrorContains(t, err, "no config")
	assert.Empty(t, reg.Providers())
}

func TestBaseProvider_BootNoop(t *testing.T) {
	var p container.BaseProvider
	assert.NoError(t, p.Boot(container.New()))
}
