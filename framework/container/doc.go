// Package container provides a dependency injector that resolves named
// definitions into lazily built, memoized singletons.
//
// # Overview
//
// A definition pairs a factory function with the ordered names of the
// components it needs. Nothing is built at registration time. The first
// Resolve of a name resolves its dependencies depth first, calls the factory
// with them as positional arguments and caches the result; every later
// Resolve returns that same instance.
//
// # Explicit definitions
//
//	c := container.New()
//	c.Register("greeting", container.Value("Hello"))
//	c.Register("greeter", container.Inject("greeting", func(g string) *Greeter {
//	    return &Greeter{Greeting: g}
//	}))
//
//	g, err := container.Resolve[*Greeter](c, "greeter")
//
// Factories may return (T) or (T, error). A returned error aborts the
// resolution and is wrapped in *FactoryError.
//
// # Implicit definitions
//
// Go cannot read parameter names at runtime, so implicit definitions use
// parameter types instead: each parameter depends on the TypeKey of its type.
//
//	c.Provide(NewClock)                          // registered as TypeKey(*Clock)
//	c.Register("uptime", container.Implicit(func(clk *Clock) *Uptime { ... }))
//
//	clk, err := container.ResolveType[*Clock](c)
//
// # Errors
//
//	*DependencyNotFoundError  errors.Is(err, container.ErrDependencyNotFound)
//	*CyclicDependencyError    errors.Is(err, container.ErrCyclicDependency)
//	*FactoryError             wraps the factory's own error
//
// # Extras
//
//	c.Alias("config", "configuration")
//	c.Tag([]string{"cpuReport", "memReport"}, "reports")
//	c.Extend("greeter", func(v any) any { return &Loud{v.(*Greeter)} })
//	c.When("greeter").Needs("greeting").GiveValue("Howdy")
//	c.AfterResolving(func(name string, v any) { ... })
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&GreeterProvider{})
//	registry.Boot()
package container
