package container

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// ── Container ─────────────────────────────────────────────────────────────────

// extender decorates an instance right after its factory ran.
type extender func(instance any) any

// resolvedEvent is queued while the lock is held and fired after release.
type resolvedEvent struct {
	name     string
	instance any
}

// Container resolves named definitions into lazily built singletons.
//
// Every name is built at most once. A single mutex is held for the whole
// resolution of a Resolve call, so concurrent first resolutions of the same
// name never construct twice. Factories receive resolved values, not the
// container, and therefore never re-enter it. A panicking factory is
// reported as *FactoryError and leaves the container usable.
type Container struct {
	mu sync.RWMutex

	// name → definition
	definitions map[string]Definition

	// name → resolved singleton instance
	instances map[string]any

	// alias → canonical name
	aliases map[string]string

	// name → extenders, applied in registration order
	extenders map[string][]extender

	// tag → names
	tags map[string][]string

	// contextual[concrete][needs] = definition used instead of needs
	contextual map[string]map[string]Definition

	reboundCallbacks map[string][]func(any)
	afterResolving   []func(name string, instance any)
}

// New creates an empty container bound to itself under "container".
func New() *Container {
	c := &Container{
		definitions:      make(map[string]Definition),
		instances:        make(map[string]any),
		aliases:          make(map[string]string),
		extenders:        make(map[string][]extender),
		tags:             make(map[string][]string),
		contextual:       make(map[string]map[string]Definition),
		reboundCallbacks: make(map[string][]func(any)),
	}
	c.instances["container"] = c
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores def under name. Nothing is built until name is resolved.
// Re-registering an already resolved name drops the cached instance; if
// Rebinding callbacks exist the name is rebuilt and handed to them.
//
//	c.Register("greeter", container.Inject("greeting", func(g string) *Greeter {
//	    return &Greeter{Greeting: g}
//	}))
func (c *Container) Register(name string, def Definition) error {
	if def.err != nil {
		return fmt.Errorf("container: register [%s]: %w", name, def.err)
	}

	c.mu.Lock()
	key := c.canonical(name)
	_, wasResolved := c.instances[key]
	delete(c.instances, key)
	c.definitions[key] = def
	cbs := slices.Clone(c.reboundCallbacks[key])
	c.mu.Unlock()

	if wasResolved && len(cbs) > 0 {
		instance, err := c.Resolve(key)
		if err != nil {
			return fmt.Errorf("container: rebinding [%s]: %w", name, err)
		}
		for _, cb := range cbs {
			cb(instance)
		}
	}
	return nil
}

// Singleton is shorthand for Register(name, Inject(deps..., factory)).
//
//	c.Singleton("greeter", func(g string) *Greeter { ... }, "greeting")
func (c *Container) Singleton(name string, factory any, deps ...string) error {
	args := make([]any, 0, len(deps)+1)
	for _, d := range deps {
		args = append(args, d)
	}
	return c.Register(name, Inject(append(args, factory)...))
}

// Provide registers an implicit definition under the TypeKey of the type the
// factory returns, so it can be consumed by other Implicit factories.
func (c *Container) Provide(factory any) (string, error) {
	def := Implicit(factory)
	if def.err != nil {
		return "", fmt.Errorf("container: provide: %w", def.err)
	}
	name := typeKey(def.outType())
	return name, c.Register(name, def)
}

// Instance caches a pre-built value under name.
func (c *Container) Instance(name string, instance any) {
	c.mu.Lock()
	key := c.canonical(name)
	delete(c.definitions, key)
	c.instances[key] = instance
	cbs := slices.Clone(c.reboundCallbacks[key])
	c.mu.Unlock()

	for _, cb := range cbs {
		cb(instance)
	}
}

// Alias registers an alternative name for name.
//
//	c.Alias("config", "configuration")
func (c *Container) Alias(name, alias string) error {
	if name == alias {
		return fmt.Errorf("container: [%s] is aliased to itself", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(name)
	return nil
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the instance of name. If name is already resolved, fn
// runs outside the container lock and its result replaces the cached
// instance, so fn may resolve other components.
//
// Extenders registered before name is resolved run while the first
// resolution holds the lock and must not call back into the container.
//
//	c.Extend("greeter", func(instance any) any {
//	    return &LoudGreeter{Inner: instance.(*Greeter)}
//	})
func (c *Container) Extend(name string, fn func(instance any) any) {
	c.mu.Lock()
	key := c.canonical(name)
	c.extenders[key] = append(c.extenders[key], fn)

	inst, ok := c.instances[key]
	c.mu.Unlock()
	if !ok {
		return
	}

	inst = fn(inst)

	c.mu.Lock()
	if _, still := c.instances[key]; !still {
		c.mu.Unlock()
		return
	}
	c.instances[key] = inst
	cbs := slices.Clone(c.reboundCallbacks[key])
	c.mu.Unlock()

	for _, cb := range cbs {
		cb(inst)
	}
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates names with a group.
//
//	c.Tag([]string{"cpuReport", "memReport"}, "reports")
func (c *Container) Tag(names []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], names...)
}

// Tagged resolves every name in tag, in tagging order.
func (c *Container) Tagged(tag string) ([]any, error) {
	c.mu.RLock()
	names := slices.Clone(c.tags[tag])
	c.mu.RUnlock()

	out := make([]any, 0, len(names))
	for _, name := range names {
		inst, err := c.Resolve(name)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the singleton for name, building it and its dependencies
// on first use. Failures leave the cache untouched for the failing names.
func (c *Container) Resolve(name string) (any, error) {
	instance, cbs, events, err := c.locked(func(events *[]resolvedEvent) (any, error) {
		return c.resolve(name, nil, events)
	})
	c.fire(cbs, events)
	return instance, err
}

// Invoke resolves the dependencies of def and calls its factory. The result
// is returned without being cached.
func (c *Container) Invoke(def Definition) (any, error) {
	if def.err != nil {
		return nil, fmt.Errorf("container: invoke: %w", def.err)
	}
	instance, cbs, events, err := c.locked(func(events *[]resolvedEvent) (any, error) {
		return c.invoke("", def, nil, events)
	})
	c.fire(cbs, events)
	return instance, err
}

// locked runs build under the container lock and returns the callbacks and
// events to fire once the lock is released.
func (c *Container) locked(build func(events *[]resolvedEvent) (any, error)) (any, []func(string, any), []resolvedEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var events []resolvedEvent
	instance, err := build(&events)
	return instance, slices.Clone(c.afterResolving), events, err
}

// resolve must be called with mu held. path holds the canonical names being
// built, outermost first.
func (c *Container) resolve(name string, path []string, events *[]resolvedEvent) (any, error) {
	key := c.canonical(name)

	if inst, ok := c.instances[key]; ok {
		return inst, nil
	}

	if i := slices.Index(path, key); i >= 0 {
		cycle := append(slices.Clone(path[i:]), key)
		return nil, &CyclicDependencyError{Cycle: cycle}
	}

	def, ok := c.definitions[key]
	if !ok {
		return nil, &DependencyNotFoundError{Name: name, Path: slices.Clone(path)}
	}

	instance, err := c.invoke(key, def, path, events)
	if err != nil {
		return nil, err
	}

	for _, ext := range c.extenders[key] {
		instance = ext(instance)
	}

	c.instances[key] = instance
	*events = append(*events, resolvedEvent{name: key, instance: instance})
	return instance, nil
}

// invoke builds def on behalf of concrete ("" for anonymous invocations).
func (c *Container) invoke(concrete string, def Definition, path []string, events *[]resolvedEvent) (any, error) {
	if concrete != "" {
		path = append(slices.Clone(path), concrete)
	}

	args := make([]any, len(def.deps))
	for i, dep := range def.deps {
		var (
			inst any
			err  error
		)
		if override, ok := c.contextual[concrete][dep]; ok && concrete != "" {
			inst, err = c.invoke("", override, path, events)
		} else {
			inst, err = c.resolve(dep, path, events)
		}
		if err != nil {
			return nil, err
		}
		args[i] = inst
	}

	instance, err := def.call(args)
	if err != nil {
		name := concrete
		if name == "" {
			name = "<invoke>"
		}
		return nil, &FactoryError{Name: name, Err: err}
	}
	return instance, nil
}

func (c *Container) fire(cbs []func(string, any), events []resolvedEvent) {
	for _, ev := range events {
		for _, cb := range cbs {
			cb(ev.name, ev.instance)
		}
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if name has a definition or an instance.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(name)
	_, hasDef := c.definitions[key]
	_, hasInstance := c.instances[key]
	return hasDef || hasInstance
}

// Resolved returns true if name has a cached instance.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(name)]
	return ok
}

// Forget removes the definition and instance of name.
func (c *Container) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	delete(c.definitions, key)
	delete(c.instances, key)
}

// Flush resets the container, keeping only the self binding. Rebinding and
// AfterResolving callbacks are dropped too.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitions = make(map[string]Definition)
	c.instances = map[string]any{"container": c}
	c.aliases = make(map[string]string)
	c.extenders = make(map[string][]extender)
	c.tags = make(map[string][]string)
	c.contextual = make(map[string]map[string]Definition)
	c.reboundCallbacks = make(map[string][]func(any))
	c.afterResolving = nil
}

// Bindings returns every registered name, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.definitions)+len(c.instances))
	for k := range c.definitions {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.definitions[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical name.
func (c *Container) canonical(name string) string {
	if target, ok := c.aliases[name]; ok {
		return target
	}
	return name
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// Rebinding registers a callback fired with the new instance whenever name is
// re-registered, replaced through Instance or extended after resolution.
func (c *Container) Rebinding(name string, cb func(instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	c.reboundCallbacks[key] = append(c.reboundCallbacks[key], cb)
}

// AfterResolving registers a callback fired once for every instance built.
// Callbacks run after the container lock is released and may resolve.
func (c *Container) AfterResolving(cb func(name string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v. Pointers are
// dereferenced, so *Foo and Foo share a key.
//
//	key := container.TypeKey((*Clock)(nil))  // "github.com/acme/app.Clock"
func TypeKey(v any) string {
	return typeKey(reflect.TypeOf(v))
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
