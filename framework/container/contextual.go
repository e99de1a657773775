package container

// ContextualBuilder implements the fluent contextual binding API.
//
//	c.When("reportMailer").Needs("transport").Give(container.Inject("config", newSMTPTransport))
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// When starts a contextual binding for the component named concrete.
func (c *Container) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Needs names the dependency of the concrete component to override.
func (b *ContextualBuilder) Needs(name string) *ContextualBuilder {
	b.needs = name
	return b
}

// Give sets the definition used in place of the needed dependency while the
// concrete component is built. The override is not cached under the needed
// name; it lives inside the concrete singleton only.
func (b *ContextualBuilder) Give(def Definition) error {
	if def.err != nil {
		return def.err
	}
	c := b.container
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.canonical(b.concrete)
	if _, ok := c.contextual[key]; !ok {
		c.contextual[key] = make(map[string]Definition)
	}
	c.contextual[key][b.needs] = def
	return nil
}

// GiveValue is shorthand for Give(Value(v)).
//
//	c.When("photoStore").Needs("storagePath").GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(v any) error {
	return b.Give(Value(v))
}
