package container

import (
	"fmt"
	"reflect"
)

// Resolve resolves name and type-asserts the instance.
//
//	greeter, err := container.Resolve[*Greeter](c, "greeter")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	instance, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, expected %T", name, instance, zero)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Use it during bootstrap
// where a missing component is a programming error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return typed
}

// ResolveType resolves the component registered under TypeKey of T, the
// counterpart of Container.Provide.
func ResolveType[T any](c *Container) (T, error) {
	return Resolve[T](c, typeKey(reflect.TypeFor[T]()))
}
