package container

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// Definition describes how to build a component: the ordered names of its
// dependencies and the factory that receives them positionally.
//
// Build one with Inject (explicit names), Implicit (names derived from the
// factory's parameter types) or Value (pre-built instance).
type Definition struct {
	deps    []string
	factory reflect.Value
	value   any
	isValue bool
	err     error
}

// Inject builds an explicit definition. The last argument is the factory,
// every preceding argument is a dependency name in the order the factory
// takes them.
//
//	container.Inject("config", "logger", func(cfg *config.Config, l zerolog.Logger) *Mailer {
//	    return NewMailer(cfg, l)
//	})
func Inject(args ...any) Definition {
	if len(args) == 0 {
		return Definition{err: definitionError("Inject called without a factory")}
	}
	deps := make([]string, 0, len(args)-1)
	for i, a := range args[:len(args)-1] {
		name, ok := a.(string)
		if !ok {
			return Definition{err: definitionError("dependency %d is %T, want string", i, a)}
		}
		deps = append(deps, name)
	}
	return newDefinition(deps, args[len(args)-1])
}

// Implicit builds a definition whose dependency names are the TypeKey of
// each factory parameter type. A variadic ...T parameter depends on a single
// component keyed by T.
//
//	c.Register("mailer", container.Implicit(func(cfg *config.Config) *Mailer { ... }))
//	// depends on TypeKey((*config.Config)(nil))
func Implicit(factory any) Definition {
	fn := reflect.ValueOf(factory)
	if fn.Kind() != reflect.Func {
		return Definition{err: definitionError("factory is %T, want func", factory)}
	}
	ft := fn.Type()
	deps := make([]string, ft.NumIn())
	for i := range deps {
		deps[i] = typeKey(paramType(ft, i))
	}
	return newDefinition(deps, factory)
}

// Value wraps a pre-built instance. Unlike Container.Instance the value is
// only cached once it is first resolved.
func Value(v any) Definition {
	return Definition{value: v, isValue: true}
}

// Dependencies returns a copy of the ordered dependency names.
func (d Definition) Dependencies() []string {
	return append([]string(nil), d.deps...)
}

// Err reports why the definition is unusable, or nil.
func (d Definition) Err() error { return d.err }

func newDefinition(deps []string, factory any) Definition {
	fn := reflect.ValueOf(factory)
	if fn.Kind() != reflect.Func {
		return Definition{err: definitionError("factory is %T, want func", factory)}
	}
	ft := fn.Type()

	switch {
	case ft.IsVariadic() && len(deps) < ft.NumIn()-1:
		return Definition{err: definitionError("factory takes at least %d arguments, %d dependencies declared", ft.NumIn()-1, len(deps))}
	case !ft.IsVariadic() && len(deps) != ft.NumIn():
		return Definition{err: definitionError("factory takes %d arguments, %d dependencies declared", ft.NumIn(), len(deps))}
	}

	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return Definition{err: definitionError("second factory result is %s, want error", ft.Out(1))}
		}
	default:
		return Definition{err: definitionError("factory returns %d values, want (T) or (T, error)", ft.NumOut())}
	}

	return Definition{deps: deps, factory: fn}
}

// call invokes the factory with already-resolved dependencies. A panic in
// the factory is returned as an error.
func (d Definition) call(args []any) (instance any, err error) {
	if d.isValue {
		return d.value, nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			instance, err = nil, fmt.Errorf("factory panicked: %v", rec)
		}
	}()

	ft := d.factory.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(ft, i)
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("argument %d [%s] is %s, not assignable to %s", i, d.deps[i], v.Type(), pt)
		}
		in[i] = v
	}

	out := d.factory.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

// outType is the type of the value the factory produces, or nil for Value.
func (d Definition) outType() reflect.Type {
	if d.isValue || !d.factory.IsValid() {
		return nil
	}
	return d.factory.Type().Out(0)
}
