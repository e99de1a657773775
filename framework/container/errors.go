package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDependencyNotFound matches any *DependencyNotFoundError via errors.Is.
	ErrDependencyNotFound = errors.New("dependency not found")

	// ErrCyclicDependency matches any *CyclicDependencyError via errors.Is.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrInvalidDefinition is returned when a Definition cannot be registered
	// or invoked (not a function, wrong arity, non-string dependency name).
	ErrInvalidDefinition = errors.New("invalid definition")
)

// DependencyNotFoundError is returned when Resolve reaches a name that has
// no definition and no cached instance.
type DependencyNotFoundError struct {
	Name string
	// Path lists the components being built when the lookup failed,
	// outermost first. Empty for a direct Resolve.
	Path []string
}

func (e *DependencyNotFoundError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("container: dependency [%s] not found", e.Name)
	}
	return fmt.Sprintf("container: dependency [%s] not found (required by %s)",
		e.Name, strings.Join(e.Path, " -> "))
}

func (e *DependencyNotFoundError) Is(target error) bool { return target == ErrDependencyNotFound }

// CyclicDependencyError is returned when resolving a name transitively
// depends on itself. Cycle starts and ends with the repeated name.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return "container: cyclic dependency " + strings.Join(e.Cycle, " -> ")
}

func (e *CyclicDependencyError) Is(target error) bool { return target == ErrCyclicDependency }

// FactoryError wraps an error returned by a factory function.
type FactoryError struct {
	Name string
	Err  error
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("container: building [%s]: %v", e.Name, e.Err)
}

func (e *FactoryError) Unwrap() error { return e.Err }

func definitionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDefinition, fmt.Sprintf(format, args...))
}
