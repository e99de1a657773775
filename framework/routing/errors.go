package routing

import (
	"errors"
	"fmt"
)

// ErrRouteNotFound matches any *RouteNotFoundError via errors.Is.
var ErrRouteNotFound = errors.New("route not found")

// RouteNotFoundError is returned by Dispatch when no route matches Path.
type RouteNotFoundError struct {
	Path string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("routing: no route matches %q", e.Path)
}

func (e *RouteNotFoundError) Is(target error) bool { return target == ErrRouteNotFound }

// PatternError is returned when a route template cannot be compiled.
type PatternError struct {
	Template string
	Reason   string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("routing: template %q: %s", e.Template, e.Reason)
}
