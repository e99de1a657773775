// Package routing compiles route templates into anchored matchers and
// dispatches paths to the first matching handler.
//
// A template is a path with "<name>" placeholders:
//
//	r := routing.New()
//	r.MustAddRoute("/", func(routing.Params) (any, error) { return "Hello World!", nil })
//	r.MustAddRoute("/hello/<username>", func(p routing.Params) (any, error) {
//	    return "Hello " + p.Get("username"), nil
//	})
//
//	out, err := r.Dispatch("/hello/ains") // "Hello ains"
//	_, err = r.Dispatch("/nope")          // *RouteNotFoundError
//
// Placeholders capture a single segment by default, so "/hello/<username>"
// does not match "/hello/ains/extra". WithGreedyCapture lets them span "/".
//
// Routes are tried in registration order; the first full match wins even if
// a later route is more specific.
package routing
