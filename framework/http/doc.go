// Package http adapts a routing.Router to net/http and provides JSON
// response helpers.
//
//	mux := chi.NewRouter()
//	mux.Handle("/*", gohttp.Handler(router, logger))
//
// Dispatch results map to responses as follows:
//
//	string          → 200 text/plain
//	nil             → 204
//	anything else   → 200 {"data": v}
//	RouteNotFound   → 404 {"message": "Not found."}
//	other errors    → 500 {"message": "Server Error."}
package http
