package http

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-magic/framework/routing"
)

// Handler exposes a routing.Router over net/http. The request path is
// dispatched as is; a string result is written as text/plain, anything else
// as {"data": v}. Unmatched paths become 404, handler errors 500.
func Handler(router *routing.Router, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		res := NewResponse(w)

		out, err := router.Dispatch(req.URL.Path)
		switch {
		case errors.Is(err, routing.ErrRouteNotFound):
			res.NotFound()
		case err != nil:
			logger.Error().Err(err).Str("path", req.URL.Path).Msg("handler failed")
			res.ServerError()
		default:
			write(res, out)
		}
	})
}

func write(res *Response, out any) {
	switch v := out.(type) {
	case nil:
		res.NoContent()
	case string:
		res.Text(http.StatusOK, v)
	default:
		res.Success(v)
	}
}
