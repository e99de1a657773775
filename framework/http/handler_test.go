package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	gohttp "github.com/km-arc/go-magic/framework/http"
	"github.com/km-arc/go-magic/framework/routing"
)

func do(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler(t *testing.T) {
	r := routing.New()
	r.MustAddRoute("/", func(routing.Params) (any, error) { return "Hello World!", nil })
	r.MustAddRoute("/users/<id>", func(p routing.Params) (any, error) {
		return map[string]string{"id": p.Get("id")}, nil
	})
	r.MustAddRoute("/empty", func(routing.Params) (any, error) { return nil, nil })
	r.MustAddRoute("/fail", func(routing.Params) (any, error) { return nil, errors.New("boom") })

	h := gohttp.Handler(r, zerolog.Nop())

	tests := []struct {
		path        string
		status      int
		contentType string
		body        string
	}{
		{"/", http.StatusOK, "text/plain; charset=utf-8", "Hello World!"},
		{"/users/7", http.StatusOK, "application/json", `{"data":{"id":"7"}}` + "\n"},
		{"/empty", http.StatusNoContent, "", ""},
		{"/missing", http.StatusNotFound, "application/json", `{"message":"Not found."}` + "\n"},
		{"/fail", http.StatusInternalServerError, "application/json", `{"message":"Server Error."}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := do(t, h, tt.path)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestResponse_Helpers(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).NotFound("gone")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"gone"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	gohttp.NewResponse(rr).Success([]int{1, 2})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[1,2]}`, rr.Body.String())

	rr = httptest.NewRecorder()
	gohttp.NewResponse(rr).NoContent()
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Zero(t, rr.Body.Len())
}
