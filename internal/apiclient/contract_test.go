package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/metinatakli/movie-booking-web/api"
	"github.com/stretchr/testify/require"
)

// contractServer is a fake backend that rejects any request which does not
// conform to api/backend.yaml before handing it to the test handler.
type contractServer struct {
	*httptest.Server
	router  routers.Router
	handler http.HandlerFunc
	calls   []string
}

func newContractServer(t *testing.T) *contractServer {
	t.Helper()

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.BackendSpec)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(loader.Context))

	router, err := legacyrouter.NewRouter(doc)
	require.NoError(t, err)

	cs := &contractServer{router: router}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.calls = append(cs.calls, r.Method+" "+r.URL.RequestURI())

		route, pathParams, err := cs.router.FindRoute(r)
		if err != nil {
			t.Errorf("request %s %s matches no backend route: %v", r.Method, r.URL, err)
			http.Error(w, `{"error":"no route"}`, http.StatusNotFound)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
		}

		err = openapi3filter.ValidateRequest(context.Background(), input)
		if err != nil {
			t.Errorf("request %s %s violates backend contract: %v", r.Method, r.URL, err)
			http.Error(w, `{"error":"contract violation"}`, http.StatusBadRequest)
			return
		}

		if cs.handler == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		cs.handler(w, r)
	}))

	t.Cleanup(cs.Close)

	return cs
}
