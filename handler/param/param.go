package param

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding binds route params, query values and an optional json body
// onto v. Later sources override earlier ones.
func Binding(r *http.Request, v interface{}) error {
	values := url.Values{}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for idx, key := range rctx.URLParams.Keys {
			values.Set(key, rctx.URLParams.Values[idx])
		}
	}

	for key, vs := range r.URL.Query() {
		for _, value := range vs {
			values.Add(key, value)
		}
	}

	if err := decoder.Decode(v, values); err != nil {
		return err
	}

	if typ := r.Header.Get("Content-Type"); strings.HasPrefix(typ, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	}

	return nil
}
