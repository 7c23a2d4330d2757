package registration

import (
	"net/http"

	"github.com/goliatone/go-regform/internal/openapi"
)

// SchemaHandler serves the OpenAPI document describing routes.
func SchemaHandler(routes Routes) http.Handler {
	doc, docErr := openapi.JSON(openapi.Document(openapi.Paths{
		Form:   routes.Form,
		Live:   routes.Live,
		Schema: routes.Schema,
	}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if docErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(doc)
	})
}
