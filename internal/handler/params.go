package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripmate/internal/middleware"
)

// pathID binds the {id} path parameter the way oapi-codegen's generated
// wrappers do. On failure it writes a 400 and reports false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		badRequest(w, "invalid format for parameter id: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt binds an optional integer query parameter. A nil result means
// the parameter was absent.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		badRequest(w, "invalid format for parameter "+name+": must be an integer")
		return nil, false
	}
	return v, true
}

// caller returns the authenticated user. Routes only mount handlers behind
// Authenticate, so a missing user means the router was wired wrongly.
func caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return id, ok
}
