package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/terra-clan/talent-tracker/internal/auth"
)

// callerFrom extracts the verified caller placed by AuthMiddleware.Identify.
// The zero Caller means the request is anonymous.
func callerFrom(r *http.Request) auth.Caller {
	return auth.CallerFromContext(r.Context())
}

// pathID parses the {id} URL parameter
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
