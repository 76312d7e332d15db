package api

import (
	"errors"
	"net/http"

	respond "github.com/tripweaver/tripweaver/internal/api/respond"
	"github.com/tripweaver/tripweaver/internal/model"
)

// writeServiceError maps sentinel errors from the service layer onto HTTP
// status codes. Anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrUnschedulableTrip):
		respond.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrUpstreamUnavailable):
		respond.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
