// File: internal/handlers/http_helpers.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roomhub/go-roomhub/internal/services"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// renderServiceError maps service errors onto the error page: missing
// entities become 404, ownership violations 403, everything else 500.
func renderServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, user_services.ErrUserNotFound):
		renderErrorPage(w, http.StatusNotFound, "Not Found",
			"The resource you are looking for does not exist.")
	case errors.Is(err, services.ErrForbidden):
		renderErrorPage(w, http.StatusForbidden, "Not Allowed",
			"You are not allowed to modify another user's resource.")
	default:
		renderErrorPage(w, http.StatusInternalServerError, "Server Error",
			"Something went wrong on our end.")
	}
}
