package http

import (
	"net/http"
	"strings"
)

// SlotRoutes dispatches /slots/{id}/availability and /slots/{id}/hold.
func SlotRoutes(availability AvailabilityGetter, holds HoldCreator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path)
		if len(parts) != 3 || parts[0] != "slots" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch parts[2] {
		case "availability":
			HandleGetAvailability(availability).ServeHTTP(w, r)
		case "hold":
			HandleCreateHold(holds).ServeHTTP(w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	})
}

// HoldRoutes dispatches /holds/{id} (cancel) and /holds/{id}/confirm.
func HoldRoutes(confirms HoldConfirmer, cancels HoldCanceller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path)
		switch {
		case len(parts) == 3 && parts[0] == "holds" && parts[1] != "" && parts[2] == "confirm":
			HandleConfirmHold(confirms).ServeHTTP(w, r)
		case len(parts) == 2 && parts[0] == "holds" && parts[1] != "":
			HandleCancelHold(cancels).ServeHTTP(w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	})
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
