package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"sitewright/internal/domain"
	"sitewright/internal/httputil"
)

// handleError maps domain errors to RFC 7807 responses. Errors that
// implement HTTPError carry their own status; anything else is a 500
// and gets logged with full detail (clients see a generic message).
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("unhandled error", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
