package handler

import (
	"io"
	"net/http"

	"github.com/myron-alexander/srcalc/internal/layout"
	"github.com/myron-alexander/srcalc/internal/logger"
	"github.com/myron-alexander/srcalc/internal/metrics"
)

// LayoutVerifyResponse is the body returned for a valid layout.
type LayoutVerifyResponse struct {
	Valid bool `json:"valid"`
	Sites int  `json:"sites"`
}

// HandleVerifyLayout checks a factory layout document against the recipe
// database. The request body is a layout file, the same format the CLI
// accepts with -verify-layout.
func HandleVerifyLayout(verifier *layout.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		defs, err := layout.Parse(body)
		if err != nil {
			log.Warn("rejected layout", "error", err)
			metrics.LayoutVerifications.WithLabelValues(metrics.ResultInvalid).Inc()
			respondError(w, statusForError(err), err.Error())
			return
		}

		if err := verifier.Verify(defs); err != nil {
			log.Warn("layout failed verification", "error", err)
			metrics.LayoutVerifications.WithLabelValues(metrics.ResultInvalid).Inc()
			respondError(w, statusForError(err), err.Error())
			return
		}

		metrics.LayoutVerifications.WithLabelValues(metrics.ResultValid).Inc()
		respondJSON(w, http.StatusOK, LayoutVerifyResponse{Valid: true, Sites: len(defs.Sites)})
	}
}
