package handler

import (
	"io"
	"net/http"

	"github.com/myron-alexander/srcalc/internal/logger"
	"github.com/myron-alexander/srcalc/internal/metrics"
	"github.com/myron-alexander/srcalc/internal/planner"
	"github.com/myron-alexander/srcalc/internal/requestspec"
)

// HandlePlan computes a production plan. The request body is a request spec
// document, the same format the CLI accepts as a spec file.
func HandlePlan(svc planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		spec, err := requestspec.Parse(body)
		if err != nil {
			log.Warn("rejected plan request", "error", err)
			metrics.PlanErrors.WithLabelValues(metrics.ReasonBadSpec).Inc()
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := svc.Plan(r.Context(), spec)
		if err != nil {
			status := statusForError(err)
			if status >= http.StatusInternalServerError {
				log.Error("plan failed", "item", spec.Request.Item, "error", err)
			} else {
				log.Warn("plan rejected", "item", spec.Request.Item, "error", err)
			}
			metrics.PlanErrors.WithLabelValues(metrics.ReasonResolve).Inc()
			respondError(w, status, err.Error())
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
