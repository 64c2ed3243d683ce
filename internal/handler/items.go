package handler

import (
	"net/http"

	"github.com/myron-alexander/srcalc/internal/planner"
)

// ItemsResponse lists the craftable item names.
type ItemsResponse struct {
	Items []string `json:"items"`
}

// HandleListItems returns the craftable items, sorted by name.
func HandleListItems(svc planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, ItemsResponse{Items: svc.ItemNames()})
	}
}
