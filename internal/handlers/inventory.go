package handlers

import (
	"encoding/json"
	"net/http"

	"demeter/internal/inventory"
	applog "demeter/internal/log"
	"demeter/models"
)

type inventoryResponse struct {
	Items []models.InventoryItem `json:"items"`
}

type adjustmentResponse struct {
	Item    *models.InventoryItem `json:"item,omitempty"`
	Removed bool                  `json:"removed"`
}

// Inventory lists the pantry on GET and applies an adjustment on POST.
func Inventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if deps.Inventory == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "inventory not available")
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := deps.Inventory.List(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, inventoryResponse{Items: items})
	case http.MethodPost:
		var adj inventory.Adjustment
		if err := json.NewDecoder(r.Body).Decode(&adj); err != nil {
			applog.Debug(r.Context(), "invalid inventory adjustment body", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		item, err := deps.Inventory.Adjust(r.Context(), userID, adj)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, adjustmentResponse{Item: item, Removed: item == nil})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
