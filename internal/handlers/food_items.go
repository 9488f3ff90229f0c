package handlers

import (
	"encoding/json"
	"net/http"

	applog "demeter/internal/log"
	"demeter/models"
)

type substitutesResponse struct {
	FoodItemID  uint              `json:"food_item_id"`
	Substitutes []models.FoodItem `json:"substitutes"`
}

type markRequest struct {
	Kind string `json:"kind"`
	Add  *bool  `json:"add"`
}

type markResponse struct {
	FoodItemID uint   `json:"food_item_id"`
	Kind       string `json:"kind"`
	Marked     bool   `json:"marked"`
}

// Substitutes lists replacements for a food item that the user has on hand.
func Substitutes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	foodID, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid food item id")
		return
	}
	if deps.Substitutes == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "substitutes not available")
		return
	}

	found := deps.Substitutes.FindSubstitutes(r.Context(), userID, foodID)
	if found == nil {
		found = []models.FoodItem{}
	}
	writeJSON(w, http.StatusOK, substitutesResponse{FoodItemID: foodID, Substitutes: found})
}

// Marks flags a food item as disliked or minor for the user, or clears the flag
// when add is false.
func Marks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	foodID, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid food item id")
		return
	}
	if deps.Store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "marks not available")
		return
	}

	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		applog.Debug(r.Context(), "invalid mark body", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	add := req.Add == nil || *req.Add

	if err := deps.Store.SetMark(r.Context(), userID, foodID, req.Kind, add); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markResponse{FoodItemID: foodID, Kind: models.NormalizeMarkKind(req.Kind), Marked: add})
}
