package handlers

import (
	"encoding/json"
	"net/http"

	applog "demeter/internal/log"
	"demeter/models"
)

type preferencesRequest struct {
	Metric *bool `json:"metric"`
}

type preferencesResponse struct {
	Metric   bool              `json:"metric"`
	System   string            `json:"system"`
	Disliked []models.FoodItem `json:"disliked"`
	Minor    []models.FoodItem `json:"minor"`
}

// Preferences reports the user's display system and marks on GET and stores
// the display system on POST.
func Preferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if deps.Store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "preferences not available")
		return
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req preferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Metric == nil {
			applog.Debug(r.Context(), "invalid preferences body", "error", err)
			writeJSONError(w, http.StatusBadRequest, "metric is required")
			return
		}
		applog.Debug(r.Context(), "updating user preferences", "userID", userID, "metric", *req.Metric)
		if err := deps.Store.SetMetric(r.Context(), userID, *req.Metric); err != nil {
			writeServiceError(w, r, err)
			return
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp, err := loadPreferences(r, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func loadPreferences(r *http.Request, userID uint) (preferencesResponse, error) {
	user, err := deps.Store.User(r.Context(), userID)
	if err != nil {
		return preferencesResponse{}, err
	}
	marked, err := deps.Store.MarkedFoodItems(r.Context(), userID)
	if err != nil {
		return preferencesResponse{}, err
	}
	return preferencesResponse{
		Metric:   user.IsMetric,
		System:   user.MeasurementSystem(),
		Disliked: marked.Disliked,
		Minor:    marked.Minor,
	}, nil
}
