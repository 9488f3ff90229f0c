package handlers

import (
	"encoding/json"
	"net/http"

	applog "demeter/internal/log"
	"demeter/internal/recipes"
	"demeter/models"
)

type recipeListResponse struct {
	Recipes []models.Recipe `json:"recipes"`
}

type recipeStatusResponse struct {
	RecipeID uint   `json:"recipe_id"`
	Status   string `json:"status"`
}

// PersonalRecipes lists the user's personal recipes on GET and uploads a new
// one on POST.
func PersonalRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if deps.Recipes == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "recipes not available")
		return
	}

	switch r.Method {
	case http.MethodGet:
		list, err := deps.Recipes.Personal(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, recipeListResponse{Recipes: list})
	case http.MethodPost:
		var upload recipes.Upload
		if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
			applog.Debug(r.Context(), "invalid recipe upload", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		recipe, err := deps.Recipes.UploadPersonal(r.Context(), userID, upload)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, recipe)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// DeletePersonalRecipe removes one of the user's personal recipes.
func DeletePersonalRecipe(w http.ResponseWriter, r *http.Request) {
	personalRecipeAction(w, r, "deleted", func(userID, recipeID uint) error {
		return deps.Recipes.DeletePersonal(r.Context(), userID, recipeID)
	})
}

// PublishPersonalRecipe moves one of the user's personal recipes into the
// public catalog.
func PublishPersonalRecipe(w http.ResponseWriter, r *http.Request) {
	personalRecipeAction(w, r, "published", func(userID, recipeID uint) error {
		return deps.Recipes.Publish(r.Context(), userID, recipeID)
	})
}

func personalRecipeAction(w http.ResponseWriter, r *http.Request, status string, action func(userID, recipeID uint) error) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}
	if deps.Recipes == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "recipes not available")
		return
	}
	if err := action(userID, recipeID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipeStatusResponse{RecipeID: recipeID, Status: status})
}

// FavoriteRecipes lists the user's favorite recipes.
func FavoriteRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if deps.Store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "favorites not available")
		return
	}
	list, err := deps.Store.FavoriteRecipes(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipeListResponse{Recipes: list})
}

// Favorite marks a recipe as a favorite on PUT and clears it on DELETE.
func Favorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}
	if deps.Store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "favorites not available")
		return
	}

	var add bool
	switch r.Method {
	case http.MethodPut:
		add = true
	case http.MethodDelete:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := deps.Store.SetFavorite(r.Context(), userID, recipeID, add); err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := "removed"
	if add {
		status = "added"
	}
	writeJSON(w, http.StatusOK, recipeStatusResponse{RecipeID: recipeID, Status: status})
}
