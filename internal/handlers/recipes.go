package handlers

import (
	"net/http"

	"demeter/internal/recipes"
	"demeter/models"
)

type makeableResponse struct {
	Page     recipes.Page       `json:"page"`
	Query    recipes.Query      `json:"query"`
	Strategy recipes.Strategy   `json:"strategy"`
	Recipes  []recipes.Makeable `json:"recipes"`
}

type recipeItemsResponse struct {
	RecipeID uint                `json:"recipe_id"`
	Items    []models.RecipeItem `json:"items"`
}

// MakeableRecipes lists the recipes the signed-in user can cook.
func MakeableRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if deps.Recipes == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "recipes not available")
		return
	}

	params := r.URL.Query()
	page := recipes.ParsePage(params.Get("page"), params.Get("size"))
	query := recipes.ParseQuery(params.Get("method"), params.Get("value"))
	strategy := deps.Recipes.Strategy(recipes.Strategy(params.Get("strategy")))

	found, err := deps.Recipes.Makeable(r.Context(), userID, query, page, strategy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, makeableResponse{Page: page, Query: query, Strategy: strategy, Recipes: found})
}

// RecipeItems returns a recipe's ingredients in the user's display units.
func RecipeItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := deps.Recipes.Items(r.Context(), recipeID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipeItemsResponse{RecipeID: recipeID, Items: items})
}
