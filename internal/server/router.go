package server

import (
	"context"
	"net/http"

	"demeter/internal/handlers"
	applog "demeter/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	public := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /healthz", handlers.Health},
		{"/login", handlers.Login},
		{"POST /logout", handlers.Logout},
	}
	for _, route := range public {
		mux.HandleFunc(route.pattern, route.handler)
		applog.Debug(context.Background(), "route registered", "pattern", route.pattern)
	}

	protected := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"/api/inventory", handlers.Inventory},
		{"GET /api/recipes/makeable", handlers.MakeableRecipes},
		{"GET /api/recipes/{id}/items", handlers.RecipeItems},
		{"/api/personal-recipes", handlers.PersonalRecipes},
		{"DELETE /api/personal-recipes/{id}", handlers.DeletePersonalRecipe},
		{"POST /api/personal-recipes/{id}/publish", handlers.PublishPersonalRecipe},
		{"GET /api/favorites", handlers.FavoriteRecipes},
		{"/api/favorites/{id}", handlers.Favorite},
		{"GET /api/food-items/{id}/substitutes", handlers.Substitutes},
		{"POST /api/food-items/{id}/marks", handlers.Marks},
		{"/api/preferences", handlers.Preferences},
	}
	for _, route := range protected {
		mux.Handle(route.pattern, handlers.RequireAuthentication(route.handler))
		applog.Debug(context.Background(), "route registered", "pattern", route.pattern, "protected", true)
	}
	return mux
}
