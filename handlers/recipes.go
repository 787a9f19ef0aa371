package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"eTEats_web/models"
	"eTEats_web/render"

	"github.com/apex/log"
)

// RecipeLoader is what the handlers need from the loader.
type RecipeLoader interface {
	Recipes(ctx context.Context) (models.Recipes, error)
	Clear(ctx context.Context) error
}

// Index renders the card page. A failed load is logged and the page is
// rendered without cards.
func Index(l RecipeLoader, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipes, err := l.Recipes(ctx)
	if err != nil {
		logger(ctx).WithError(err).Error("loading recipes")
		recipes = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(recipes).Render(ctx, w); err != nil {
		logger(ctx).WithError(err).Error("rendering page")
	}
}

func GetRecipes(l RecipeLoader, w http.ResponseWriter, r *http.Request) {
	recipes, err := l.Recipes(r.Context())
	if err != nil {
		http.Error(w, "Failed to load recipes", http.StatusInternalServerError)
		logger(r.Context()).WithError(err).Error("loading recipes")
		return
	}

	// Ensure an empty collection encodes as [] rather than null
	if recipes == nil {
		recipes = models.Recipes{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(recipes); err != nil {
		http.Error(w, "Failed to encode recipes", http.StatusInternalServerError)
	}
}

// GetRecipe returns one recipe by its 1-based position in the source list.
func GetRecipe(l RecipeLoader, w http.ResponseWriter, r *http.Request) {
	// Get the "index" query parameter from the URL
	param := r.URL.Query().Get("index")
	if param == "" {
		http.Error(w, "Missing 'index' query parameter", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(param)
	if err != nil || index < 1 {
		http.Error(w, "Invalid 'index' query parameter", http.StatusBadRequest)
		return
	}

	recipes, err := l.Recipes(r.Context())
	if err != nil {
		http.Error(w, "Failed to load recipes", http.StatusInternalServerError)
		logger(r.Context()).WithError(err).Error("loading recipes")
		return
	}
	if index > len(recipes) {
		http.Error(w, "No matching recipe found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(recipes[index-1]); err != nil {
		http.Error(w, "Failed to encode recipe data", http.StatusInternalServerError)
	}
}

// ClearCache drops the persisted collection; the next load refetches.
func ClearCache(l RecipeLoader, w http.ResponseWriter, r *http.Request) {
	if err := l.Clear(r.Context()); err != nil {
		http.Error(w, "Failed to clear recipes", http.StatusInternalServerError)
		logger(r.Context()).WithError(err).Error("clearing recipes")
		return
	}
	logger(r.Context()).Info("stored recipes cleared")

	w.WriteHeader(http.StatusNoContent)
}

func logger(ctx context.Context) log.Interface {
	if id := RequestID(ctx); id != "" {
		return log.WithField("request_id", id)
	}
	return log.Log
}
