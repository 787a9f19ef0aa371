package handlers

import (
	"context"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"eTEats_web/offline"
	"eTEats_web/render"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ctxKey struct{}

// RequestID returns the id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// NewRouter wires every route. assets must contain the recipe files under
// recipes/ and the stylesheet under static/.
func NewRouter(l RecipeLoader, assets fs.FS, sources []string) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		Index(l, w, r)
	}).Methods("GET")

	r.HandleFunc("/api/recipes", func(w http.ResponseWriter, r *http.Request) {
		GetRecipes(l, w, r)
	}).Methods("GET")

	r.HandleFunc("/api/recipe", func(w http.ResponseWriter, r *http.Request) {
		GetRecipe(l, w, r)
	}).Methods("GET")

	r.HandleFunc("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		ClearCache(l, w, r)
	}).Methods("DELETE")

	r.HandleFunc("/image", FetchImageHandler).Methods("GET")

	files := http.FileServer(http.FS(assets))
	r.PathPrefix("/recipes/").Handler(files).Methods("GET")
	r.PathPrefix("/static/").Handler(files).Methods("GET")

	offline.Register(r, Precache(sources))

	return r
}

// Precache lists what the service worker stores for offline use.
func Precache(sources []string) []string {
	urls := []string{"/", render.Stylesheet}
	for _, s := range sources {
		if !strings.HasPrefix(s, "/") && !strings.Contains(s, "://") {
			s = "/" + s
		}
		urls = append(urls, s)
	}
	return urls
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		log.WithFields(log.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).Round(time.Millisecond),
		}).Debug("request")
	})
}
