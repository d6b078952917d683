// Package main provides the HTTP entry point for the movie catalog cache.
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"catalog/database"
	"catalog/models"
	"catalog/repository"
	"catalog/services"
	"catalog/syncer"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds environment-driven settings.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"movies.db"`
	TMDBAPIKey   string `envconfig:"TMDB_API_KEY" required:"true"`
	TMDBBaseURL  string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	ProbeAddr    string `envconfig:"CONNECTIVITY_PROBE_ADDR" default:"api.themoviedb.org:443"`
}

// App represents the application with its dependencies
type App struct {
	sync    *syncer.Synchronizer
	queries *syncer.QueryService
	prefs   *repository.PreferenceRepository
}

func mustLoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return c
}

func main() {
	cfg := mustLoadConfig()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.InitSchema(); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	movieRepo := repository.NewMovieRepository(db)
	detailRepo := repository.NewDetailRepository(db)
	syncLogRepo := repository.NewSyncLogRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	tmdbService := services.NewTMDBService(cfg.TMDBAPIKey, cfg.TMDBBaseURL)
	gate := services.NewDialGate(cfg.ProbeAddr)

	app := &App{
		sync:    syncer.NewSynchronizer(tmdbService, gate, movieRepo, detailRepo, syncLogRepo),
		queries: syncer.NewQueryService(movieRepo, detailRepo, syncLogRepo),
		prefs:   prefRepo,
	}

	r := mux.NewRouter()

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/movies", app.getMoviesHandler).Methods("GET")
	api.HandleFunc("/movies/cached", app.getCachedMoviesHandler).Methods("GET")
	api.HandleFunc("/movies/{id}", app.getMovieByIDHandler).Methods("GET")
	api.HandleFunc("/movies/{id}/trailers", app.getTrailersHandler).Methods("GET")
	api.HandleFunc("/movies/{id}/reviews", app.getReviewsHandler).Methods("GET")
	api.HandleFunc("/preferences/sort", app.getSortPreferenceHandler).Methods("GET")
	api.HandleFunc("/preferences/sort", app.setSortPreferenceHandler).Methods("PUT")
	api.HandleFunc("/sync/history", app.getSyncHistoryHandler).Methods("GET")

	log.Printf("Server starting on :%s", cfg.Port)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Fatal(server.ListenAndServe())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// sortOrderFromRequest resolves the sort order: explicit query parameter
// first, then the persisted preference, then the default.
func (app *App) sortOrderFromRequest(r *http.Request) models.SortOrder {
	if raw := r.URL.Query().Get("sort"); raw != "" {
		return models.ParseSortOrder(raw)
	}
	sortOrder, err := app.prefs.SortPreference()
	if err != nil {
		log.Printf("Failed to read sort preference: %v", err)
		return models.SortMostPopular
	}
	return sortOrder
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// getMoviesHandler refreshes the chosen sort order and serves the result.
// The response status field tells the client whether the list is fresh,
// stale (offline) or a cached fallback after a failed fetch.
func (app *App) getMoviesHandler(w http.ResponseWriter, r *http.Request) {
	sortOrder := app.sortOrderFromRequest(r)

	result, err := app.sync.RefreshMovies(r.Context(), sortOrder)
	if err != nil {
		log.Printf("Error refreshing %s movies: %v", sortOrder, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// getCachedMoviesHandler serves the ranked list straight from the cache,
// never touching the network.
func (app *App) getCachedMoviesHandler(w http.ResponseWriter, r *http.Request) {
	sortOrder := app.sortOrderFromRequest(r)

	movies, err := app.queries.MoviesOrderedBy(sortOrder)
	if err != nil {
		log.Printf("Error reading cached %s movies: %v", sortOrder, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, &models.MovieList{Status: models.StatusStale, Movies: movies})
}

func (app *App) getMovieByIDHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid movie ID", http.StatusBadRequest)
		return
	}

	movie, err := app.queries.Movie(movieID)
	if err != nil {
		if errors.Is(err, models.ErrMovieNotFound) {
			http.Error(w, "Movie not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting movie %d: %v", movieID, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (app *App) getTrailersHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid movie ID", http.StatusBadRequest)
		return
	}

	result, err := app.sync.RefreshTrailers(r.Context(), movieID)
	if err != nil {
		log.Printf("Error refreshing trailers for movie %d: %v", movieID, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (app *App) getReviewsHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid movie ID", http.StatusBadRequest)
		return
	}

	result, err := app.sync.RefreshReviews(r.Context(), movieID)
	if err != nil {
		log.Printf("Error refreshing reviews for movie %d: %v", movieID, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (app *App) getSortPreferenceHandler(w http.ResponseWriter, _ *http.Request) {
	sortOrder, err := app.prefs.SortPreference()
	if err != nil {
		log.Printf("Error reading sort preference: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"sort": string(sortOrder)})
}

func (app *App) setSortPreferenceHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sort string `json:"sort"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sortOrder := models.ParseSortOrder(body.Sort)
	if err := app.prefs.SetSortPreference(sortOrder); err != nil {
		log.Printf("Error saving sort preference: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"sort": string(sortOrder)})
}

func (app *App) getSyncHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := app.queries.SyncHistory(limit)
	if err != nil {
		log.Printf("Error reading sync history: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func movieIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
