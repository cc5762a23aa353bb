package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	// Ensure correct port is set
	port := c.String("PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	store, err := newStore(c)
	if err != nil {
		return Server{}, err
	}

	router := newRouter(database, store, withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(c.Int("READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(c.Int("WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(c.Int("IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

// newStore builds the media store from config: local disk by default, S3 when
// STORAGE_BACKEND=s3.
func newStore(c config.Config) (storage.Store, error) {
	if c.String("STORAGE_BACKEND", "local") == "s3" {
		bucket := c.String("S3_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=s3 requires S3_BUCKET")
		}
		return storage.NewS3Store(context.Background(), bucket, c.String("S3_BASE_URL", ""))
	}
	return storage.NewLocalStore(c.String("MEDIA_ROOT", "media"), c.String("MEDIA_URL", "/media")), nil
}

type router struct {
	config      config.Config
	startupTime time.Time
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, store storage.Store, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	c := router.config

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	secret := c.String("SECRET_KEY", "")
	if secret == "" {
		log.Warn().Msg("SECRET_KEY is not set, using an insecure development secret")
		secret = "insecure-dev-secret"
	}
	accessTTL := time.Duration(c.Int("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute
	refreshTTL := time.Duration(c.Int("REFRESH_TOKEN_TTL_HOURS", 24)) * time.Hour
	tokens := services.NewTokenService(secret, accessTTL, refreshTTL)

	google := services.NewGoogleService(
		c.String("GOOGLE_CLIENT_ID", ""),
		c.String("GOOGLE_CLIENT_SECRET", ""),
		c.String("GOOGLE_REDIRECT_URL", ""),
	)
	frontendURL := strings.TrimRight(c.String("FRONTEND_URL", "http://localhost:3000"), "/")

	// Initialize all handlers
	handlers := initializeHandlers(database, store, tokens, google, frontendURL)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(tokens, database.UserRepo())

	// Apply CORS middleware
	acceptedOrigins := strings.Split(c.String("ACCEPTED_ORIGINS", frontendURL), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Setup all route types
	setupRoutes(chiRouter, handlers, authMiddleware)

	// Locally stored media is served straight off disk
	if local, ok := store.(*storage.LocalStore); ok {
		fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(local.Root())))
		chiRouter.Get("/media/*", fileServer.ServeHTTP)
	}

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
