package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-sections-backend/config"
	"github.com/rpupo63/site-sections-backend/editor"
	"github.com/rpupo63/site-sections-backend/render"
	"github.com/rpupo63/site-sections-backend/section"
	"github.com/rpupo63/site-sections-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.Settings, store SectionStore, opts ...func(*router)) (Server, error) {
	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()
	opts = append([]func(*router){WithSettings(settings), withStartupTime(startupTime)}, opts...)

	handler, err := newRouter(store, opts...)
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

// Option configures the router built by NewServer.
type Option = func(*router)

type router struct {
	settings    config.Settings
	startupTime time.Time
	renderer    *render.Renderer
	editors     *editor.Registry
	assets      section.AssetNormalizer
	uploader    *services.Uploader
}

func WithSettings(settings config.Settings) func(*router) {
	return func(r *router) {
		r.settings = settings
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func WithRenderer(renderer *render.Renderer) func(*router) {
	return func(r *router) {
		r.renderer = renderer
	}
}

func WithEditors(editors *editor.Registry) func(*router) {
	return func(r *router) {
		r.editors = editors
	}
}

// WithUploader enables POST /uploads. Without it the route answers 503.
func WithUploader(uploader *services.Uploader) func(*router) {
	return func(r *router) {
		r.uploader = uploader
	}
}

func newRouter(store SectionStore, opts ...func(*router)) (*chi.Mux, error) {
	var rt router
	for _, opt := range opts {
		opt(&rt)
	}
	if rt.startupTime.IsZero() {
		rt.startupTime = time.Now()
	}

	if rt.renderer == nil {
		renderer, err := render.New(rt.settings, log.Logger)
		if err != nil {
			return nil, err
		}
		rt.renderer = renderer
	}
	rt.assets = section.AssetNormalizer{BaseURL: rt.settings.SiteBaseURL, LegacyFolder: rt.settings.LegacyAssetFolder}
	if rt.editors == nil {
		rt.editors = editor.NewRegistry(editor.Options{Assets: rt.assets})
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(CORSCheckMiddleware(rt.settings.AcceptedOrigins))
	chiRouter.Use(corsMiddleware(rt.settings.AcceptedOrigins))

	handlers := initializeHandlers(store, rt)
	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, newAuthMiddleware(rt.settings.AdminJWTSecret))

	return chiRouter, nil
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
