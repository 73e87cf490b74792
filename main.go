package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-sections-backend/api"
	"github.com/rpupo63/site-sections-backend/config"
	"github.com/rpupo63/site-sections-backend/database"
	"github.com/rpupo63/site-sections-backend/editor"
	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/render"
	"github.com/rpupo63/site-sections-backend/section"
	"github.com/rpupo63/site-sections-backend/services"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	ctx := context.Background()
	env, err := config.WithSSMOverlay(ctx, config.New())
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading parameters from SSM")
	}
	settings := config.Load(env)
	if config.GetBool(env, "DEBUG", false) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := database.Open(settings.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(db)

	// One-off jobs run instead of the server and exit.
	if config.GetBool(env, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}
	if config.GetBool(env, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if _, err := models.GenerateColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}
	if config.GetBool(env, "MIGRATE_CONTENT", false) {
		log.Info().Msg("Migrating section content...")
		if _, err := services.MigrateContent(ctx, currentDB.SectionRepo()); err != nil {
			log.Fatal().Err(err).Msg("Error migrating section content")
		}
		return
	}

	renderer, err := render.New(settings, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading templates")
	}
	editors := editor.NewRegistry(editor.Options{
		Assets: section.AssetNormalizer{BaseURL: settings.SiteBaseURL, LegacyFolder: settings.LegacyAssetFolder},
		NewID:  uuid.NewString,
	})

	opts := []api.Option{api.WithRenderer(renderer), api.WithEditors(editors)}
	store, err := services.NewS3ImageStoreFromSettings(ctx, settings)
	switch {
	case errors.Is(err, errs.ErrUploadDisabled):
		log.Warn().Msg("UPLOAD_BUCKET is not set, image uploads are disabled")
	case err != nil:
		log.Fatal().Err(err).Msg("Error configuring image uploads")
	default:
		opts = append(opts, api.WithUploader(services.NewUploader(store, settings.UploadMaxBytes)))
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(settings, currentDB.SectionRepo(), opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
