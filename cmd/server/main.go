package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/biography-backend/internal/config"
	"github.com/AnshRaj112/biography-backend/internal/database"
	"github.com/AnshRaj112/biography-backend/internal/handlers"
	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/routes"
	"github.com/AnshRaj112/biography-backend/internal/services"
	"github.com/AnshRaj112/biography-backend/pkg/clientip"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}
	cfg := config.Load()
	setupZerolog(cfg)
	clientip.TrustProxyHeaders(cfg.TrustProxy)

	var cipher *utils.FieldCipher
	if cfg.EncryptionKey == "" {
		log.Warn().Msg("ENCRYPTION_KEY not set; recovery emails will not be stored. Generate one with: openssl rand -base64 32")
	} else if c, err := utils.NewFieldCipher(cfg.EncryptionKey); err != nil {
		log.Warn().Err(err).Msg("ENCRYPTION_KEY is invalid; recovery emails will not be stored")
	} else {
		cipher = c
	}

	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer database.DisconnectPostgres()

	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer database.DisconnectRedis()

	if err := database.Connect(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer database.Disconnect()

	indexCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureProfileIndexes(indexCtx, database.DB); err != nil {
		log.Warn().Err(err).Msg("failed to ensure profile indexes")
	}
	cancel()

	profiles := services.NewProfileService(
		services.NewMongoProfileStore(database.DB),
		services.NewProfileCache(services.NewCacheService(database.RedisClient, cfg.CacheTTL)),
	)
	hub := services.NewEditorHub(profiles, services.SystemClock, cfg.AutosaveDebounce)
	api := &handlers.API{
		Accounts: services.NewAccountService(
			services.NewUserRepository(database.PostgresDB),
			services.NewSessionStore(database.RedisClient, cfg.SessionTTL),
			cipher,
		),
		Profiles: profiles,
		Editors:  hub,
		Friends:  services.NewFriendService(profiles.Store()),
	}

	if cfg.CloudinaryEnabled() {
		if up, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret); err != nil {
			log.Warn().Err(err).Msg("failed to initialize Cloudinary; uploads disabled")
		} else {
			api.Uploader = up
		}
	} else {
		log.Warn().Msg("Cloudinary credentials not found; uploads disabled")
	}

	if cfg.MinioEnabled() {
		minioCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		objects, err := services.NewMinioObjects(minioCtx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize object storage; backups will not be archived")
		} else {
			api.Backups = services.NewBackupArchiver(objects, cfg.MinioBucket)
		}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Info().Msg("production security enabled")
	}
	routes.SetupRoutes(r, api, database.RedisClient)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("biography backend running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	hub.Shutdown(ctx)
	profiles.Wait()
}

func setupZerolog(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
