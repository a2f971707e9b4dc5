// main.go
package main

import (
	"context"
	"log"

	"jua-kali/cmd"
	"jua-kali/internal/adaptor"
	"jua-kali/internal/data/repository"
	"jua-kali/internal/wire"
	"jua-kali/pkg/auth"
	"jua-kali/pkg/database"
	"jua-kali/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("strict_skills", config.Registration.StrictSkills),
	)

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	probes := map[string]adaptor.Pinger{
		"postgres": db.Ping,
	}

	// Token denylist is optional; without Redis, logout only drops the
	// client-side token.
	var tokenOpts []auth.TokenOption
	if config.Redis.Enabled() {
		rdb, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		tokenOpts = append(tokenOpts, auth.WithDenylist(auth.NewRedisDenylist(rdb)))
		probes["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		logger.Info("Token denylist enabled", zap.String("redis", config.Redis.Addr))
	}

	tokens, err := auth.NewTokenIssuer([]byte(config.JWT.Secret), config.JWT.TTL(), tokenOpts...)
	if err != nil {
		logger.Fatal("Failed to create token issuer", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, tokens, config, logger, probes)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
