package main

import (
	"context"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"

	"fleet-admin-api-server/config"
	"fleet-admin-api-server/internal/api/routes"
	"fleet-admin-api-server/internal/database"
	"fleet-admin-api-server/internal/logger"
	"fleet-admin-api-server/internal/socket"
	"fleet-admin-api-server/internal/storage"
	"fleet-admin-api-server/internal/upload"
)

func main() {
	// .env is optional; env vars win either way.
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logrus.Fatalf("Could not load config: %v", err)
	}

	logger.Setup(cfg.Log)

	client, err := database.Connect(cfg.Mongo)
	if err != nil {
		logrus.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.DBName)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logrus.Fatalf("Could not ensure indexes: %v", err)
	}

	var files storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		files, err = storage.NewS3(cfg.S3)
		if err != nil {
			logrus.Fatalf("Could not initialize S3 storage: %v", err)
		}
	default:
		files = storage.NewDisk(cfg.Uploads.Root)
	}

	uploads := upload.NewAdapter(files, cfg.Uploads)
	wsHub := socket.NewHub()

	router := routes.SetupRouter(cfg, db, files, uploads, wsHub)

	logrus.Infof("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatalf("Failed to run server: %v", err)
	}
}
