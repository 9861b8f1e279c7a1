package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"example.com/socialhub/cmd/server"
	"example.com/socialhub/internal/imagehost"
	config "example.com/socialhub/internal/init"
	"example.com/socialhub/internal/store"
)

func main() {
	// Initialize application configuration
	cfg := config.Init()
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY must be set")
	}

	// Setup OS signal handling for graceful shutdown (SIGINT, SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Postgres store (runs migrations on startup)
	st, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer st.Close()

	// Cloudinary client for post image uploads
	images := imagehost.New(cfg)

	server.Run(ctx, st, images, cfg)

	log.Println("Shutdown completed")
}
