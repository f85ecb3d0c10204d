package main

import (
	"context"
	"log"

	"appraisal/internal/app/server"
	"appraisal/internal/platform/config"
)

func main() {
	cfg := config.Load()

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("appraisal server listening on %s", cfg.Addr)
	if err := app.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
