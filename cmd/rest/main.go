package main

import (
	"context"
	"log"

	"admissions-chatbot-be/internal/bootstrap"
	"admissions-chatbot-be/internal/config"
	"admissions-chatbot-be/internal/server"
	"admissions-chatbot-be/internal/tracer"
	"admissions-chatbot-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg)
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Indexer
	if err := container.IndexerService.Start(context.Background()); err != nil {
		log.Printf("Background Indexer Error: %v", err)
	}

	// 6. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
