package main

import (
	"log"

	"github.com/fatih/color"

	"admissions-chatbot-be/internal/config"
	"admissions-chatbot-be/internal/model"
	"admissions-chatbot-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}

	color.Cyan("Running migrations...")

	// pgvector must exist before the embedding column can be created.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		color.Red("Failed to create vector extension: %v", err)
		log.Fatal(err)
	}
	color.Green("  vector extension ready")

	if err := db.AutoMigrate(
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.KnowledgeChunk{},
	); err != nil {
		color.Red("Migration failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Migrations completed: chat_sessions, chat_messages, knowledge_chunks")
}
