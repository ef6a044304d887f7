package contract

import (
	"context"

	"admissions-chatbot-be/pkg/rag"
)

// KnowledgeChunkRepository is the vector side of the retrieval engine.
type KnowledgeChunkRepository interface {
	// ReplaceAll swaps the whole corpus atomically.
	ReplaceAll(ctx context.Context, chunks []rag.Chunk, embeddings [][]float32) error
	// SearchSimilar orders by cosine distance to the query embedding.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]rag.Chunk, error)
	ListAll(ctx context.Context) ([]rag.Chunk, error)
}
