package implementation

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"admissions-chatbot-be/internal/mapper"
	"admissions-chatbot-be/internal/model"
	"admissions-chatbot-be/internal/repository/contract"
	"admissions-chatbot-be/pkg/rag"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) ReplaceAll(ctx context.Context, chunks []rag.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks/embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c, embeddings[i])
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.KnowledgeChunk{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(models, 100).Error
	})
}

func (r *KnowledgeChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]rag.Chunk, error) {
	var models []*model.KnowledgeChunk
	// Cosine distance operator; requires the pgvector extension.
	err := r.db.WithContext(ctx).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]rag.Chunk, len(models))
	for i, m := range models {
		chunks[i] = r.mapper.ToChunk(m)
	}
	return chunks, nil
}

func (r *KnowledgeChunkRepositoryImpl) ListAll(ctx context.Context) ([]rag.Chunk, error) {
	var models []*model.KnowledgeChunk
	if err := r.db.WithContext(ctx).Order("chunk_index ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	chunks := make([]rag.Chunk, len(models))
	for i, m := range models {
		chunks[i] = r.mapper.ToChunk(m)
	}
	return chunks, nil
}
