package mapper

import (
	"github.com/pgvector/pgvector-go"

	"admissions-chatbot-be/internal/model"
	"admissions-chatbot-be/pkg/rag"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToChunk(k *model.KnowledgeChunk) rag.Chunk {
	return rag.Chunk{
		Id:    k.Id,
		Index: k.ChunkIndex,
		Text:  k.Content,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c rag.Chunk, embedding []float32) *model.KnowledgeChunk {
	return &model.KnowledgeChunk{
		Id:         c.Id,
		Content:    c.Text,
		ChunkIndex: c.Index,
		Embedding:  pgvector.NewVector(embedding),
	}
}
