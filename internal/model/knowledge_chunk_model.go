package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeChunk struct {
	Id         string          `gorm:"type:text;primaryKey"`
	Content    string          `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	ChunkIndex int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
