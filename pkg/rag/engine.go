package rag

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/pkg/embedding"
	"admissions-chatbot-be/pkg/rag/lexical"
	"admissions-chatbot-be/pkg/rerank"
	"admissions-chatbot-be/pkg/utils"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
	retrieveK    = 4
	finalTopN    = 3

	lexicalWeight = 0.5
	vectorWeight  = 0.5
)

// Chunk is one indexed slice of the knowledge document.
type Chunk struct {
	Id    string
	Index int
	Text  string
}

// ChunkStore is the persistence the engine needs: a vector table that
// can be replaced wholesale and searched by embedding.
type ChunkStore interface {
	ReplaceAll(ctx context.Context, chunks []Chunk, embeddings [][]float32) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]Chunk, error)
	ListAll(ctx context.Context) ([]Chunk, error)
}

// Engine answers knowledge-base questions with hybrid retrieval:
// BM25 and vector search fused by reciprocal rank, then reranked.
type Engine struct {
	knowledgePath string
	store         ChunkStore
	embedder      embedding.Provider
	reranker      rerank.Provider
	lexIndex      *lexical.Index
	log           logger.ILogger

	ready  atomic.Bool
	mu     sync.RWMutex
	byId   map[string]Chunk
}

func NewEngine(knowledgePath string, store ChunkStore, embedder embedding.Provider, reranker rerank.Provider, log logger.ILogger) *Engine {
	return &Engine{
		knowledgePath: knowledgePath,
		store:         store,
		embedder:      embedder,
		reranker:      reranker,
		lexIndex:      lexical.NewIndex(),
		log:           log,
		byId:          map[string]Chunk{},
	}
}

// Ready reports whether both indexes are built. Queries before that get
// the static unavailability answer.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// Initialize reads the knowledge document, splits it, embeds every
// chunk and replaces both the vector table and the lexical index.
func (e *Engine) Initialize(ctx context.Context) error {
	data, err := os.ReadFile(e.knowledgePath)
	if err != nil {
		return fmt.Errorf("read knowledge document: %w", err)
	}

	texts := utils.SplitText(string(data), chunkSize, chunkOverlap)
	if len(texts) == 0 {
		return fmt.Errorf("knowledge document is empty")
	}

	chunks := make([]Chunk, len(texts))
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.embedder.Generate(ctx, text, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}
		chunks[i] = Chunk{Id: fmt.Sprintf("chunk-%d", i), Index: i, Text: text}
		embeddings[i] = vec
	}

	if err := e.store.ReplaceAll(ctx, chunks, embeddings); err != nil {
		return fmt.Errorf("store chunks: %w", err)
	}

	e.install(chunks)
	e.log.Info("rag", "knowledge base indexed", map[string]interface{}{"chunks": len(chunks)})
	return nil
}

// Restore rebuilds the in-memory side from already-persisted chunks,
// skipping the embed step. Used when the vector table survived a
// restart.
func (e *Engine) Restore(ctx context.Context) error {
	chunks, err := e.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no persisted chunks")
	}
	e.install(chunks)
	e.log.Info("rag", "knowledge base restored", map[string]interface{}{"chunks": len(chunks)})
	return nil
}

func (e *Engine) install(chunks []Chunk) {
	ids := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	byId := make(map[string]Chunk, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.Id
		texts[i] = ch.Text
		byId[ch.Id] = ch
	}
	e.lexIndex.Build(ids, texts)

	e.mu.Lock()
	e.byId = byId
	e.mu.Unlock()

	e.ready.Store(true)
}

// Query runs hybrid retrieval and returns up to three passages, most
// relevant first. A rerank outage falls back to the fused order.
func (e *Engine) Query(ctx context.Context, query string) ([]string, error) {
	if !e.Ready() {
		return nil, fmt.Errorf("engine not initialized")
	}

	// Lexical side
	lexHits := e.lexIndex.Search(query, retrieveK)
	lexIds := make([]string, len(lexHits))
	for i, h := range lexHits {
		lexIds[i] = h.Id
	}

	// Vector side
	var vecIds []string
	queryVec, err := e.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		e.log.Warn("rag", "query embedding failed, lexical only", map[string]interface{}{"error": err.Error()})
	} else {
		vecChunks, err := e.store.SearchSimilar(ctx, queryVec, retrieveK)
		if err != nil {
			e.log.Warn("rag", "vector search failed, lexical only", map[string]interface{}{"error": err.Error()})
		} else {
			for _, ch := range vecChunks {
				vecIds = append(vecIds, ch.Id)
			}
		}
	}

	fused := FuseRanks(
		RankedList{Ids: lexIds, Weight: lexicalWeight},
		RankedList{Ids: vecIds, Weight: vectorWeight},
	)
	if len(fused) == 0 {
		return nil, nil
	}

	e.mu.RLock()
	passages := make([]string, 0, len(fused))
	for _, id := range fused {
		if ch, ok := e.byId[id]; ok {
			passages = append(passages, ch.Text)
		}
	}
	e.mu.RUnlock()

	if e.reranker != nil && len(passages) > 1 {
		results, err := e.reranker.Rerank(ctx, query, passages, finalTopN)
		if err != nil {
			e.log.Warn("rag", "rerank failed, keeping fused order", map[string]interface{}{"error": err.Error()})
		} else if len(results) > 0 {
			reranked := make([]string, 0, len(results))
			for _, r := range results {
				if r.Index >= 0 && r.Index < len(passages) {
					reranked = append(reranked, passages[r.Index])
				}
			}
			if len(reranked) > 0 {
				return reranked, nil
			}
		}
	}

	if len(passages) > finalTopN {
		passages = passages[:finalTopN]
	}
	return passages, nil
}
