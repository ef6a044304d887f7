package rag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"admissions-chatbot-be/pkg/embedding"
	"admissions-chatbot-be/pkg/rerank"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// memStore keeps chunks in memory and returns them in insertion order
// for similarity search, which is enough to drive the fusion path.
type memStore struct {
	chunks []Chunk
	fail   bool
}

func (s *memStore) ReplaceAll(ctx context.Context, chunks []Chunk, embeddings [][]float32) error {
	if s.fail {
		return errors.New("store down")
	}
	s.chunks = chunks
	return nil
}

func (s *memStore) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]Chunk, error) {
	if s.fail {
		return nil, errors.New("store down")
	}
	if limit > len(s.chunks) {
		limit = len(s.chunks)
	}
	return s.chunks[:limit], nil
}

func (s *memStore) ListAll(ctx context.Context) ([]Chunk, error) {
	if s.fail {
		return nil, errors.New("store down")
	}
	return s.chunks, nil
}

type fakeEmbedder struct{ fail bool }

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType embedding.TaskType) ([]float32, error) {
	if f.fail {
		return nil, errors.New("embed down")
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

type fakeReranker struct {
	fail    bool
	results []rerank.Result
	gotLen  int
}

func (f *fakeReranker) Rerank(ctx context.Context, query string, passages []string, topN int) ([]rerank.Result, error) {
	f.gotLen = len(passages)
	if f.fail {
		return nil, errors.New("rerank down")
	}
	return f.results, nil
}

func writeKnowledgeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const knowledgeDoc = "Học phí khối 10 là 500 nghìn đồng mỗi tháng tại mọi chi nhánh. " +
	"Trung tâm có hai chi nhánh tại Hà Nội và Đà Nẵng. " +
	"Lịch nghỉ lễ Quốc Khánh kéo dài hai ngày đầu tháng 9."

func TestQueryBeforeInitialize(t *testing.T) {
	e := NewEngine("nope", &memStore{}, &fakeEmbedder{}, nil, nopLogger{})
	if _, err := e.Query(context.Background(), "học phí"); err == nil {
		t.Fatal("expected not-initialized error")
	}
}

func TestInitializeAndQuery(t *testing.T) {
	path := writeKnowledgeFile(t, knowledgeDoc)
	store := &memStore{}
	e := NewEngine(path, store, &fakeEmbedder{}, nil, nopLogger{})

	if err := e.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !e.Ready() {
		t.Fatal("engine must be ready after Initialize")
	}
	if len(store.chunks) == 0 {
		t.Fatal("chunks were not persisted")
	}

	passages, err := e.Query(context.Background(), "học phí khối 10")
	if err != nil {
		t.Fatal(err)
	}
	if len(passages) == 0 || len(passages) > 3 {
		t.Fatalf("passages = %d", len(passages))
	}
	if !strings.Contains(passages[0], "Học phí") {
		t.Errorf("unexpected top passage: %q", passages[0])
	}
}

func TestInitializeMissingFile(t *testing.T) {
	e := NewEngine(filepath.Join(t.TempDir(), "missing.md"), &memStore{}, &fakeEmbedder{}, nil, nopLogger{})
	if err := e.Initialize(context.Background()); err == nil {
		t.Fatal("expected read error")
	}
	if e.Ready() {
		t.Error("engine must not become ready on failure")
	}
}

func TestRestore(t *testing.T) {
	store := &memStore{chunks: []Chunk{
		{Id: "chunk-0", Index: 0, Text: "Học phí khối 10 là 500 nghìn"},
		{Id: "chunk-1", Index: 1, Text: "Chi nhánh Hà Nội và Đà Nẵng"},
	}}
	e := NewEngine("unused", store, &fakeEmbedder{}, nil, nopLogger{})

	if err := e.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	passages, err := e.Query(context.Background(), "chi nhánh")
	if err != nil {
		t.Fatal(err)
	}
	if len(passages) == 0 {
		t.Fatal("expected passages after restore")
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	e := NewEngine("unused", &memStore{}, &fakeEmbedder{}, nil, nopLogger{})
	if err := e.Restore(context.Background()); err == nil {
		t.Fatal("expected error when no chunks persisted")
	}
}

func TestQueryRerankOrdering(t *testing.T) {
	store := &memStore{chunks: []Chunk{
		{Id: "chunk-0", Index: 0, Text: "Học phí khối 10"},
		{Id: "chunk-1", Index: 1, Text: "Chi nhánh Hà Nội"},
		{Id: "chunk-2", Index: 2, Text: "Lịch nghỉ lễ"},
	}}
	rr := &fakeReranker{results: []rerank.Result{{Index: 2, Score: 0.9}, {Index: 0, Score: 0.4}}}
	e := NewEngine("unused", store, &fakeEmbedder{}, rr, nopLogger{})
	if err := e.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}

	passages, err := e.Query(context.Background(), "học phí")
	if err != nil {
		t.Fatal(err)
	}
	if len(passages) != 2 {
		t.Fatalf("passages = %v", passages)
	}
	if passages[0] != store.chunks[rr.results[0].Index].Text {
		t.Errorf("rerank order not applied: %v", passages)
	}
}

func TestQueryRerankFailureFallsBack(t *testing.T) {
	store := &memStore{chunks: []Chunk{
		{Id: "chunk-0", Index: 0, Text: "Học phí khối 10"},
		{Id: "chunk-1", Index: 1, Text: "Chi nhánh Hà Nội"},
	}}
	e := NewEngine("unused", store, &fakeEmbedder{}, &fakeReranker{fail: true}, nopLogger{})
	if err := e.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}

	passages, err := e.Query(context.Background(), "học phí")
	if err != nil {
		t.Fatal(err)
	}
	if len(passages) == 0 {
		t.Fatal("fused order must survive a rerank outage")
	}
}

func TestQueryEmbeddingFailureIsLexicalOnly(t *testing.T) {
	store := &memStore{chunks: []Chunk{
		{Id: "chunk-0", Index: 0, Text: "Học phí khối 10"},
	}}
	e := NewEngine("unused", store, &fakeEmbedder{}, nil, nopLogger{})
	if err := e.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	e.embedder = &fakeEmbedder{fail: true}

	passages, err := e.Query(context.Background(), "học phí")
	if err != nil {
		t.Fatal(err)
	}
	if len(passages) != 1 {
		t.Fatalf("passages = %v", passages)
	}
}
