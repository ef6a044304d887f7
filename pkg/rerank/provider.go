package rerank

import "context"

// Result pairs a passage index with its relevance score, highest first.
type Result struct {
	Index int
	Score float64
}

// Provider reorders candidate passages by relevance to the query.
type Provider interface {
	// Rerank scores the passages against the query and returns at most
	// topN results sorted by descending relevance.
	Rerank(ctx context.Context, query string, passages []string, topN int) ([]Result, error)
}
