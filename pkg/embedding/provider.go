package embedding

import "context"

// TaskType hints the backend how the embedding will be used.
type TaskType string

const (
	TaskRetrievalDocument TaskType = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    TaskType = "RETRIEVAL_QUERY"
)

// Provider defines the contract for any embedding backend
type Provider interface {
	// Generate returns the embedding vector for the given text.
	Generate(ctx context.Context, text string, taskType TaskType) ([]float32, error)

	// Dimension reports the vector size this backend produces.
	Dimension() int
}
