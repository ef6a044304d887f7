package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"admissions-chatbot-be/pkg/rerank"
)

const defaultEndpoint = "https://api.jina.ai/v1/rerank"

type JinaProvider struct {
	APIKey    string
	ModelName string
	Endpoint  string
	Client    *http.Client
}

var _ rerank.Provider = &JinaProvider{}

func NewJinaProvider(apiKey, modelName string) *JinaProvider {
	if modelName == "" {
		modelName = "jina-reranker-v2-base-multilingual"
	}
	return &JinaProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		Endpoint:  defaultEndpoint,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type jinaRerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

type jinaRerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

func (j *JinaProvider) Rerank(ctx context.Context, query string, passages []string, topN int) ([]rerank.Result, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	payloadBytes, err := json.Marshal(jinaRerankRequest{
		Model:     j.ModelName,
		Query:     query,
		Documents: passages,
		TopN:      topN,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", j.Endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+j.APIKey)

	resp, err := j.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jina rerank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jina rerank error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var rerankResp jinaRerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rerankResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]rerank.Result, 0, len(rerankResp.Results))
	for _, r := range rerankResp.Results {
		results = append(results, rerank.Result{Index: r.Index, Score: r.RelevanceScore})
	}
	return results, nil
}
