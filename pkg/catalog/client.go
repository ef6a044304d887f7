package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"admissions-chatbot-be/pkg/cache"
)

// Client fetches the school common-data payload. Results pass through
// the redis cache so restarts and replicas share one upstream call per
// TTL window.
type Client struct {
	apiURL string
	http   *http.Client
	cache  *cache.RedisCache
}

func NewClient(apiURL string, redisCache *cache.RedisCache) *Client {
	return &Client{
		apiURL: apiURL,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
		cache: redisCache,
	}
}

func (c *Client) FetchAll(ctx context.Context) (*Payload, error) {
	var cached Payload
	key := ""
	if c.cache != nil {
		key = c.cache.Key("catalog.fetch_all", map[string]string{"url": c.apiURL})
		if c.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("school api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("school api error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode school api payload: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, &payload)
	}
	return &payload, nil
}
