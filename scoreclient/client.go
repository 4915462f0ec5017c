// Package scoreclient posts score and match results to the backend as a
// best-effort side channel. Failures are logged and dropped; nothing is
// retried or queued.
package scoreclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) RegisterPlayer(playerID, playerName string) {
	c.post("/players", map[string]interface{}{
		"playerId":   playerID,
		"playerName": playerName,
	})
}

func (c *Client) SubmitScore(playerID string, score int) {
	c.post("/scores", map[string]interface{}{
		"playerId": playerID,
		"score":    score,
	})
}

func (c *Client) SubmitMatch(playerID, difficulty string, durationMs int64) {
	c.post("/matches", map[string]interface{}{
		"playerId":   playerID,
		"difficulty": difficulty,
		"durationMs": durationMs,
	})
}

func (c *Client) post(path string, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("scoreclient: marshal %s: %v\n", path, err)
		return
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		// A dropped submission is permanently lost.
		fmt.Printf("scoreclient: POST %s failed: %v\n", path, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		fmt.Printf("scoreclient: POST %s returned %d\n", path, resp.StatusCode)
	}
}
