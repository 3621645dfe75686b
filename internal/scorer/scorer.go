// Package scorer estimates buying intent for text snippets using an
// OpenAI-compatible chat-completions model.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const (
	// NeutralScore is returned whenever the model call or reply parsing
	// fails. Scoring failures must never fail a search request.
	NeutralScore = 50

	// maxSnippetBytes caps the text sent to the model per candidate.
	maxSnippetBytes = 1200

	// Stand-in band when no model is configured.
	standInMin = 35
	standInMax = 65
)

const instructionTemplate = "You are a lead qualification engine. Rate the purchase intent of the " +
	"following text for someone selling this product: %q. Reply with a single " +
	"integer from 0 to 100, where 0 means irrelevant and 100 means ready to " +
	"purchase immediately. Reply with the number only."

// Scorer calls the scoring model and converts its reply into an intent
// score. A Scorer with an empty API key is usable: it returns stand-in
// scores so the pipeline works without the external dependency.
type Scorer struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// New builds a scorer. A nil client gets a 20-second timeout default.
func New(endpoint, model, apiKey string, client *http.Client) *Scorer {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scorer{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   client,
		logger:   slog.Default().With("component", "scorer"),
	}
}

// Configured reports whether an external model is available.
func (s *Scorer) Configured() bool {
	return s.apiKey != "" && s.endpoint != "" && s.model != ""
}

// Score rates snippet against product on a 0-100 scale. It never returns a
// value outside [0,100] and never propagates an error: call failures and
// unparseable replies degrade to NeutralScore, and an unconfigured scorer
// returns a pseudo-random stand-in value.
func (s *Scorer) Score(ctx context.Context, snippet, product string) int {
	if !s.Configured() {
		return standInMin + rand.IntN(standInMax-standInMin+1)
	}

	if len(snippet) > maxSnippetBytes {
		snippet = snippet[:maxSnippetBytes]
	}

	reply, err := s.complete(ctx, snippet, product)
	if err != nil {
		s.logger.Warn("model call failed, using neutral score", "error", err)
		return NeutralScore
	}

	score, err := parseScore(reply)
	if err != nil {
		s.logger.Warn("unscoreable model reply, using neutral score", "error", err)
		return NeutralScore
	}

	return score
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *Scorer) complete(ctx context.Context, snippet, product string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(instructionTemplate, product)},
			{Role: "user", Content: snippet},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("score request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("model error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}
