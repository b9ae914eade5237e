package language

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"marketbrief/internal/domain"
)

// ChatWriter generates the brief through an OpenAI-compatible chat
// completions endpoint.
type ChatWriter struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

const briefSystemPrompt = `You are a financial analyst. Write a concise spoken-style market brief from the provided context snippets, portfolio exposure and earnings data. Do not invent figures: if a price or earnings value is marked unavailable, say so.`

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
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewChatWriter(apiKeyEnv, model, baseURL string) (*ChatWriter, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &ChatWriter{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (w *ChatWriter) Write(ctx context.Context, input domain.BriefInput) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: w.model,
		Messages: []chatMessage{
			{Role: "system", Content: briefSystemPrompt},
			{Role: "user", Content: buildPrompt(input)},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func buildPrompt(input domain.BriefInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Query: %s\nSymbols: %s\n", input.Query, strings.Join(input.Symbols, ", "))

	b.WriteString("\nContext:\n")
	for _, c := range input.Context {
		fmt.Fprintf(&b, "- %s\n", c.Text)
	}

	b.WriteString("\nExposure:\n")
	for _, p := range input.Exposure {
		if p.PriceKnown {
			fmt.Fprintf(&b, "- %s: weight %.2f, value %.0f, last close %.2f\n", p.Symbol, p.Weight, p.Value, p.Price)
		} else {
			fmt.Fprintf(&b, "- %s: weight %.2f, value %.0f, price unavailable\n", p.Symbol, p.Weight, p.Value)
		}
	}

	b.WriteString("\nEarnings:\n")
	for _, s := range input.Symbols {
		rows := input.Earnings[s]
		if len(rows) == 0 {
			fmt.Fprintf(&b, "- %s: unavailable\n", s)
			continue
		}
		for _, r := range rows {
			fmt.Fprintf(&b, "- %s %s: actual %.2f, estimate %.2f\n", s, r.Quarter, r.Actual, r.Estimate)
		}
	}

	return b.String()
}

// WithBaseURL overrides the endpoint, used by tests.
func (w *ChatWriter) WithBaseURL(base string) *ChatWriter {
	w.baseURL = base
	return w
}
