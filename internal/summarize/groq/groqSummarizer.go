package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/customHttpClient"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/summarize"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// ErrRateLimited maps the remote 429/413 responses onto one retryable
// condition the caller can surface verbatim.
var ErrRateLimited = errors.New("rate limit hit, wait 60 seconds and try again")

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logger_i.Logger
}

// NewClient builds the Groq chat-completion provider.
func NewClient(baseURL string, apiKey string, model string) summarize.Provider {
	return &client{
		httpClient: customHttpClient.GetPooledClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger_i.NewLogger("Groq LLM"),
	}
}

// NewClientWithHTTP is the test seam, it swaps the transport.
func NewClientWithHTTP(baseURL string, apiKey string, model string, c *http.Client) summarize.Provider {
	p := NewClient(baseURL, apiKey, model).(*client)
	p.httpClient = c
	return p
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model          string    `json:"model"`
	Messages       []message `json:"messages"`
	Temperature    float64   `json:"temperature"`
	MaxTokens      int       `json:"max_tokens"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) GenerateSummary(ctx context.Context, text string) (studyModel.SummaryPacket, error) {
	req := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: summarize.SummarySystemPrompt},
			{Role: "user", Content: summarize.TruncateForSummary(text)},
		},
		Temperature: config.SummaryTemperature,
		MaxTokens:   config.SummaryMaxTokens,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	content, err := c.complete(ctx, req)
	if err != nil {
		return studyModel.SummaryPacket{}, err
	}
	return summarize.DecodePacket(content)
}

func (c *client) AnswerQuestion(ctx context.Context, question string, matches []string, messageHistory []string) (string, error) {
	lectureContext := summarize.TruncateForChat(strings.Join(matches, "\n"))

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", lectureContext, question)
	if len(messageHistory) > 0 {
		userPrompt = "Previous turns:\n" + strings.Join(messageHistory, "\n") + "\n\n" + userPrompt
	}

	req := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: summarize.ChatSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: config.ChatTemperature,
		MaxTokens:   config.ChatMaxTokens,
	}
	return c.complete(ctx, req)
}

func (c *client) complete(ctx context.Context, payload completionRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusRequestEntityTooLarge {
		c.logger.Warn("completion rate limited", "status", resp.StatusCode)
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", &studyModel.RemoteError{
			Service:    "Groq LLM",
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed decoding completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &studyModel.RemoteError{Service: "Groq LLM", StatusCode: resp.StatusCode, Body: "empty choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}
