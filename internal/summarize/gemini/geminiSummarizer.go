package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/summarize"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

// GetGeminiClient builds the alternate summary provider once per process.
// Returns nil when the client cannot be created, callers fall back to Groq.
func GetGeminiClient(ctx context.Context, modelName string, apikey string) summarize.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return
	}
	geminiClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Gemini client created", "model", modelName)
}

func (c *llmClient) GenerateSummary(ctx context.Context, text string) (studyModel.SummaryPacket, error) {
	result, err := c.generate(ctx, summarize.SummarySystemPrompt, summarize.TruncateForSummary(text), genai.Ptr(float32(config.SummaryTemperature)))
	if err != nil {
		return studyModel.SummaryPacket{}, err
	}
	return summarize.DecodePacket(result)
}

func (c *llmClient) AnswerQuestion(ctx context.Context, question string, matches []string, messageHistory []string) (string, error) {
	lectureContext := summarize.TruncateForChat(strings.Join(matches, "\n"))

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", lectureContext, question)
	if len(messageHistory) > 0 {
		userPrompt = "Previous turns:\n" + strings.Join(messageHistory, "\n") + "\n\n" + userPrompt
	}
	return c.generate(ctx, summarize.ChatSystemPrompt, userPrompt, genai.Ptr(float32(config.ChatTemperature)))
}

func (c *llmClient) generate(ctx context.Context, systemPrompt string, userPrompt string, temperature *float32) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		Temperature: temperature,
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		contentConfig,
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
