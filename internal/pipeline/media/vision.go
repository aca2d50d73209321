package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/customHttpClient"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// visionPrompt is fixed: literal extraction, not paraphrase.
const visionPrompt = "Analyze this lecture slide/page. Extract ALL text, headers, bullet points, " +
	"and formulas exactly as they appear. Organize the output structurally. " +
	"If there are diagrams, describe their key educational meaning briefly."

// FailedAnalysisMarker replaces the content of an image whose remote call
// failed. Per-image failures never abort the remaining images.
const FailedAnalysisMarker = "(Analysis Failed)"

type VisionClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logger_i.Logger
}

func NewVisionClient(baseURL string, apiKey string, model string) *VisionClient {
	return &VisionClient{
		httpClient: customHttpClient.GetPooledClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger_i.NewLogger("VisionClient"),
	}
}

func (v *VisionClient) WithHTTPClient(c *http.Client) *VisionClient {
	v.httpClient = c
	return v
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractFromImage base64-encodes the image and submits it with the fixed
// extraction instruction to the multimodal chat-completion endpoint.
func (v *VisionClient) ExtractFromImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	payload, err := json.Marshal(map[string]any{
		"model": v.model,
		"messages": []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: visionPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		"temperature": config.VisionTemperature,
		"max_tokens":  config.VisionMaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &studyModel.RemoteError{
			Service:    "Groq Vision",
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed decoding vision response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &studyModel.RemoteError{Service: "Groq Vision", StatusCode: resp.StatusCode, Body: "empty choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// ExtractFromFiles processes images strictly sequentially - one request at
// a time, no parallel fan-out, to stay inside per-request rate limits. A
// failed image contributes a failed-marker block, the rest still land.
func (v *VisionClient) ExtractFromFiles(ctx context.Context, paths []string) ([]studyModel.Unit, error) {
	var units []studyModel.Unit
	for i, path := range paths {
		name := filepath.Base(path)
		text, err := v.analyzeFile(ctx, path)
		if err != nil {
			v.logger.Error("image analysis failed", "image", name, "error", err)
			text = FailedAnalysisMarker
		}
		units = append(units, studyModel.Unit{
			Index: i + 1,
			Text:  fmt.Sprintf("[Image %d: %s]\n%s", i+1, name, text),
		})
	}
	return units, nil
}

func (v *VisionClient) analyzeFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return v.ExtractFromImage(ctx, data, MimeTypeForImage(path))
}

// MimeTypeForImage maps an image file extension to the MIME type sent in
// the data URL.
func MimeTypeForImage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
