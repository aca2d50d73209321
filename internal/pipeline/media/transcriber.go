package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/customHttpClient"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

type Transcript struct {
	Text     string              `json:"text"`
	Duration float64             `json:"duration,omitempty"`
	Segments []TranscriptSegment `json:"segments,omitempty"`
}

type TranscriptSegment struct {
	Id    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Transcriber struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logger_i.Logger
}

func NewTranscriber(baseURL string, apiKey string, model string) *Transcriber {
	return &Transcriber{
		httpClient: customHttpClient.GetPooledClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger_i.NewLogger("Transcriber"),
	}
}

// WithHTTPClient swaps the transport, tests use this to spy on requests.
func (t *Transcriber) WithHTTPClient(c *http.Client) *Transcriber {
	t.httpClient = c
	return t
}

// Transcribe submits an audio or video file as a multipart body to the
// Whisper endpoint and returns the verbatim transcript. The size ceiling is
// checked before any network call so an oversized file never wastes an
// upload. Video goes through the same endpoint unchanged - the remote
// service's format tolerance is an external contract.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (Transcript, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to stat media file: %w", err)
	}
	if info.Size() > config.MaxTranscriptionBytes {
		return Transcript{}, fmt.Errorf("%w: file is %.1fMB, the transcription endpoint supports up to 25MB",
			studyModel.ErrSizeLimit, float64(info.Size())/1024/1024)
	}

	body, contentType, err := t.buildMultipartBody(path)
	if err != nil {
		return Transcript{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return Transcript{}, err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return Transcript{}, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcript{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Transcript{}, &studyModel.RemoteError{
			Service:    "Groq Whisper",
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var transcript Transcript
	if err := json.Unmarshal(respBody, &transcript); err != nil {
		return Transcript{}, fmt.Errorf("failed decoding transcription response: %w", err)
	}
	t.logger.Debug("transcription complete", "chars", len(transcript.Text), "duration", transcript.Duration)
	return transcript, nil
}

func (t *Transcriber) buildMultipartBody(path string) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
