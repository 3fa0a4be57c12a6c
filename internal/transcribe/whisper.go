package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	defaultWhisperURL   = "https://api.openai.com/v1/audio/transcriptions"
	defaultWhisperModel = "whisper-1"
)

// WhisperConfig configures the hosted Whisper transcription backend.
type WhisperConfig struct {
	APIKey   string
	BaseURL  string // optional, defaults to the OpenAI endpoint
	Model    string // optional, defaults to whisper-1
	Language string // optional, empty means auto-detect
}

// Whisper transcribes audio through the OpenAI-compatible transcription API.
type Whisper struct {
	apiKey   string
	baseURL  string
	model    string
	language string
	http     *http.Client
}

// NewWhisper builds a Whisper client; an empty API key fails on first use,
// not at construction, so configuration loads cleanly without credentials.
func NewWhisper(cfg WhisperConfig) *Whisper {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultWhisperURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultWhisperModel
	}
	return &Whisper{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		model:    model,
		language: cfg.Language,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Transcribe uploads the samples as a WAV file and returns the transcript text.
func (w *Whisper) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	if w.apiKey == "" {
		return "", errors.New("whisper api key is not configured")
	}
	if sampleRate <= 0 {
		return "", fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(encodePCM16WAV(samples, sampleRate)); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}
	if err := writer.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	// The API rejects "auto"; omitting the field means auto-detect.
	if w.language != "" && w.language != "auto" {
		if err := writer.WriteField("language", w.language); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription api error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return parsed.Text, nil
}
