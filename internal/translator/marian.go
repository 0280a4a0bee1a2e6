package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valpere/vieng/internal/postprocess"
)

const (
	DefaultMarianModel   = "Helsinki-NLP/opus-mt-vi-en"
	DefaultMarianBaseURL = "https://api-inference.huggingface.co"
	DefaultMarianTimeout = 120 * time.Second
)

// MarianService calls a MarianMT sequence-to-sequence model served behind a
// Hugging Face style inference endpoint.
type MarianService struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

type marianRequest struct {
	Inputs  string        `json:"inputs"`
	Options marianOptions `json:"options"`
}

type marianOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type marianOutput struct {
	TranslationText string `json:"translation_text"`
}

func NewMarianService(baseURL, model, apiKey string, timeout time.Duration) *MarianService {
	if baseURL == "" {
		baseURL = DefaultMarianBaseURL
	}
	if model == "" {
		model = DefaultMarianModel
	}
	if timeout <= 0 {
		timeout = DefaultMarianTimeout
	}
	return &MarianService{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *MarianService) Name() string {
	return "marian"
}

// Model is the model used when the request config names none.
func (s *MarianService) Model() string {
	return s.model
}

func (s *MarianService) endpoint(model string) string {
	return fmt.Sprintf("%s/models/%s", s.baseURL, model)
}

func (s *MarianService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	model := cfg.Model
	if model == "" {
		model = s.model
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = s.apiKey
	}

	body, err := json.Marshal(marianRequest{
		Inputs:  req.Text,
		Options: marianOptions{WaitForModel: true},
	})
	if err != nil {
		result.Error = fmt.Sprintf("failed to marshal request: %v", err)
		return result, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(model), bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		result.Error = fmt.Sprintf("API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
		return result, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var outputs []marianOutput
	if err := json.NewDecoder(resp.Body).Decode(&outputs); err != nil {
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(outputs) == 0 {
		result.Error = "no translation returned"
		return result, fmt.Errorf("no translation returned")
	}

	text := postprocess.StripSpecialTokens(outputs[0].TranslationText)
	if text == "" {
		result.Error = "empty translation returned"
		return result, fmt.Errorf("empty translation returned")
	}

	result.TranslatedText = text
	result.Confidence = 1.0
	result.Metadata = map[string]string{"model": model}
	return result, nil
}

// IsAvailable asks the endpoint for the model status.
func (s *MarianService) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(s.model), nil)
	if err != nil {
		return err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("model endpoint not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *MarianService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{SourceLang, TargetLang}, nil
}
