package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valpere/vieng/internal/conllu"
)

const (
	DefaultUDPipeBaseURL = "https://lindat.mff.cuni.cz/services/udpipe/api"
	DefaultUDPipeModel   = "english-ewt"
)

// UDPipe calls a UDPipe 2 REST service and reads its CoNLL-U output.
type UDPipe struct {
	baseURL string
	model   string
	client  *http.Client
}

type udpipeResponse struct {
	Model  string `json:"model"`
	Result string `json:"result"`
}

func NewUDPipe(baseURL, model string, timeout time.Duration) *UDPipe {
	if baseURL == "" {
		baseURL = DefaultUDPipeBaseURL
	}
	if model == "" {
		model = DefaultUDPipeModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &UDPipe{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *UDPipe) Name() string {
	return "udpipe"
}

// Model returns the parsing model name sent with every request.
func (p *UDPipe) Model() string {
	return p.model
}

func (p *UDPipe) Parse(ctx context.Context, text string) ([]conllu.Sentence, error) {
	form := url.Values{}
	form.Set("data", text)
	form.Set("model", p.model)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("parser", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/process", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("parser returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out udpipeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode parse response: %w", err)
	}

	sentences, err := conllu.Read(strings.NewReader(out.Result))
	if err != nil {
		return nil, fmt.Errorf("failed to read parse result: %w", err)
	}
	return sentences, nil
}
