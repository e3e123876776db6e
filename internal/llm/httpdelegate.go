package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/utils"
)

// HTTPProvider delegates generation to an operator-configured endpoint with a
// flat text prompt. Contract: POST {"prompt": ...} -> 200 {"text": ...}; any
// other status or a malformed body yields no output.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
}

func NewHTTPProvider(cfg config.LLMConfig) *HTTPProvider {
	return &HTTPProvider{
		endpoint: cfg.HTTPEndpoint,
		client:   utils.NewHTTPClient(cfg.Timeout),
	}
}

func (p *HTTPProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, history []model.Message) (string, error) {
	if p.endpoint == "" {
		return "", fmt.Errorf("http provider: no endpoint configured")
	}

	var prompt string
	if history != nil {
		prompt = BuildPromptFromMessages(withSystem(systemPrompt, history))
	} else {
		prompt = BuildPrompt(systemPrompt, userPrompt)
	}

	body, _ := json.Marshal(map[string]string{"prompt": prompt})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http delegate unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http delegate returned status %d", resp.StatusCode)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("http delegate sent malformed response: %w", err)
	}

	return payload.Text, nil
}
