package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/utils"
	"github.com/niyarrbarman/automanim/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

// OllamaProvider talks to a long-lived Ollama server. Chat completions go
// through the server's OpenAI-compatible /v1 surface; model management (tags,
// pull) uses the native API. The active model is mutable at runtime.
type OllamaProvider struct {
	host        string
	maxTokens   int
	temperature float32
	client      *openai.Client
	httpClient  *http.Client

	mu    sync.RWMutex
	model string
}

func NewOllamaProvider(cfg config.LLMConfig) *OllamaProvider {
	clientConfig := openai.DefaultConfig("ollama")
	clientConfig.BaseURL = strings.TrimRight(cfg.OllamaHost, "/") + "/v1"

	return &OllamaProvider{
		host:        strings.TrimRight(cfg.OllamaHost, "/"),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      openai.NewClientWithConfig(clientConfig),
		httpClient:  utils.NewHTTPClient(cfg.Timeout),
		model:       cfg.OllamaModel,
	}
}

func (p *OllamaProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, history []model.Message) (string, error) {
	var messages []model.Message
	if history != nil {
		messages = withSystem(systemPrompt, history)
	} else {
		messages = []model.Message{
			{Role: model.RoleSystem, Content: systemPrompt},
			{Role: model.RoleUser, Content: userPrompt},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.CurrentModel(),
		Messages:    convertMessages(messages),
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OllamaProvider) CurrentModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

func (p *OllamaProvider) SwitchModel(name string) {
	p.mu.Lock()
	p.model = name
	p.mu.Unlock()
	logger.Infof("active model switched to %s", name)
}

// EnsureModel checks the server's tag list and pulls the model when it is not
// present. Pulling blocks until the server finishes the download.
func (p *OllamaProvider) EnsureModel(ctx context.Context, name string) (bool, error) {
	present, err := p.hasModel(ctx, name)
	if err != nil {
		logger.Warnf("model listing failed, attempting pull anyway: %v", err)
	}
	if present {
		return false, nil
	}

	if err := p.pullModel(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (p *OllamaProvider) hasModel(ctx context.Context, name string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.host+"/api/tags", nil)
	if err != nil {
		return false, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("ollama not reachable at %s: %w", p.host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("tags request failed with status %d", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, fmt.Errorf("failed to decode tags response: %w", err)
	}

	for _, m := range tags.Models {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (p *OllamaProvider) pullModel(ctx context.Context, name string) error {
	body, _ := json.Marshal(map[string]any{"name": name, "stream": false})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Pulls can run long; rely on the request context rather than the
	// client's idle timeout.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to pull model %s: %w", name, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pull of %s failed with status %d", name, resp.StatusCode)
	}

	logger.Infof("pulled model %s", name)
	return nil
}

func convertMessages(messages []model.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case model.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		case model.RoleSystem:
			role = openai.ChatMessageRoleSystem
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return out
}
