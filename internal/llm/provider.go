// Package llm abstracts the interchangeable code-generation backends behind a
// single completion capability. A provider is chosen once at startup from
// configuration; callers never branch on the backend kind.
package llm

import (
	"context"
	"fmt"

	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/model"
)

// Provider turns a prompt (optionally with conversation history) into text.
// An error means "no usable output"; callers fall back to the rejection path
// and must not retry. A single attempt per call is the contract.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, history []model.Message) (string, error)
}

// ModelSwitcher is implemented by providers whose active model can be changed
// at runtime. The switch is process-wide: it affects all subsequent
// generations, not just one session.
type ModelSwitcher interface {
	CurrentModel() string
	// EnsureModel makes the named model available on the backend, fetching it
	// out of band when missing. Returns whether a fetch happened.
	EnsureModel(ctx context.Context, name string) (pulled bool, err error)
	SwitchModel(name string)
}

// New constructs the provider selected by cfg.LLM.Provider.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		return NewOllamaProvider(cfg.LLM), nil
	case "llamacpp":
		return NewLlamaCppProvider(cfg.LLM), nil
	case "http":
		return NewHTTPProvider(cfg.LLM), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}
