package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/pkg/logger"
)

// ErrModelUnavailable means the llamacpp provider was configured without a
// usable model artifact or runner binary. Generate fails fast without
// attempting a call.
var ErrModelUnavailable = errors.New("local model unavailable")

// LlamaCppProvider runs completions against a GGUF artifact through a
// llama.cpp CLI runner. Availability is decided once at construction: a
// missing artifact or runner leaves the provider permanently unavailable.
type LlamaCppProvider struct {
	modelPath   string
	runnerPath  string
	maxTokens   int
	temperature float32
	available   bool
}

func NewLlamaCppProvider(cfg config.LLMConfig) *LlamaCppProvider {
	p := &LlamaCppProvider{
		modelPath:   cfg.ModelPath,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}

	if p.modelPath == "" {
		logger.Warnf("llamacpp provider: no model path configured")
		return p
	}
	if _, err := os.Stat(p.modelPath); err != nil {
		logger.Warnf("llamacpp provider: model artifact not readable: %v", err)
		return p
	}

	runner, err := exec.LookPath(cfg.RunnerBin)
	if err != nil {
		logger.Warnf("llamacpp provider: runner %q not found on PATH", cfg.RunnerBin)
		return p
	}

	p.runnerPath = runner
	p.available = true
	return p
}

// Available reports whether the model artifact and runner were resolved.
func (p *LlamaCppProvider) Available() bool {
	return p.available
}

func (p *LlamaCppProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, history []model.Message) (string, error) {
	if !p.available {
		return "", ErrModelUnavailable
	}

	var prompt string
	if history != nil {
		prompt = BuildPromptFromMessages(withSystem(systemPrompt, history))
	} else {
		prompt = BuildPrompt(systemPrompt, userPrompt)
	}

	args := []string{
		"-m", p.modelPath,
		"-p", prompt,
		"-n", strconv.Itoa(p.maxTokens),
		"--temp", strconv.FormatFloat(float64(p.temperature), 'f', -1, 32),
		"--no-display-prompt",
	}

	cmd := exec.CommandContext(ctx, p.runnerPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Warnf("llamacpp runner failed: %v: %s", err, stderr.String())
		return "", fmt.Errorf("llamacpp completion failed: %w", err)
	}

	return stdout.String(), nil
}
