package service

import (
	"context"
	"strings"

	"github.com/niyarrbarman/automanim/internal/codeutil"
	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/llm"
	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/storage"
	"github.com/niyarrbarman/automanim/pkg/logger"
)

// GenerateResult is either sanitized scene code with its extracted class name,
// or the rejection sentinel with an empty class.
type GenerateResult struct {
	Code       string
	SceneClass string
}

func rejection() GenerateResult {
	return GenerateResult{Code: codeutil.Sentinel}
}

// GenerateService runs the code-generation pipeline: session bookkeeping,
// provider dispatch, sanitization and validation.
type GenerateService struct {
	cfg      *config.Config
	store    storage.Store
	provider llm.Provider
}

func NewGenerateService(cfg *config.Config, store storage.Store, provider llm.Provider) *GenerateService {
	return &GenerateService{
		cfg:      cfg,
		store:    store,
		provider: provider,
	}
}

// Generate turns a user prompt into scene code. In the normal mode the user
// turn is appended to the session and the full history is sent to the
// provider; every outcome, including a rejection, is recorded as the assistant
// turn so the model's cumulative context stays consistent with what the
// session saw. When contextSummary is non-empty, generation runs against the
// summary alone and the session's stored history is neither read nor written.
func (s *GenerateService) Generate(ctx context.Context, sessionID, prompt, contextSummary string) GenerateResult {
	if strings.TrimSpace(prompt) == "" {
		return rejection()
	}

	if contextSummary != "" {
		return s.generateBranched(ctx, prompt, contextSummary)
	}

	s.store.AppendMessage(sessionID, model.RoleUser, prompt)
	history := s.store.GetMessages(sessionID)

	raw, err := s.provider.Generate(ctx, s.cfg.LLM.SystemPrompt, prompt, history)
	if err != nil {
		logger.Warnf("generation failed for session %s: %v", sessionID, err)
		s.store.AppendMessage(sessionID, model.RoleAssistant, codeutil.Sentinel)
		return rejection()
	}

	code := codeutil.Sanitize(raw)
	if code == codeutil.Sentinel {
		s.store.AppendMessage(sessionID, model.RoleAssistant, codeutil.Sentinel)
		return rejection()
	}

	sceneClass := codeutil.ExtractSceneClass(code)
	if sceneClass == "" {
		logger.Debugf("output for session %s has no Scene subclass, rejecting", sessionID)
		s.store.AppendMessage(sessionID, model.RoleAssistant, codeutil.Sentinel)
		return rejection()
	}

	s.store.AppendMessage(sessionID, model.RoleAssistant, code)
	return GenerateResult{Code: code, SceneClass: sceneClass}
}

func (s *GenerateService) generateBranched(ctx context.Context, prompt, contextSummary string) GenerateResult {
	systemPrompt := s.cfg.LLM.SystemPrompt +
		"\nConversation so far, summarized by the caller:\n" + contextSummary

	raw, err := s.provider.Generate(ctx, systemPrompt, prompt, nil)
	if err != nil {
		logger.Warnf("branched generation failed: %v", err)
		return rejection()
	}

	code := codeutil.Sanitize(raw)
	if code == codeutil.Sentinel {
		return rejection()
	}
	sceneClass := codeutil.ExtractSceneClass(code)
	if sceneClass == "" {
		return rejection()
	}

	return GenerateResult{Code: code, SceneClass: sceneClass}
}

// Reset drops the session's entire state, history and video settings both.
func (s *GenerateService) Reset(sessionID string) {
	s.store.ClearSession(sessionID)
}
