package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/niyarrbarman/automanim/internal/codeutil"
	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/storage"
)

type stubProvider struct {
	output string
	err    error

	calls      int
	gotSystem  string
	gotHistory []model.Message
}

func (p *stubProvider) Generate(_ context.Context, systemPrompt, _ string, history []model.Message) (string, error) {
	p.calls++
	p.gotSystem = systemPrompt
	p.gotHistory = history
	return p.output, p.err
}

func newGenerateService(p *stubProvider) (*GenerateService, storage.Store) {
	cfg := &config.Config{}
	cfg.LLM.SystemPrompt = config.SystemPrompt
	store := storage.NewMemoryStore()
	return NewGenerateService(cfg, store, p), store
}

const validScene = "from manim import *\n\nclass GeneratedScene(Scene):\n    def construct(self):\n        self.play(Create(Circle(color=RED)))"

func TestGenerateSuccess(t *testing.T) {
	p := &stubProvider{output: "```python\n" + validScene + "\n```"}
	svc, store := newGenerateService(p)

	res := svc.Generate(context.Background(), "s1", "draw a red circle", "")

	if res.Code == codeutil.Sentinel {
		t.Fatal("expected code, got sentinel")
	}
	if res.SceneClass != "GeneratedScene" {
		t.Errorf("scene class = %q", res.SceneClass)
	}
	if !strings.Contains(res.Code, "class GeneratedScene(Scene)") {
		t.Errorf("code missing scene declaration: %q", res.Code)
	}

	msgs := store.GetMessages("s1")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 recorded turns, got %d", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "draw a red circle" {
		t.Errorf("user turn not recorded: %+v", msgs[0])
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != res.Code {
		t.Errorf("assistant turn mismatch: %+v", msgs[1])
	}

	// Provider must receive the full history including the just-appended turn.
	if len(p.gotHistory) != 1 || p.gotHistory[0].Content != "draw a red circle" {
		t.Errorf("provider saw wrong history: %+v", p.gotHistory)
	}
}

func TestGenerateModelDeclines(t *testing.T) {
	p := &stubProvider{output: "-1"}
	svc, store := newGenerateService(p)

	res := svc.Generate(context.Background(), "s1", "what's the capital of France", "")

	if res.Code != codeutil.Sentinel || res.SceneClass != "" {
		t.Errorf("expected rejection, got %+v", res)
	}
	msgs := store.GetMessages("s1")
	if len(msgs) != 2 || msgs[1].Content != codeutil.Sentinel {
		t.Errorf("rejection must be recorded as the assistant turn: %+v", msgs)
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	svc, store := newGenerateService(p)

	res := svc.Generate(context.Background(), "s1", "draw a circle", "")

	if res.Code != codeutil.Sentinel {
		t.Errorf("provider failure must collapse to the sentinel, got %+v", res)
	}
	msgs := store.GetMessages("s1")
	if len(msgs) != 2 || msgs[1].Content != codeutil.Sentinel {
		t.Errorf("expected sentinel assistant turn, got %+v", msgs)
	}
}

func TestGenerateNoSceneClass(t *testing.T) {
	p := &stubProvider{output: "print('hello')"}
	svc, store := newGenerateService(p)

	res := svc.Generate(context.Background(), "s1", "draw a circle", "")

	if res.Code != codeutil.Sentinel {
		t.Errorf("output without a Scene subclass must be rejected, got %+v", res)
	}
	if msgs := store.GetMessages("s1"); msgs[len(msgs)-1].Content != codeutil.Sentinel {
		t.Errorf("expected sentinel assistant turn, got %+v", msgs)
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	p := &stubProvider{output: validScene}
	svc, store := newGenerateService(p)

	res := svc.Generate(context.Background(), "s1", "   ", "")

	if res.Code != codeutil.Sentinel {
		t.Errorf("empty prompt must be rejected, got %+v", res)
	}
	if p.calls != 0 {
		t.Error("provider must not be called for an empty prompt")
	}
	if msgs := store.GetMessages("s1"); len(msgs) != 0 {
		t.Errorf("empty prompt must not touch the session, got %+v", msgs)
	}
}

func TestGenerateBranchedLeavesSessionUntouched(t *testing.T) {
	p := &stubProvider{output: validScene}
	svc, store := newGenerateService(p)

	store.AppendMessage("s1", model.RoleUser, "earlier prompt")
	before := store.GetMessages("s1")

	res := svc.Generate(context.Background(), "s1", "now make it blue", "a red circle was drawn")

	if res.SceneClass != "GeneratedScene" {
		t.Fatalf("branched generation failed: %+v", res)
	}
	after := store.GetMessages("s1")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("branched mode mutated session history: before=%+v after=%+v", before, after)
	}

	if p.gotHistory != nil {
		t.Errorf("branched mode must not pass stored history, got %+v", p.gotHistory)
	}
	if !strings.Contains(p.gotSystem, "a red circle was drawn") {
		t.Errorf("summary not injected into system context: %q", p.gotSystem)
	}
}

func TestGenerateBranchedRejectionNotRecorded(t *testing.T) {
	p := &stubProvider{output: "-1"}
	svc, store := newGenerateService(p)

	res := svc.Generate(context.Background(), "s1", "off topic", "some summary")

	if res.Code != codeutil.Sentinel {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if msgs := store.GetMessages("s1"); len(msgs) != 0 {
		t.Errorf("branched rejection leaked into session: %+v", msgs)
	}
}

func TestReset(t *testing.T) {
	p := &stubProvider{output: validScene}
	svc, store := newGenerateService(p)

	svc.Generate(context.Background(), "s1", "draw a circle", "")
	store.SetVideoSettings("s1", model.VideoSettings{Quality: model.QualityUltra})

	svc.Reset("s1")

	if msgs := store.GetMessages("s1"); len(msgs) != 0 {
		t.Errorf("history survived reset: %+v", msgs)
	}
	if got := store.GetVideoSettings("s1"); got != model.DefaultVideoSettings() {
		t.Errorf("settings survived reset: %+v", got)
	}
}
