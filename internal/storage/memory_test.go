package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/niyarrbarman/automanim/internal/model"
)

func TestAppendAndGetMessages(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		store.AppendMessage("s1", role, fmt.Sprintf("msg-%d", i))
	}

	msgs := store.GetMessages("s1")
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	for i, msg := range msgs {
		want := fmt.Sprintf("msg-%d", i)
		if msg.Content != want {
			t.Errorf("message %d: got %q, want %q", i, msg.Content, want)
		}
	}
}

func TestGetMessagesReturnsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	store.AppendMessage("s1", model.RoleUser, "original")

	msgs := store.GetMessages("s1")
	msgs[0].Content = "mutated"

	if got := store.GetMessages("s1")[0].Content; got != "original" {
		t.Errorf("caller mutation leaked into store: got %q", got)
	}
}

func TestGetMessagesUnknownSession(t *testing.T) {
	store := NewMemoryStore()
	if msgs := store.GetMessages("nope"); len(msgs) != 0 {
		t.Errorf("expected empty history, got %d messages", len(msgs))
	}
}

func TestClearSession(t *testing.T) {
	store := NewMemoryStore()
	store.AppendMessage("s1", model.RoleUser, "hello")
	store.SetVideoSettings("s1", model.VideoSettings{Quality: model.QualityHigh})

	store.ClearSession("s1")

	if msgs := store.GetMessages("s1"); len(msgs) != 0 {
		t.Errorf("expected empty history after clear, got %d messages", len(msgs))
	}
	if got := store.GetVideoSettings("s1"); got != model.DefaultVideoSettings() {
		t.Errorf("expected default settings after clear, got %+v", got)
	}

	// Clearing an unknown session must be a no-op.
	store.ClearSession("never-existed")
}

func TestSessionIsolation(t *testing.T) {
	store := NewMemoryStore()
	store.AppendMessage("a", model.RoleUser, "for a")
	store.AppendMessage("b", model.RoleUser, "for b")
	store.SetVideoSettings("a", model.VideoSettings{ResolutionWidth: 1920, ResolutionHeight: 1080, FPS: 60, Quality: model.QualityUltra})

	if msgs := store.GetMessages("b"); len(msgs) != 1 || msgs[0].Content != "for b" {
		t.Errorf("session b observed foreign state: %+v", msgs)
	}
	if got := store.GetVideoSettings("b"); got != model.DefaultVideoSettings() {
		t.Errorf("session b observed session a's settings: %+v", got)
	}
}

func TestVideoSettingsDefaults(t *testing.T) {
	store := NewMemoryStore()

	got := store.GetVideoSettings("fresh")
	want := model.VideoSettings{ResolutionWidth: 854, ResolutionHeight: 480, FPS: 30, Quality: model.QualityLow}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("s%d", n%3)
			for j := 0; j < 50; j++ {
				store.AppendMessage(sessionID, model.RoleUser, "x")
				store.GetMessages(sessionID)
				store.GetVideoSettings(sessionID)
			}
		}(i)
	}
	wg.Wait()
}
