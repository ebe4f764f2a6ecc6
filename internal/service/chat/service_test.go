package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	chatservice "github.com/kanazawa-chat/anything-chat/internal/service/chat"
)

func TestServiceEnsureSessionIsIdempotent(t *testing.T) {
	svc := chatservice.NewService()
	ctx := context.Background()

	first, err := svc.EnsureSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("EnsureSession err: %v", err)
	}

	again, err := svc.EnsureSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("EnsureSession err: %v", err)
	}
	if !again.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("session recreated: %v vs %v", again.CreatedAt, first.CreatedAt)
	}

	got, err := svc.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != "sess-1" {
		t.Fatalf("unexpected session ID: got %s", got.ID)
	}
}

func TestServiceEnsureSessionRequiresID(t *testing.T) {
	svc := chatservice.NewService()
	if _, err := svc.EnsureSession(context.Background(), ""); !errors.Is(err, chatservice.ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := chatservice.NewService()
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestServiceSaveMessageRequiresSession(t *testing.T) {
	svc := chatservice.NewService()
	ctx := context.Background()

	_, err := svc.SaveMessage(ctx, "missing", chat.Draft{Role: chat.RoleUser, Content: "q"})
	if !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceRecentKeepsLatestTurns(t *testing.T) {
	svc := chatservice.NewService()
	ctx := context.Background()

	if _, err := svc.EnsureSession(ctx, "sess"); err != nil {
		t.Fatalf("EnsureSession err: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.SaveMessage(ctx, "sess", chat.Draft{Role: chat.RoleUser, Content: fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("SaveMessage err: %v", err)
		}
	}

	recent, err := svc.Recent(ctx, "sess", 2)
	if err != nil {
		t.Fatalf("Recent err: %v", err)
	}
	if len(recent) != 2 || recent[0].Content != "q3" || recent[1].Content != "q4" {
		t.Fatalf("unexpected recent turns: %+v", recent)
	}

	all, err := svc.LoadTranscript(ctx, "sess")
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 stored turns, got %d", len(all))
	}
}
