package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/totegamma/gravatar/internal/domain"
)

func TestMemoryPresetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPresetRepository(map[string]map[string]any{
		"thumb": {"size": 32},
	})

	preset, err := repo.Get(ctx, "thumb")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if preset.Options["size"] != 32 {
		t.Fatalf("unexpected options %v", preset.Options)
	}

	preset.Options["size"] = 64
	again, _ := repo.Get(ctx, "thumb")
	if again.Options["size"] != 32 {
		t.Fatalf("expected stored options to be isolated from callers")
	}

	err = repo.Upsert(ctx, domain.Preset{Name: "card", Options: map[string]any{"rating": "PG"}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	card, err := repo.Get(ctx, "card")
	if err != nil || card.Options["rating"] != "PG" {
		t.Fatalf("expected stored card preset, got %v %v", card, err)
	}

	if err := repo.Delete(ctx, "card"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, "card"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
	if err := repo.Delete(ctx, "card"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete got %v", err)
	}
}
