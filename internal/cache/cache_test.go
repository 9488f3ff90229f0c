package cache

import (
	"context"
	"testing"
	"time"

	"demeter/internal/set"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewMemory(time.Minute)

	if _, ok, err := c.Get(ctx, RecipeKey(1)); ok || err != nil {
		t.Fatalf("expected miss on empty cache, got ok=%t err=%v", ok, err)
	}

	if err := c.Set(ctx, RecipeKey(1), set.Of[uint](3, 1, 2)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok, err := c.Get(ctx, RecipeKey(1))
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%t err=%v", ok, err)
	}
	if got.Len() != 3 || !got.Has(2) {
		t.Fatalf("unexpected cached ids: %v", set.Sorted(got))
	}

	if err := c.Delete(ctx, RecipeKey(1)); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, RecipeKey(1)); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "a", set.Of[uint](1)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestMemoryKeepsEntryRefreshedDuringExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }
	if err := c.Set(ctx, "a", set.Of[uint](1)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	now = now.Add(2 * time.Minute)

	// Refresh the entry between the expired read and the delete.
	refreshed := false
	c.now = func() time.Time {
		if !refreshed {
			refreshed = true
			if err := c.Set(ctx, "a", set.Of[uint](2)); err != nil {
				t.Errorf("Set returned error: %v", err)
			}
		}
		return now
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected the expired read to miss")
	}

	got, ok, _ := c.Get(ctx, "a")
	if !ok || !got.Has(2) {
		t.Fatalf("expected refreshed entry to survive, got ok=%t ids=%v", ok, set.Sorted(got))
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewMemory(time.Minute)
	if err := c.Set(ctx, "a", set.Of[uint](1)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, _, _ := c.Get(ctx, "a")
	got.Add(99)

	again, _, _ := c.Get(ctx, "a")
	if again.Has(99) {
		t.Fatal("expected cached set to be isolated from callers")
	}
}

func TestRecipeKey(t *testing.T) {
	t.Parallel()

	if got := RecipeKey(42); got != "recipe:42:food-ids" {
		t.Fatalf("RecipeKey(42) = %q", got)
	}
}
