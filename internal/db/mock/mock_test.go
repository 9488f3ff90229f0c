package mock

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"demeter/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var recipes []models.Recipe
	if err := db.WithContext(ctx).Preload("Items").Find(&recipes).Error; err != nil {
		t.Fatalf("query recipes: %v", err)
	}
	if len(recipes) != 4 {
		t.Fatalf("expected 4 seeded recipes, got %d", len(recipes))
	}
	for _, recipe := range recipes {
		if len(recipe.Items) == 0 {
			t.Fatalf("expected recipe %q to have items", recipe.Name)
		}
	}

	var inventory int64
	if err := db.WithContext(ctx).Model(&models.InventoryItem{}).Count(&inventory).Error; err != nil {
		t.Fatalf("count inventory: %v", err)
	}
	if inventory == 0 {
		t.Fatal("expected seeded inventory")
	}

	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", Email).First(&user).Error; err != nil {
		t.Fatalf("query user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(Password)); err != nil {
		t.Fatalf("unexpected password hash: %v", err)
	}
}

func TestNewIsIdempotent(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx); err != nil {
		t.Fatalf("first New failed: %v", err)
	}
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("second New failed: %v", err)
	}

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Fatalf("expected a single seeded user, got %d", users)
	}
}

func TestOpenIsolatesDatabases(t *testing.T) {
	ctx := context.Background()
	seeded, err := Open(ctx, t.Name()+"/seeded")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	empty, err := Empty(ctx, t.Name()+"/empty")
	if err != nil {
		t.Fatalf("Empty failed: %v", err)
	}

	ids, err := FoodIDs(ctx, seeded)
	if err != nil {
		t.Fatalf("FoodIDs failed: %v", err)
	}
	if _, ok := ids["margarine"]; !ok {
		t.Fatalf("expected margarine in seeded catalog, got %v", ids)
	}

	var users int64
	if err := empty.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 0 {
		t.Fatalf("expected empty database to have no users, got %d", users)
	}
}
