package feasibility

import (
	"context"
	"testing"

	"demeter/models"
)

const (
	flour uint = iota + 1
	eggs
	milk
	salt
	butter
	margarine
	oil
)

func inventoryOf(entries map[uint]float64) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(entries))
	for id, qty := range entries {
		items = append(items, models.InventoryItem{FoodItemID: id, Quantity: qty, Unit: "g"})
	}
	return items
}

func recipeOf(entries map[uint]float64) []models.RecipeItem {
	items := make([]models.RecipeItem, 0, len(entries))
	for id, qty := range entries {
		items = append(items, models.RecipeItem{FoodItemID: id, Quantity: qty, Unit: "g"})
	}
	return items
}

func food(ids ...uint) []models.FoodItem {
	out := make([]models.FoodItem, 0, len(ids))
	for _, id := range ids {
		item := models.FoodItem{}
		item.ID = id
		out = append(out, item)
	}
	return out
}

func lookupFrom(rules map[uint][]uint) SubstituteLookup {
	return func(_ context.Context, missing uint) []models.FoodItem {
		return food(rules[missing]...)
	}
}

func TestCanBeMade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		inventory map[uint]float64
		required  map[uint]float64
		disliked  []uint
		minor     []uint
		rules     map[uint][]uint
		want      Result
	}{
		{
			name:      "no ingredients",
			inventory: map[uint]float64{flour: 500},
			want:      Result{},
		},
		{
			name:      "empty inventory",
			required:  map[uint]float64{flour: 200},
			want:      Result{},
		},
		{
			name:      "full containment",
			inventory: map[uint]float64{flour: 500, eggs: 6, milk: 1},
			required:  map[uint]float64{flour: 200, eggs: 2},
			want:      Result{Feasible: true},
		},
		{
			name:      "insufficient quantity",
			inventory: map[uint]float64{flour: 100, eggs: 6},
			required:  map[uint]float64{flour: 200, eggs: 2},
			want:      Result{},
		},
		{
			name:      "disliked required ingredient without substitute",
			inventory: map[uint]float64{flour: 500, eggs: 6},
			required:  map[uint]float64{flour: 200, eggs: 2},
			disliked:  []uint{eggs},
			want:      Result{},
		},
		{
			name:      "disliked minor ingredient is waived",
			inventory: map[uint]float64{flour: 500, eggs: 6, milk: 1},
			required:  map[uint]float64{flour: 200, eggs: 2},
			disliked:  []uint{eggs},
			minor:     []uint{eggs},
			want:      Result{Feasible: true},
		},
		{
			name:      "disliked ingredient substituted",
			inventory: map[uint]float64{flour: 500, eggs: 6, milk: 1},
			required:  map[uint]float64{flour: 200, eggs: 2},
			disliked:  []uint{eggs},
			rules:     map[uint][]uint{eggs: {milk}},
			want: Result{
				Feasible:     true,
				Substitution: &SubstitutionHint{MissingFoodID: eggs, ReplacementFoodID: milk},
			},
		},
		{
			name:      "missing minor ingredient is waived",
			inventory: map[uint]float64{flour: 500, eggs: 6},
			required:  map[uint]float64{flour: 200, eggs: 2, salt: 1},
			minor:     []uint{salt},
			want:      Result{Feasible: true},
		},
		{
			name:      "every missing minor ingredient is waived",
			inventory: map[uint]float64{flour: 500},
			required:  map[uint]float64{flour: 200, salt: 1, milk: 0.1},
			minor:     []uint{salt, milk},
			want:      Result{Feasible: true},
		},
		{
			name:      "missing ingredient substituted",
			inventory: map[uint]float64{flour: 500, margarine: 250},
			required:  map[uint]float64{flour: 200, butter: 100},
			rules:     map[uint][]uint{butter: {margarine}},
			want: Result{
				Feasible:     true,
				Substitution: &SubstitutionHint{MissingFoodID: butter, ReplacementFoodID: margarine},
			},
		},
		{
			name:      "disliked substitute skipped",
			inventory: map[uint]float64{flour: 500, margarine: 250, oil: 1},
			required:  map[uint]float64{flour: 200, butter: 100},
			disliked:  []uint{margarine},
			rules:     map[uint][]uint{butter: {margarine, oil}},
			want: Result{
				Feasible:     true,
				Substitution: &SubstitutionHint{MissingFoodID: butter, ReplacementFoodID: oil},
			},
		},
		{
			name:      "missing without substitute or waiver",
			inventory: map[uint]float64{flour: 500},
			required:  map[uint]float64{flour: 200, butter: 100},
			rules:     map[uint][]uint{},
			want:      Result{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CanBeMade(context.Background(), inventoryOf(tt.inventory), recipeOf(tt.required), tt.disliked, tt.minor, lookupFrom(tt.rules))
			assertResult(t, got, tt.want)
		})
	}
}

func TestCanBeMadeAllowsOneSubstitution(t *testing.T) {
	t.Parallel()

	lookup := lookupFrom(map[uint][]uint{butter: {margarine}, milk: {oil}})
	required := []models.RecipeItem{
		{FoodItemID: flour, Quantity: 200},
		{FoodItemID: butter, Quantity: 100},
		{FoodItemID: milk, Quantity: 0.2},
	}
	inventory := inventoryOf(map[uint]float64{flour: 500, margarine: 250, oil: 1})

	got := CanBeMade(context.Background(), inventory, required, nil, nil, lookup)
	assertResult(t, got, Result{})
}

func TestCanBeMadeSkipsLookupForMinorItems(t *testing.T) {
	t.Parallel()

	called := false
	lookup := func(context.Context, uint) []models.FoodItem {
		called = true
		return nil
	}
	required := []models.RecipeItem{{FoodItemID: flour, Quantity: 1}, {FoodItemID: salt, Quantity: 1}}
	inventory := inventoryOf(map[uint]float64{flour: 1})

	got := CanBeMade(context.Background(), inventory, required, nil, []uint{salt}, lookup)
	assertResult(t, got, Result{Feasible: true})
	if called {
		t.Fatal("expected minor ingredient to be waived without a substitution lookup")
	}
}

func assertResult(t *testing.T, got, want Result) {
	t.Helper()
	if got.Feasible != want.Feasible {
		t.Fatalf("Feasible = %t, want %t", got.Feasible, want.Feasible)
	}
	switch {
	case got.Substitution == nil && want.Substitution == nil:
	case got.Substitution == nil || want.Substitution == nil:
		t.Fatalf("Substitution = %+v, want %+v", got.Substitution, want.Substitution)
	case *got.Substitution != *want.Substitution:
		t.Fatalf("Substitution = %+v, want %+v", *got.Substitution, *want.Substitution)
	}
}
