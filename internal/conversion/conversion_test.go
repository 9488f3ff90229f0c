package conversion

import (
	"context"
	"errors"
	"math"
	"testing"

	"demeter/internal/units"
	"demeter/models"
)

func ptr(v float64) *float64 { return &v }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func TestToCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		unit     string
		quantity *float64
		want     Measurement
	}{
		{"cups to liters", "cups", ptr(2), Measurement{Quantity: 0.473149, Unit: "L"}},
		{"inches to meters", "in", ptr(12), Measurement{Quantity: 0.304801, Unit: "m"}},
		{"fahrenheit to celsius", "°F", ptr(212), Measurement{Quantity: 100, Unit: "C"}},
		{"kelvin to celsius", "kelvin", ptr(300), Measurement{Quantity: 26.85, Unit: "C"}},
		{"pounds to grams", "lbs", ptr(1.5), Measurement{Quantity: 680.4, Unit: "g"}},
		{"milliliters to liters", "ml", ptr(250), Measurement{Quantity: 0.25, Unit: "L"}},
		{"teaspoons to liters", "tsp", ptr(3), Measurement{Quantity: 0.014786, Unit: "L"}},
		{"slices count as pieces", "slices", ptr(4), Measurement{Quantity: 4, Unit: "piece"}},
		{"canonical passes through", "g", ptr(125), Measurement{Quantity: 125, Unit: "g"}},
		{"unknown unit passes through", "handful", ptr(3), Measurement{Quantity: 3, Unit: DefaultUnit}},
		{"missing quantity is zero", "cup", nil, Measurement{Quantity: 0, Unit: DefaultUnit}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToCanonical(tt.unit, tt.quantity)
			if got.Unit != tt.want.Unit || !approxEqual(got.Quantity, tt.want.Quantity) {
				t.Fatalf("ToCanonical(%q) = %+v, want %+v", tt.unit, got, tt.want)
			}
		})
	}
}

func TestFromCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		unit     string
		quantity float64
		metric   bool
		want     Measurement
	}{
		{"small volume stays teaspoons", "L", 0.014787, false, Measurement{Quantity: 3.000282, Unit: "tsp"}},
		{"teaspoons promote one step", "L", 0.0591, false, Measurement{Quantity: 3.99713, Unit: "Tbsp"}},
		{"liter reads as cups", "l", 1, false, Measurement{Quantity: 4.227083, Unit: "cups"}},
		{"large volume reads as gallons", "liters", 10, false, Measurement{Quantity: 2.641927, Unit: "gal"}},
		{"grams below a pound stay ounces", "g", 400, false, Measurement{Quantity: 14.109347, Unit: "oz"}},
		{"a pound of grams reaches the promotion boundary", "g", 453.6, false, Measurement{Quantity: 1, Unit: "lb"}},
		{"grams promote to pounds", "grams", 2000, false, Measurement{Quantity: 4.409171, Unit: "lb"}},
		{"short length stays inches", "m", 0.3048, false, Measurement{Quantity: 11.999976, Unit: "in"}},
		{"meter reads as feet", "m", 1, false, Measurement{Quantity: 3.280833, Unit: "ft"}},
		{"long length reads as yards", "meters", 5, false, Measurement{Quantity: 5.468056, Unit: "yd"}},
		{"celsius to fahrenheit", "C", 100, false, Measurement{Quantity: 212, Unit: "f"}},
		{"freezing point", "°c", 0, false, Measurement{Quantity: 32, Unit: "f"}},
		{"single slice", "piece", 1, false, Measurement{Quantity: 1, Unit: "slice"}},
		{"several slices", "pieces", 3, false, Measurement{Quantity: 3, Unit: "slices"}},
		{"metric liters unchanged", "L", 1.5, true, Measurement{Quantity: 1.5, Unit: "L"}},
		{"metric grams unchanged", "g", 2000, true, Measurement{Quantity: 2000, Unit: "g"}},
		{"metric celsius unchanged", "C", 180, true, Measurement{Quantity: 180, Unit: "c"}},
		{"metric pieces plural", "piece", 2, true, Measurement{Quantity: 2, Unit: "pieces"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FromCanonical(tt.unit, ptr(tt.quantity), tt.metric)
			if err != nil {
				t.Fatalf("FromCanonical(%q, %v) returned error: %v", tt.unit, tt.quantity, err)
			}
			if got.Unit != tt.want.Unit || !approxEqual(got.Quantity, tt.want.Quantity) {
				t.Fatalf("FromCanonical(%q, %v) = %+v, want %+v", tt.unit, tt.quantity, got, tt.want)
			}
		})
	}
}

func TestFromCanonicalErrors(t *testing.T) {
	t.Parallel()

	if _, err := FromCanonical("g", nil, false); !errors.Is(err, ErrMissingQuantity) {
		t.Fatalf("expected ErrMissingQuantity, got %v", err)
	}
	if _, err := FromCanonical("cup", ptr(1), false); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound for non-canonical unit, got %v", err)
	}
	if _, err := FromCanonical(DefaultUnit, ptr(1), true); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound for default unit, got %v", err)
	}
}

func TestRoundTripLandsOnFamilyUnit(t *testing.T) {
	t.Parallel()

	canonical := ToCanonical("meter", ptr(1))
	got, err := FromCanonical(canonical.Unit, &canonical.Quantity, false)
	if err != nil {
		t.Fatalf("FromCanonical returned error: %v", err)
	}
	if got.Unit != "ft" && got.Unit != "in" {
		t.Fatalf("expected imperial length unit, got %q", got.Unit)
	}

	canonical = ToCanonical("oz", ptr(8))
	got, err = FromCanonical(canonical.Unit, &canonical.Quantity, false)
	if err != nil {
		t.Fatalf("FromCanonical returned error: %v", err)
	}
	if got.Unit != "oz" || math.Abs(got.Quantity-8) > 1e-3 {
		t.Fatalf("round trip of 8 oz = %+v", got)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		member   units.Member
		quantity float64
		want     string
	}{
		{units.Cup, 1, "cup"},
		{units.Cup, 1.5, "cups"},
		{units.Tablespoon, 2, "Tbsp"},
		{units.Milliliter, 5, "ml"},
		{units.Kilogram, 1, "kg"},
		{units.Mile, 1, DefaultUnit},
		{units.Pinch, 1, DefaultUnit},
	}

	for _, tt := range tests {
		if got := Display(tt.member, tt.quantity); got != tt.want {
			t.Fatalf("Display(%v, %v) = %q, want %q", tt.member, tt.quantity, got, tt.want)
		}
	}
}

func TestConvertInventorySkipsFailures(t *testing.T) {
	t.Parallel()

	items := []models.InventoryItem{
		{FoodItemID: 1, Quantity: 2000, Unit: "g"},
		{FoodItemID: 2, Quantity: 3, Unit: DefaultUnit},
		{FoodItemID: 3, Quantity: 100, Unit: "C"},
	}

	ConvertInventory(context.Background(), items, false)

	if items[0].Unit != "lb" || !approxEqual(items[0].Quantity, 4.409171) {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Unit != DefaultUnit || items[1].Quantity != 3 {
		t.Fatalf("expected failing item to be left unchanged, got %+v", items[1])
	}
	if items[2].Unit != "f" || !approxEqual(items[2].Quantity, 212) {
		t.Fatalf("unexpected third item: %+v", items[2])
	}
}

func TestOverflowingQuantities(t *testing.T) {
	t.Parallel()

	got := ToCanonical("t", ptr(1e308))
	if Finite(got.Quantity) {
		t.Fatalf("expected an overflowing canonical quantity, got %+v", got)
	}

	if _, err := FromCanonical("L", ptr(1e306), false); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for overflowing display, got %v", err)
	}
	if _, err := FromCanonical("g", ptr(math.Inf(1)), true); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for infinite input, got %v", err)
	}

	items := []models.InventoryItem{
		{FoodItemID: 1, Quantity: 1e307, Unit: "L"},
		{FoodItemID: 2, Quantity: 2000, Unit: "g"},
	}
	ConvertInventory(context.Background(), items, false)
	if items[0].Unit != "L" || items[0].Quantity != 1e307 {
		t.Fatalf("expected overflowing item to be left unchanged, got %+v", items[0])
	}
	if items[1].Unit != "lb" || !approxEqual(items[1].Quantity, 4.409171) {
		t.Fatalf("expected later items to still convert, got %+v", items[1])
	}
}

func TestConvertRecipeItemsMetric(t *testing.T) {
	t.Parallel()

	items := []models.RecipeItem{
		{RecipeID: 1, FoodItemID: 1, Quantity: 0.25, Unit: "L"},
		{RecipeID: 1, FoodItemID: 2, Quantity: 1, Unit: "bunch"},
	}

	ConvertRecipeItems(context.Background(), items, true)

	if items[0].Unit != "L" || items[0].Quantity != 0.25 {
		t.Fatalf("unexpected metric conversion: %+v", items[0])
	}
	if items[1].Unit != "bunch" {
		t.Fatalf("expected unconvertible item to be left unchanged, got %+v", items[1])
	}
}
