package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"demeter/internal/db/mock"
	"demeter/models"
)

const catalogCSV = `Name,Description,Reusable,Unit Type,Picture,Substitutes
Butter, Unsalted   butter ,no,grams,https://img.example/butter.png,Margarine; ghee
Margarine,Plant based spread,N/A,mass,,
Cast iron pan,Seasoned skillet,yes,count,,
`

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	records, err := readCSV(writeCatalog(t, catalogCSV))
	if err != nil {
		t.Fatalf("readCSV returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if got := records[0]["Substitutes"]; got != "Margarine; ghee" {
		t.Fatalf("unexpected substitutes column %q", got)
	}

	if _, err := readCSV(writeCatalog(t, "")); err == nil {
		t.Fatal("expected error for empty csv")
	}
}

func TestBuildFoodItem(t *testing.T) {
	t.Parallel()

	item := buildFoodItem(map[string]string{
		"Name":        " Butter ",
		"Description": " Unsalted   butter ",
		"Reusable":    "no",
		"Unit Type":   "Grams",
		"Picture":     "N/A",
	})
	want := models.FoodItem{Name: "Butter", Description: "Unsalted butter", UnitType: "mass"}
	if item.Name != want.Name || item.Description != want.Description || item.Reusable || item.PicURL != "" || item.UnitType != want.UnitType {
		t.Fatalf("unexpected food item %+v", item)
	}
}

func TestUnitType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"volume":  "volume",
		"Mass":    "mass",
		"tbsp":    "volume",
		"inches":  "length",
		"pieces":  "count",
		"kelvin":  "temperature",
		"handful": "default",
		"":        "default",
	}
	for input, want := range tests {
		if got := unitType(input); got != want {
			t.Fatalf("unitType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseReusable(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]bool{"yes": true, "Y": true, "true": true, "1": true, "no": false, "": false, "N/A": false} {
		if got := parseReusable(input); got != want {
			t.Fatalf("parseReusable(%q) = %t, want %t", input, got, want)
		}
	}
}

func TestSplitNames(t *testing.T) {
	t.Parallel()

	got := splitNames(" Margarine ;ghee;; margarine ")
	if len(got) != 2 || got[0] != "Margarine" || got[1] != "ghee" {
		t.Fatalf("unexpected names %v", got)
	}
	if splitNames("N/A") != nil {
		t.Fatal("expected no names for N/A")
	}
}

func TestImportRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := mock.Empty(ctx, t.Name())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	records, err := readCSV(writeCatalog(t, catalogCSV))
	if err != nil {
		t.Fatalf("readCSV returned error: %v", err)
	}

	for pass := 1; pass <= 2; pass++ {
		imported, err := importRecords(ctx, database, records)
		if err != nil {
			t.Fatalf("pass %d: importRecords returned error: %v", pass, err)
		}
		if imported != 3 {
			t.Fatalf("pass %d: expected 3 imported rows, got %d", pass, imported)
		}
	}

	var items []models.FoodItem
	if err := database.Order("id asc").Find(&items).Error; err != nil {
		t.Fatalf("load food items: %v", err)
	}
	byName := map[string]models.FoodItem{}
	for _, item := range items {
		byName[item.Name] = item
	}
	if len(items) != 4 {
		t.Fatalf("expected butter, margarine, ghee and the pan, got %d items", len(items))
	}
	if byName["Margarine"].Description != "Plant based spread" {
		t.Fatalf("expected margarine row to fill in its description, got %+v", byName["Margarine"])
	}
	if !byName["Cast iron pan"].Reusable {
		t.Fatal("expected pan to be reusable")
	}

	var rules []models.Substitution
	if err := database.Order("id asc").Find(&rules).Error; err != nil {
		t.Fatalf("load substitutions: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 substitution rules after two passes, got %d", len(rules))
	}
	if rules[0].MissingItemID != byName["Butter"].ID || rules[0].ReplacementItemID != byName["Margarine"].ID {
		t.Fatalf("unexpected first rule %+v", rules[0])
	}
	if rules[1].ReplacementItemID != byName["ghee"].ID {
		t.Fatalf("expected ghee as second substitute, got %+v", rules[1])
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	t.Parallel()

	if err := run(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if err := run(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
