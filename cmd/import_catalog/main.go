package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"demeter/internal/config"
	"demeter/internal/db"
	applog "demeter/internal/log"
	"demeter/internal/units"
	"demeter/models"

	"gorm.io/gorm"
)

var cleanWhitespace = regexp.MustCompile(`\s+`)

func main() {
	csvPath := "food catalog.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	imported, err := importRecords(context.Background(), database, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d food items from %s\n", imported, filepath.Base(csvPath))
	return nil
}

// importRecords upserts each row's food item and substitution rules in its own
// transaction. It stops at the first failing row.
func importRecords(ctx context.Context, database *gorm.DB, records []map[string]string) (int, error) {
	imported := 0
	for idx, record := range records {
		item := buildFoodItem(record)
		if item.Name == "" {
			applog.Warn(ctx, "skipping catalog row without a name", "row", idx+1)
			continue
		}

		err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			id, err := upsertFoodItem(tx, item)
			if err != nil {
				return err
			}

			for _, name := range splitNames(record["Substitutes"]) {
				if strings.EqualFold(name, item.Name) {
					continue
				}
				replacementID, err := ensureFoodItem(tx, name)
				if err != nil {
					return err
				}
				rule := models.Substitution{MissingItemID: id, ReplacementItemID: replacementID}
				if err := tx.Where(&rule).FirstOrCreate(&rule).Error; err != nil {
					return fmt.Errorf("record substitute %q for %q: %w", name, item.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			return imported, fmt.Errorf("record %d (%s): %w", idx+1, item.Name, err)
		}
		imported++
	}
	return imported, nil
}

func upsertFoodItem(tx *gorm.DB, item models.FoodItem) (uint, error) {
	var existing models.FoodItem
	err := tx.Where("lower(name) = ?", strings.ToLower(item.Name)).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&item).Error; err != nil {
			return 0, fmt.Errorf("create food item %q: %w", item.Name, err)
		}
		return item.ID, nil
	case err != nil:
		return 0, fmt.Errorf("find food item %q: %w", item.Name, err)
	}

	updates := map[string]any{
		"description": item.Description,
		"reusable":    item.Reusable,
		"pic_url":     item.PicURL,
		"unit_type":   item.UnitType,
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return 0, fmt.Errorf("update food item %q: %w", item.Name, err)
	}
	return existing.ID, nil
}

// ensureFoodItem returns the id of the named item, creating a bare entry when
// the catalog mentions a substitute before its own row.
func ensureFoodItem(tx *gorm.DB, name string) (uint, error) {
	var item models.FoodItem
	err := tx.Where("lower(name) = ?", strings.ToLower(name)).First(&item).Error
	switch {
	case err == nil:
		return item.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.FoodItem{Name: name, UnitType: units.FamilyDefault.String()}
		if err := tx.Create(&item).Error; err != nil {
			return 0, fmt.Errorf("create substitute %q: %w", name, err)
		}
		return item.ID, nil
	default:
		return 0, fmt.Errorf("find substitute %q: %w", name, err)
	}
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildFoodItem(row map[string]string) models.FoodItem {
	return models.FoodItem{
		Name:        normalizeText(row["Name"]),
		Description: normalizeText(row["Description"]),
		Reusable:    parseReusable(row["Reusable"]),
		PicURL:      normalizeValue(row["Picture"]),
		UnitType:    unitType(row["Unit Type"]),
	}
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

func parseReusable(value string) bool {
	value = strings.ToLower(normalizeValue(value))
	switch value {
	case "yes", "y":
		return true
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

// unitType accepts a family name such as "mass" or any unit of the family,
// such as "grams".
func unitType(value string) string {
	value = units.Normalize(value)
	for _, family := range []units.Family{units.FamilyVolume, units.FamilyLength, units.FamilyCount, units.FamilyTemperature, units.FamilyMass} {
		if value == family.String() {
			return value
		}
	}
	return units.FamilyOf(value).String()
}

func splitNames(value string) []string {
	value = normalizeValue(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	names := make([]string, 0, len(parts))
	seen := map[string]struct{}{}
	for _, part := range parts {
		clean := normalizeText(part)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, clean)
	}
	return names
}
