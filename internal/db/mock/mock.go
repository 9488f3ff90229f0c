package mock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"demeter/internal/db"
	applog "demeter/internal/log"
	"demeter/models"
)

// Credentials of the seeded account.
const (
	Email    = "cook@demeter.app"
	Password = "pantry"
)

// New returns an in-memory sqlite database seeded with a small pantry, a few
// recipes and one user.
func New(ctx context.Context) (*gorm.DB, error) {
	return Open(ctx, "demeter-mock")
}

// Open is New for a named database, so callers can hold isolated copies.
func Open(ctx context.Context, name string) (*gorm.DB, error) {
	database, err := Empty(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready", "name", name)
	return database, nil
}

// Empty returns a migrated but unseeded in-memory database.
func Empty(ctx context.Context, name string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "name", name)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", sanitize(name))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	// one connection keeps the memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// FoodIDs maps seeded food item names to their ids.
func FoodIDs(ctx context.Context, database *gorm.DB) (map[string]uint, error) {
	var items []models.FoodItem
	if err := database.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(items))
	for _, item := range items {
		ids[item.Name] = item.ID
	}
	return ids, nil
}

func sanitize(name string) string {
	return strings.NewReplacer("/", "_", " ", "_", "?", "_", "#", "_").Replace(name)
}

type ingredient struct {
	food     string
	quantity float64
	unit     string
}

func seed(ctx context.Context, database *gorm.DB) error {
	var existing models.User
	err := database.WithContext(ctx).Where("email = ?", Email).First(&existing).Error
	if err == nil {
		applog.Debug(ctx, "mock database already seeded")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	applog.Debug(ctx, "seeding mock database")

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		password, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &models.User{
			Name:         "Casey Kitchen",
			Email:        Email,
			PasswordHash: string(password),
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		catalog := []models.FoodItem{
			{Name: "flour", Description: "All purpose wheat flour.", UnitType: "mass"},
			{Name: "eggs", Description: "Free range hen eggs.", UnitType: "count"},
			{Name: "milk", Description: "Whole milk.", UnitType: "volume"},
			{Name: "salt", Description: "Fine sea salt.", UnitType: "mass", Reusable: true},
			{Name: "butter", Description: "Unsalted butter.", UnitType: "mass"},
			{Name: "margarine", Description: "Plant based spread.", UnitType: "mass"},
			{Name: "sugar", Description: "Granulated cane sugar.", UnitType: "mass"},
			{Name: "bread", Description: "Country sourdough loaf.", UnitType: "count"},
			{Name: "tomato", Description: "Vine tomatoes.", UnitType: "count"},
			{Name: "basil", Description: "Fresh basil leaves.", UnitType: "mass"},
			{Name: "olive oil", Description: "Extra virgin olive oil.", UnitType: "volume", Reusable: true},
		}
		if err := tx.Create(&catalog).Error; err != nil {
			return err
		}
		ids := make(map[string]uint, len(catalog))
		for _, item := range catalog {
			ids[item.Name] = item.ID
		}

		inventory := []ingredient{
			{"flour", 1000, "g"},
			{"eggs", 6, "piece"},
			{"milk", 1, "L"},
			{"margarine", 250, "g"},
			{"sugar", 500, "g"},
			{"bread", 8, "piece"},
			{"tomato", 4, "piece"},
			{"olive oil", 0.5, "L"},
		}
		for _, entry := range inventory {
			item := models.InventoryItem{UserID: user.ID, FoodItemID: ids[entry.food], Quantity: entry.quantity, Unit: entry.unit}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		recipes := []struct {
			name        string
			description string
			items       []ingredient
		}{
			{"Pancakes", "Fluffy breakfast pancakes.", []ingredient{{"flour", 200, "g"}, {"eggs", 2, "piece"}, {"milk", 0.3, "L"}, {"salt", 2, "g"}}},
			{"Shortbread", "Crumbly butter biscuits.", []ingredient{{"flour", 300, "g"}, {"butter", 200, "g"}, {"sugar", 100, "g"}}},
			{"Bruschetta", "Toasted bread with tomato and basil.", []ingredient{{"bread", 4, "piece"}, {"tomato", 2, "piece"}, {"basil", 5, "g"}, {"olive oil", 0.03, "L"}}},
			{"Omelette", "Three egg omelette.", []ingredient{{"eggs", 3, "piece"}, {"milk", 0.05, "L"}, {"salt", 1, "g"}}},
		}
		for _, r := range recipes {
			recipe := models.Recipe{Name: r.name, Description: r.description}
			for _, entry := range r.items {
				recipe.Items = append(recipe.Items, models.RecipeItem{FoodItemID: ids[entry.food], Quantity: entry.quantity, Unit: entry.unit})
			}
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&models.MinorItem{UserID: user.ID, FoodItemID: ids["salt"]}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.DislikedItem{UserID: user.ID, FoodItemID: ids["basil"]}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Substitution{MissingItemID: ids["butter"], ReplacementItemID: ids["margarine"]}).Error; err != nil {
			return err
		}

		applog.Debug(ctx, "mock database seeded", "foodItems", len(catalog), "recipes", len(recipes))
		return nil
	})
}
