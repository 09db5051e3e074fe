package main

import (
	"log"
	"os"
	"strings"

	"fwplanner/models"
	"fwplanner/pkg/recipes"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// recipeCatalog is the static recipe reference table. Loaded once at process
// start, read-only afterwards; concurrent readers need no synchronization.
var recipeCatalog []recipes.RecipeEntry

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the roles master table exists first and seed it so users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	// Now migrate the rest (users will get FK to roles)
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.InventoryItem{}); err != nil {
			log.Printf("migration warning (inventory_items): %v", err)
		}
		if err := db.AutoMigrate(&models.ShoppingItem{}); err != nil {
			log.Printf("migration warning (shopping_items): %v", err)
		}
		if err := db.AutoMigrate(&models.MealPlan{}); err != nil {
			log.Printf("migration warning (meal_plans): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}

	seedDB()
	loadRecipeCatalog()
}

func seedRoles() {
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		// find administrator role id
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		// Seed admin user
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
}

// loadRecipeCatalog loads the static catalog once. RECIPES_FILE may point at
// a JSON file; any load failure falls back to the built-in table so recipe
// suggestions keep working.
func loadRecipeCatalog() {
	path := os.Getenv("RECIPES_FILE")
	cat, err := recipes.LoadCatalog(path)
	if err != nil {
		log.Printf("recipe catalog load failed (%v); using built-in catalog", err)
		cat = recipes.DefaultCatalog
	}
	recipeCatalog = cat
	log.Printf("recipe catalog loaded: %d entries", len(recipeCatalog))
}
