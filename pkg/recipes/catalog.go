package recipes

import (
	"encoding/json"
	"fmt"
	"os"
)

// RecipeEntry is static, immutable reference data. The catalog is loaded
// once at process start and treated as read-only shared data.
type RecipeEntry struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	CookingTime int      `json:"cooking_time"` // minutes
	Difficulty  string   `json:"difficulty"`   // quick, medium, long
	Cuisine     string   `json:"cuisine"`
	MealType    string   `json:"meal_type"` // breakfast, lunch, dinner, snack
}

// DefaultCatalog is the built-in recipe table. Its order is load-bearing:
// equal match scores are broken by first-defined position.
var DefaultCatalog = []RecipeEntry{
	{
		Name:        "Vegetable Khichdi",
		Ingredients: []string{"rice", "lentils", "onion", "tomato", "potato", "carrot", "peas", "ginger", "turmeric"},
		Steps:       []string{"Wash rice and lentils", "Pressure cook with vegetables and spices for 3 whistles", "Serve hot with ghee"},
		CookingTime: 30,
		Difficulty:  "quick",
		Cuisine:     "Indian",
		MealType:    "lunch",
	},
	{
		Name:        "Dal Tadka",
		Ingredients: []string{"lentils", "onion", "tomato", "garlic", "ginger", "cumin", "turmeric", "ghee"},
		Steps:       []string{"Pressure cook lentils", "Prepare tadka with cumin and spices", "Mix and simmer for 5 minutes"},
		CookingTime: 25,
		Difficulty:  "quick",
		Cuisine:     "Indian",
		MealType:    "lunch",
	},
	{
		Name:        "Poha",
		Ingredients: []string{"poha", "onion", "potato", "peanuts", "turmeric", "curry leaves", "lemon"},
		Steps:       []string{"Wash poha and keep aside", "Sauté onions and potatoes", "Add poha and spices", "Garnish with lemon"},
		CookingTime: 15,
		Difficulty:  "quick",
		Cuisine:     "Indian",
		MealType:    "breakfast",
	},
	{
		Name:        "Vegetable Pulao",
		Ingredients: []string{"rice", "carrot", "peas", "beans", "onion", "bay leaf", "cumin", "ghee"},
		Steps:       []string{"Wash and soak rice", "Sauté vegetables", "Add rice and water", "Cook till done"},
		CookingTime: 30,
		Difficulty:  "medium",
		Cuisine:     "Indian",
		MealType:    "lunch",
	},
	{
		Name:        "Paneer Bhurji",
		Ingredients: []string{"paneer", "onion", "tomato", "capsicum", "turmeric", "chili powder", "oil"},
		Steps:       []string{"Crumble paneer", "Sauté onions and tomatoes", "Add paneer and spices", "Cook for 5 minutes"},
		CookingTime: 20,
		Difficulty:  "quick",
		Cuisine:     "Indian",
		MealType:    "breakfast",
	},
	{
		Name:        "Aloo Paratha",
		Ingredients: []string{"wheat flour", "potato", "onion", "green chili", "coriander", "ghee"},
		Steps:       []string{"Make dough", "Prepare potato filling", "Stuff and roll paratha", "Cook on tawa with ghee"},
		CookingTime: 40,
		Difficulty:  "medium",
		Cuisine:     "Indian",
		MealType:    "breakfast",
	},
	{
		Name:        "Curd Rice",
		Ingredients: []string{"rice", "curd", "milk", "cucumber", "coriander", "mustard seeds", "curry leaves"},
		Steps:       []string{"Cook rice and mash", "Mix with curd and milk", "Add cucumber and tempering"},
		CookingTime: 20,
		Difficulty:  "quick",
		Cuisine:     "Indian",
		MealType:    "lunch",
	},
	{
		Name:        "Mixed Vegetable Curry",
		Ingredients: []string{"potato", "carrot", "beans", "peas", "onion", "tomato", "coconut", "spices"},
		Steps:       []string{"Chop all vegetables", "Pressure cook with spices", "Prepare gravy", "Simmer for 10 minutes"},
		CookingTime: 35,
		Difficulty:  "medium",
		Cuisine:     "Indian",
		MealType:    "dinner",
	},
}

// LoadCatalog reads a JSON catalog from path; an empty path returns the
// built-in table. The matcher does not care where the catalog came from.
func LoadCatalog(path string) ([]RecipeEntry, error) {
	if path == "" {
		return DefaultCatalog, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var out []RecipeEntry
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("catalog %s has no entries", path)
	}
	return out, nil
}
