package recipes

import (
	"reflect"
	"testing"
)

func TestScoringExample(t *testing.T) {
	catalog := []RecipeEntry{{Name: "Khichdi", Ingredients: []string{"rice", "lentils", "onion"}}}
	got := MatchRecipes(catalog, []string{"rice", "lentils"}, []string{"lentils"}, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 match got %d", len(got))
	}
	m := got[0]
	if !reflect.DeepEqual(m.Available, []string{"rice", "lentils"}) {
		t.Fatalf("available = %v", m.Available)
	}
	if !reflect.DeepEqual(m.Missing, []string{"onion"}) {
		t.Fatalf("missing = %v", m.Missing)
	}
	if m.WastePrevented != 1 {
		t.Fatalf("wastePrevented = %d", m.WastePrevented)
	}
	// 10*1 + 2 - 1
	if m.Score != 11 {
		t.Fatalf("score = %d", m.Score)
	}
}

func TestBidirectionalContainment(t *testing.T) {
	catalog := []RecipeEntry{{Name: "Salad", Ingredients: []string{"tomato", "tomato puree"}}}

	// inventory name contains the ingredient
	got := MatchRecipes(catalog, []string{"Cherry Tomatoes"}, nil, 5)
	if !reflect.DeepEqual(got[0].Available, []string{"tomato"}) {
		t.Fatalf("expected [tomato] available, got %v", got[0].Available)
	}
	if !reflect.DeepEqual(got[0].Missing, []string{"tomato puree"}) {
		t.Fatalf("expected [tomato puree] missing, got %v", got[0].Missing)
	}

	// ingredient contains the inventory name
	got = MatchRecipes(catalog, []string{"tomato"}, nil, 5)
	if len(got[0].Available) != 2 {
		t.Fatalf("expected both forms available, got %v", got[0].Available)
	}
}

func TestTiesKeepCatalogOrder(t *testing.T) {
	catalog := []RecipeEntry{
		{Name: "First", Ingredients: []string{"apple"}},
		{Name: "Second", Ingredients: []string{"apple"}},
	}
	got := MatchRecipes(catalog, []string{"apple"}, nil, 5)
	if got[0].Recipe.Name != "First" || got[1].Recipe.Name != "Second" {
		t.Fatalf("tie-break broke catalog order: %s, %s", got[0].Recipe.Name, got[1].Recipe.Name)
	}
}

func TestExpiringOutweighsCoverage(t *testing.T) {
	catalog := []RecipeEntry{
		{Name: "Big Coverage", Ingredients: []string{"a", "b", "c"}},
		{Name: "Uses Expiring", Ingredients: []string{"x", "q", "r"}},
	}
	// Big Coverage: 3 available, 0 missing, 0 expiring -> 3
	// Uses Expiring: 1 available (expiring), 2 missing -> 10 - 1 = 9
	got := MatchRecipes(catalog, []string{"a", "b", "c", "x"}, []string{"x"}, 5)
	if got[0].Recipe.Name != "Uses Expiring" {
		t.Fatalf("expected expiring recipe first, got %s (score %d)", got[0].Recipe.Name, got[0].Score)
	}
}

func TestLimitTruncatesNeverPads(t *testing.T) {
	if got := MatchRecipes(DefaultCatalog, []string{"rice"}, nil, 3); len(got) != 3 {
		t.Fatalf("expected 3 results got %d", len(got))
	}
	small := DefaultCatalog[:2]
	if got := MatchRecipes(small, []string{"rice"}, nil, 10); len(got) != 2 {
		t.Fatalf("expected 2 results got %d", len(got))
	}
}

func TestDeterministicAcrossCalls(t *testing.T) {
	inv := []string{"rice", "lentils", "onion", "potato"}
	exp := []string{"lentils"}
	a := MatchRecipes(DefaultCatalog, inv, exp, 5)
	b := MatchRecipes(DefaultCatalog, inv, exp, 5)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different rankings")
	}
}

func TestLoadCatalogFallsBackToBuiltin(t *testing.T) {
	cat, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat) != len(DefaultCatalog) {
		t.Fatalf("expected built-in catalog, got %d entries", len(cat))
	}
}
