package recipes

import (
	"sort"
	"strings"
)

// Match is a transient ranking of one recipe against current inventory.
// Available and Missing hold lowercased ingredient strings.
type Match struct {
	Recipe         RecipeEntry
	Available      []string
	Missing        []string
	Score          int
	WastePrevented int
}

// MatchRecipes scores the catalog against the full inventory name list and
// the expiring-name subset, returning at most limit matches in descending
// score order, ties broken by catalog order.
//
// An ingredient is available when it and an inventory name contain each
// other either way, case-insensitively. This is a deliberately loose,
// non-tokenized heuristic ("rice" matches "rice vinegar" too); do not
// upgrade it to token or fuzzy matching, the scoring depends on it.
func MatchRecipes(catalog []RecipeEntry, inventoryNames, expiringNames []string, limit int) []Match {
	inv := lowerAll(inventoryNames)
	exp := lowerAll(expiringNames)

	matches := make([]Match, 0, len(catalog))
	for _, r := range catalog {
		var available, missing, expiringUsed []string
		for _, ing := range r.Ingredients {
			low := strings.ToLower(ing)
			if containsAny(low, inv) {
				available = append(available, low)
				if containsAny(low, exp) {
					expiringUsed = append(expiringUsed, low)
				}
			} else {
				missing = append(missing, low)
			}
		}
		// One expiring ingredient outweighs several ordinary matches:
		// ranking follows the waste-reduction goal, not raw coverage.
		score := 10*len(expiringUsed) + len(available) - len(missing)
		matches = append(matches, Match{
			Recipe:         r,
			Available:      available,
			Missing:        missing,
			Score:          score,
			WastePrevented: len(expiringUsed),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// containsAny reports bidirectional substring containment between the
// ingredient and any of the (already lowercased) names.
func containsAny(ingredient string, names []string) bool {
	for _, n := range names {
		if n == "" {
			continue
		}
		if strings.Contains(ingredient, n) || strings.Contains(n, ingredient) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
