package recipes

import (
	"strings"

	"github.com/HerbHall/larder/pkg/models"
)

// ResolveIngredientIDs walks a recipe's ingredient groups in document order
// and returns the referenced ingredient ids, de-duplicated on first
// occurrence. Blank references are skipped.
func ResolveIngredientIDs(r models.Recipe) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range r.IngredientLists {
		for _, it := range list.Items {
			id := strings.TrimSpace(it.IngredientID)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
