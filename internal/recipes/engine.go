package recipes

import (
	"sort"
	"strings"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/pkg/models"
)

const allergenPrefix = "alg_"

// containsPropertyPrefix maps an allergen marker to the contains-property id
// space: alg_ei expands to prop_enthaelt_ei.
const containsPropertyPrefix = "prop_enthaelt_"

// FilterCriteria is one complete filter state. The zero value matches every
// recipe and sorts by title.
type FilterCriteria struct {
	ExcludedProperties []string `json:"excluded_properties,omitempty"`
	RequiredProperties []string `json:"required_properties,omitempty"`
	RequiredLore       []string `json:"required_lore,omitempty"`
	MustContain        []string `json:"must_contain,omitempty"`
	MustNotContain     []string `json:"must_not_contain,omitempty"`
	SeasonMonths       []int    `json:"season_months,omitempty"`
	Query              string   `json:"query,omitempty"`
	RankNutrients      []string `json:"rank_nutrients,omitempty"`
}

// Engine evaluates filter criteria against the catalog. Evaluation is a pure
// read over the catalog, so one engine serves any number of goroutines.
type Engine struct {
	cat *catalog.Store
}

func NewEngine(cat *catalog.Store) *Engine {
	return &Engine{cat: cat}
}

// Evaluate returns the recipes matching every active criterion, ranked by
// the selected nutrients when any resolve, otherwise sorted by title with
// German collation.
func (e *Engine) Evaluate(c FilterCriteria) []models.Recipe {
	excluded := toSet(c.ExcludedProperties)
	lore := toSet(c.RequiredLore)
	need := toSet(c.MustContain)
	avoid := toSet(c.MustNotContain)
	months := toIntSet(c.SeasonMonths)
	query := strings.ToLower(strings.TrimSpace(c.Query))

	// An ingredient demanded and banned at once can never be satisfied.
	for id := range need {
		if _, clash := avoid[id]; clash {
			return nil
		}
	}

	out := make([]models.Recipe, 0, len(e.cat.Recipes))
	for _, r := range e.cat.Recipes {
		if e.matches(r, c, excluded, lore, need, avoid, months, query) {
			out = append(out, r)
		}
	}

	if ranked := e.rank(out, c.RankNutrients); ranked {
		return out
	}

	coll := catalog.NewCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(out[i].Title, out[j].Title) < 0
	})
	return out
}

func (e *Engine) matches(r models.Recipe, c FilterCriteria, excluded, lore, need, avoid map[string]struct{}, months map[int]struct{}, query string) bool {
	ingredientIDs := ResolveIngredientIDs(r)
	props := e.effectiveProperties(r, ingredientIDs)

	for id := range excluded {
		if _, hit := props[id]; hit {
			return false
		}
	}
	for _, id := range c.RequiredProperties {
		if _, hit := props[id]; !hit {
			return false
		}
	}
	for id := range lore {
		if !containsString(r.LoreIDs, id) {
			return false
		}
	}

	if len(need) > 0 || len(avoid) > 0 {
		have := toSet(ingredientIDs)
		for id := range need {
			if _, hit := have[id]; !hit {
				return false
			}
		}
		for id := range avoid {
			if _, hit := have[id]; hit {
				return false
			}
		}
	}

	if len(months) > 0 && !e.inSeason(ingredientIDs, months) {
		return false
	}

	if query != "" && !strings.Contains(e.haystack(r, ingredientIDs), query) {
		return false
	}
	return true
}

// effectiveProperties is the union of a recipe's own tags, the tags of every
// referenced ingredient and the contains-properties expanded from the
// recipe's allergen markers.
func (e *Engine) effectiveProperties(r models.Recipe, ingredientIDs []string) map[string]struct{} {
	props := make(map[string]struct{}, len(r.PropertyIDs))
	for _, id := range r.PropertyIDs {
		props[id] = struct{}{}
	}
	for _, id := range ingredientIDs {
		ing, ok := e.cat.Ingredient(id)
		if !ok {
			continue
		}
		for _, pid := range ing.PropertyIDs {
			props[pid] = struct{}{}
		}
	}
	for _, a := range r.Allergens {
		if rest, ok := strings.CutPrefix(a, allergenPrefix); ok {
			props[containsPropertyPrefix+rest] = struct{}{}
		}
	}
	return props
}

// inSeason holds when every referenced ingredient that declares season
// months has at least one of them among the selected months. Ingredients
// without season data never disqualify a recipe.
func (e *Engine) inSeason(ingredientIDs []string, months map[int]struct{}) bool {
	for _, id := range ingredientIDs {
		ing, ok := e.cat.Ingredient(id)
		if !ok || len(ing.Season.Months) == 0 {
			continue
		}
		hit := false
		for _, m := range ing.Season.Months {
			if _, in := months[m]; in {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (e *Engine) haystack(r models.Recipe, ingredientIDs []string) string {
	var b strings.Builder
	b.WriteString(r.Title)
	for _, id := range r.PropertyIDs {
		b.WriteByte(' ')
		b.WriteString(e.cat.PropertyLabel(id))
	}
	for _, id := range r.LoreIDs {
		b.WriteByte(' ')
		b.WriteString(e.cat.LoreLabel(id))
	}
	for _, id := range ingredientIDs {
		b.WriteByte(' ')
		b.WriteString(e.cat.IngredientName(id))
	}
	return strings.ToLower(b.String())
}

// rank sorts recipes by descending nutrient score and reports whether any of
// the requested nutrient ids resolved. The score sums each recipe's value
// per nutrient normalized by the catalog-wide maximum for that nutrient, so
// every selected nutrient carries equal weight.
func (e *Engine) rank(recipes []models.Recipe, nutrientIDs []string) bool {
	var selected []models.NutrientDef
	for _, id := range nutrientIDs {
		if def, ok := e.cat.Nutrient(id); ok {
			selected = append(selected, def)
		}
	}
	if len(selected) == 0 {
		return false
	}

	maxima := make(map[string]float64, len(selected))
	for _, def := range selected {
		max := 0.0
		for _, r := range e.cat.Recipes {
			if v := r.Value(def.Source); v > max {
				max = v
			}
		}
		maxima[def.ID] = max
	}

	score := func(r models.Recipe) float64 {
		total := 0.0
		for _, def := range selected {
			max := maxima[def.ID]
			if max <= 0 {
				continue
			}
			total += r.Value(def.Source) / max
		}
		return total
	}

	scores := make(map[string]float64, len(recipes))
	for _, r := range recipes {
		scores[r.ID] = score(r)
	}
	sort.SliceStable(recipes, func(i, j int) bool {
		return scores[recipes[i].ID] > scores[recipes[j].ID]
	})
	return true
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

func toIntSet(vals []int) map[int]struct{} {
	set := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
