package dataset

import (
	"encoding/json"
	"strings"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/pkg/models"
)

// Normalize maps the raw collections into strict entities and builds the
// indexed catalog store. Malformed optional fields are replaced by documented
// defaults here, once, so the rest of the system never needs to re-check
// shapes.
func Normalize(c *Collections) *catalog.Store {
	recipes := make([]models.Recipe, 0, len(c.Recipes))
	for _, raw := range c.Recipes {
		if r, ok := normalizeRecipe(raw); ok {
			recipes = append(recipes, r)
		}
	}

	ingredients := make([]models.Ingredient, 0, len(c.Ingredients))
	for _, raw := range c.Ingredients {
		if raw.ID == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			ID:          raw.ID,
			Name:        raw.Name,
			Image:       models.Image{Path: raw.Image.Path, Alt: raw.Image.Alt},
			PropertyIDs: raw.PropertyIDs,
			Season: models.Season{
				Months: validMonths(raw.Season.Months),
				Labels: raw.Season.Labels,
			},
			Storage: models.Storage{
				Place:     raw.Storage.Place,
				ShelfDays: int(numberOr(raw.Storage.ShelfDays, 0)),
				Tips:      raw.Storage.Tips,
			},
			Spoilage: raw.Spoilage,
			Nutrition: models.Nutrition{
				Kcal:     numberOr(raw.Nutrition.Kcal, 0),
				ProteinG: numberOr(raw.Nutrition.ProteinG, 0),
				FatG:     numberOr(raw.Nutrition.FatG, 0),
				CarbsG:   numberOr(raw.Nutrition.CarbsG, 0),
			},
		})
	}

	properties := make([]models.PropertyTag, 0, len(c.Properties))
	for _, raw := range c.Properties {
		if raw.ID == "" {
			continue
		}
		properties = append(properties, models.PropertyTag{
			ID:       raw.ID,
			Group:    models.PropertyGroup(raw.Group),
			Subgroup: raw.Subgroup,
			Priority: int(numberOr(raw.Priority, models.PriorityUnset)),
			Label:    raw.Label,
			Icon:     raw.Icon,
		})
	}

	lore := make([]models.LoreTag, 0, len(c.Lore))
	for _, raw := range c.Lore {
		if raw.ID == "" {
			continue
		}
		tag := models.LoreTag{ID: raw.ID, Group: raw.Group, Label: raw.Label}
		if raw.Price != nil {
			tag.Price = &models.Price{
				Gold:   int(numberOr(raw.Price.Gold, 0)),
				Silver: int(numberOr(raw.Price.Silver, 0)),
				Copper: int(numberOr(raw.Price.Copper, 0)),
			}
		}
		lore = append(lore, tag)
	}

	seasons := make([]models.SeasonEntry, 0, len(c.Seasons))
	for _, raw := range c.Seasons {
		if raw.ID == "" || raw.Label == "" {
			continue
		}
		seasons = append(seasons, models.SeasonEntry{
			ID:     raw.ID,
			Label:  raw.Label,
			Months: validMonths(raw.Months),
		})
	}

	nutrients := make([]models.NutrientDef, 0, len(c.Nutrients))
	for _, raw := range c.Nutrients {
		if raw.ID == "" || raw.Source == "" {
			continue
		}
		nutrients = append(nutrients, models.NutrientDef{
			ID:    raw.ID,
			Label: raw.Label,
			Unit:  raw.Unit,
			// Source paths may carry the collection name as a prefix.
			Source: strings.TrimPrefix(raw.Source, KeyRecipes+"."),
		})
	}

	return catalog.NewStore(recipes, ingredients, properties, lore, seasons, nutrients)
}

// normalizeRecipe maps one raw recipe record. Records without an id are
// dropped; everything else degrades field by field.
func normalizeRecipe(data json.RawMessage) (models.Recipe, bool) {
	var raw rawRecipe
	if err := json.Unmarshal(data, &raw); err != nil || raw.ID == "" {
		return models.Recipe{}, false
	}

	r := models.Recipe{
		ID:           raw.ID,
		Title:        raw.Title,
		Image:        models.Image{Path: raw.Image.Path, Alt: raw.Image.Alt},
		BasePortions: basePortions(raw.BasePortions),
		PropertyIDs:  raw.Tags.Properties,
		LoreIDs:      raw.Tags.Lore,
		Allergens:    raw.Allergens.Contains,
		Story: models.Story{
			Short:   raw.Content.Story.Short,
			Setting: raw.Content.Story.Setting,
			Ritual:  raw.Content.Story.Ritual,
		},
	}
	if len(r.PropertyIDs) == 0 {
		r.PropertyIDs = raw.PropertyIDs
	}
	if len(r.LoreIDs) == 0 {
		r.LoreIDs = raw.LoreIDs
	}

	for _, list := range raw.Content.IngredientLists {
		items := make([]models.IngredientItem, 0, len(list.Items))
		for _, it := range list.Items {
			items = append(items, models.IngredientItem{
				IngredientID: it.IngredientID,
				Quantity:     string(it.Quantity),
				Unit:         it.Unit,
				Prep:         it.Prep,
			})
		}
		r.IngredientLists = append(r.IngredientLists, models.IngredientList{
			Title: list.Title,
			Items: items,
		})
	}

	// Step groups flatten into one sequence carrying the group name.
	for _, group := range raw.Content.Steps {
		name := group.Name
		if name == "" {
			name = group.Title
		}
		for _, st := range group.Steps {
			r.Steps = append(r.Steps, models.Step{
				Group:   strings.TrimSpace(name),
				Number:  int(numberOr(st.Number, 0)),
				Title:   st.Title,
				Text:    st.Text,
				Minutes: int(numberOr(st.Minutes, 0)),
				Checks:  st.Checks,
				Hint:    st.Hint,
			})
		}
	}

	// Flatten every numeric field to its dotted path for nutrient ranking.
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err == nil {
		r.Numbers = make(map[string]float64)
		flattenNumbers("", tree, r.Numbers)
	}

	return r, true
}

// basePortions applies the >0 invariant with fallback to 1.
func basePortions(v any) int {
	n := int(numberOr(v, 1))
	if n < 1 {
		return 1
	}
	return n
}

// validMonths keeps only calendar months 1-12.
func validMonths(months []int) []int {
	out := make([]int, 0, len(months))
	for _, m := range months {
		if m >= 1 && m <= 12 {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// flattenNumbers walks a decoded JSON tree and records every numeric leaf
// under its dotted path.
func flattenNumbers(prefix string, v any, out map[string]float64) {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			flattenNumbers(path, vv, out)
		}
	case float64:
		if prefix != "" {
			out[prefix] = t
		}
	}
}
