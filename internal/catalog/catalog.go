// Package catalog holds the immutable, session-loaded reference datasets
// indexed by identifier. The store is populated once by the dataset adapter
// and read-only afterwards, so it is freely shared across modules.
package catalog

import (
	"github.com/HerbHall/larder/pkg/models"
)

// Store indexes the six reference collections for O(1) lookup.
type Store struct {
	Recipes     []models.Recipe
	Ingredients []models.Ingredient
	Properties  []models.PropertyTag
	Lore        []models.LoreTag
	Seasons     []models.SeasonEntry
	Nutrients   []models.NutrientDef

	recipeByID     map[string]int
	ingredientByID map[string]int
	propertyByID   map[string]int
	loreByID       map[string]int
	seasonByID     map[string]int
	nutrientByID   map[string]int
}

// NewStore builds the indexed store. On duplicate identifiers the first
// entry wins; identifiers are expected to be unique across each collection.
func NewStore(
	recipes []models.Recipe,
	ingredients []models.Ingredient,
	properties []models.PropertyTag,
	lore []models.LoreTag,
	seasons []models.SeasonEntry,
	nutrients []models.NutrientDef,
) *Store {
	s := &Store{
		Recipes:     recipes,
		Ingredients: ingredients,
		Properties:  properties,
		Lore:        lore,
		Seasons:     seasons,
		Nutrients:   nutrients,

		recipeByID:     make(map[string]int, len(recipes)),
		ingredientByID: make(map[string]int, len(ingredients)),
		propertyByID:   make(map[string]int, len(properties)),
		loreByID:       make(map[string]int, len(lore)),
		seasonByID:     make(map[string]int, len(seasons)),
		nutrientByID:   make(map[string]int, len(nutrients)),
	}

	for i := range recipes {
		if _, dup := s.recipeByID[recipes[i].ID]; !dup {
			s.recipeByID[recipes[i].ID] = i
		}
	}
	for i := range ingredients {
		if _, dup := s.ingredientByID[ingredients[i].ID]; !dup {
			s.ingredientByID[ingredients[i].ID] = i
		}
	}
	for i := range properties {
		if _, dup := s.propertyByID[properties[i].ID]; !dup {
			s.propertyByID[properties[i].ID] = i
		}
	}
	for i := range lore {
		if _, dup := s.loreByID[lore[i].ID]; !dup {
			s.loreByID[lore[i].ID] = i
		}
	}
	for i := range seasons {
		if _, dup := s.seasonByID[seasons[i].ID]; !dup {
			s.seasonByID[seasons[i].ID] = i
		}
	}
	for i := range nutrients {
		if _, dup := s.nutrientByID[nutrients[i].ID]; !dup {
			s.nutrientByID[nutrients[i].ID] = i
		}
	}

	return s
}

// Recipe returns the recipe with the given id.
func (s *Store) Recipe(id string) (models.Recipe, bool) {
	i, ok := s.recipeByID[id]
	if !ok {
		return models.Recipe{}, false
	}
	return s.Recipes[i], true
}

// Ingredient returns the ingredient with the given id.
func (s *Store) Ingredient(id string) (models.Ingredient, bool) {
	i, ok := s.ingredientByID[id]
	if !ok {
		return models.Ingredient{}, false
	}
	return s.Ingredients[i], true
}

// Property returns the property tag with the given id.
func (s *Store) Property(id string) (models.PropertyTag, bool) {
	i, ok := s.propertyByID[id]
	if !ok {
		return models.PropertyTag{}, false
	}
	return s.Properties[i], true
}

// LoreTag returns the lore tag with the given id.
func (s *Store) LoreTag(id string) (models.LoreTag, bool) {
	i, ok := s.loreByID[id]
	if !ok {
		return models.LoreTag{}, false
	}
	return s.Lore[i], true
}

// Season returns the season entry with the given id.
func (s *Store) Season(id string) (models.SeasonEntry, bool) {
	i, ok := s.seasonByID[id]
	if !ok {
		return models.SeasonEntry{}, false
	}
	return s.Seasons[i], true
}

// Nutrient returns the nutrient definition with the given id.
func (s *Store) Nutrient(id string) (models.NutrientDef, bool) {
	i, ok := s.nutrientByID[id]
	if !ok {
		return models.NutrientDef{}, false
	}
	return s.Nutrients[i], true
}

// IngredientName resolves an ingredient id to its display name, falling back
// to the raw id on a lookup miss. Dangling references never block rendering.
func (s *Store) IngredientName(id string) string {
	if ing, ok := s.Ingredient(id); ok && ing.Name != "" {
		return ing.Name
	}
	return id
}

// PropertyLabel resolves a property id to its label, falling back to the raw id.
func (s *Store) PropertyLabel(id string) string {
	if p, ok := s.Property(id); ok && p.Label != "" {
		return p.Label
	}
	return id
}

// LoreLabel resolves a lore id to its label, falling back to the raw id.
func (s *Store) LoreLabel(id string) string {
	if l, ok := s.LoreTag(id); ok && l.Label != "" {
		return l.Label
	}
	return id
}

// SeasonMonths resolves a season or month id to its month numbers. Unknown
// ids yield no months, which disables the seasonal filter.
func (s *Store) SeasonMonths(id string) []int {
	if id == "" {
		return nil
	}
	entry, ok := s.Season(id)
	if !ok {
		return nil
	}
	return entry.Months
}
