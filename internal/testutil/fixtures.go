package testutil

import (
	"github.com/google/uuid"

	"github.com/HerbHall/larder/pkg/models"
)

// NewRecipe returns a Recipe with sensible defaults, suitable for test
// fixtures. Override individual fields via options or after creation.
func NewRecipe(opts ...func(*models.Recipe)) models.Recipe {
	r := models.Recipe{
		ID:           "rcp_" + uuid.New().String(),
		Title:        "Test Recipe",
		BasePortions: 4,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithID sets the recipe id.
func WithID(id string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.ID = id }
}

// WithTitle sets the recipe title.
func WithTitle(title string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.Title = title }
}

// WithBasePortions sets the portion count the quantities are written for.
func WithBasePortions(n int) func(*models.Recipe) {
	return func(r *models.Recipe) { r.BasePortions = n }
}

// WithProperties sets the recipe's own property tags.
func WithProperties(ids ...string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.PropertyIDs = ids }
}

// WithLore sets the recipe's lore tags.
func WithLore(ids ...string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.LoreIDs = ids }
}

// WithAllergens sets the recipe's allergen markers.
func WithAllergens(ids ...string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.Allergens = ids }
}

// WithIngredientList appends one titled ingredient group.
func WithIngredientList(title string, items ...models.IngredientItem) func(*models.Recipe) {
	return func(r *models.Recipe) {
		r.IngredientLists = append(r.IngredientLists, models.IngredientList{Title: title, Items: items})
	}
}

// WithNumbers sets the recipe's flattened numeric fields.
func WithNumbers(numbers map[string]float64) func(*models.Recipe) {
	return func(r *models.Recipe) { r.Numbers = numbers }
}

// Item builds one ingredient line.
func Item(ingredientID, quantity, unit string) models.IngredientItem {
	return models.IngredientItem{IngredientID: ingredientID, Quantity: quantity, Unit: unit}
}

// NewIngredient returns an Ingredient fixture.
func NewIngredient(opts ...func(*models.Ingredient)) models.Ingredient {
	ing := models.Ingredient{
		ID:   "ing_" + uuid.New().String(),
		Name: "Test Ingredient",
	}
	for _, opt := range opts {
		opt(&ing)
	}
	return ing
}

// WithIngredientID sets the ingredient id.
func WithIngredientID(id string) func(*models.Ingredient) {
	return func(ing *models.Ingredient) { ing.ID = id }
}

// WithName sets the ingredient name.
func WithName(name string) func(*models.Ingredient) {
	return func(ing *models.Ingredient) { ing.Name = name }
}

// WithIngredientProperties sets the ingredient's property tags.
func WithIngredientProperties(ids ...string) func(*models.Ingredient) {
	return func(ing *models.Ingredient) { ing.PropertyIDs = ids }
}

// WithSeasonMonths sets the months the ingredient is in season.
func WithSeasonMonths(months ...int) func(*models.Ingredient) {
	return func(ing *models.Ingredient) { ing.Season.Months = months }
}
