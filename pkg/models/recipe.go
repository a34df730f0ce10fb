package models

// Recipe is a catalog entry. All fields are normalized at load time by the
// dataset adapter; consumers never need to re-check shapes defensively.
type Recipe struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Image           Image            `json:"image"`
	BasePortions    int              `json:"base_portions"`
	PropertyIDs     []string         `json:"property_ids,omitempty"`
	LoreIDs         []string         `json:"lore_ids,omitempty"`
	Allergens       []string         `json:"allergens,omitempty"`
	Story           Story            `json:"story"`
	IngredientLists []IngredientList `json:"ingredient_lists,omitempty"`
	Steps           []Step           `json:"steps,omitempty"`

	// Numbers holds every numeric field of the raw recipe record, flattened
	// to dotted paths (e.g. "nutrition.protein_g"). Nutrient ranking reads
	// values through these paths.
	Numbers map[string]float64 `json:"-"`
}

// Image references a recipe or ingredient picture.
type Image struct {
	Path string `json:"path,omitempty"`
	Alt  string `json:"alt,omitempty"`
}

// Story is the narrative content attached to a recipe.
type Story struct {
	Short   string   `json:"short,omitempty"`
	Setting string   `json:"setting,omitempty"`
	Ritual  []string `json:"ritual,omitempty"`
}

// IngredientList is one titled group of line items within a recipe.
type IngredientList struct {
	Title string           `json:"title"`
	Items []IngredientItem `json:"items"`
}

// IngredientItem is a single ingredient line. Quantity is kept as a display
// string because it may be freeform ("to taste"); the quantity scaler decides
// whether it is numeric.
type IngredientItem struct {
	IngredientID string `json:"ingredient_id"`
	Quantity     string `json:"quantity,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Prep         string `json:"prep,omitempty"`
}

// Step is one instruction step, flattened from the raw step groups.
type Step struct {
	Group    string   `json:"group,omitempty"`
	Number   int      `json:"number,omitempty"`
	Title    string   `json:"title,omitempty"`
	Text     []string `json:"text,omitempty"`
	Minutes  int      `json:"minutes,omitempty"`
	Checks   []string `json:"checks,omitempty"`
	Hint     string   `json:"hint,omitempty"`
}

// Value returns the numeric field at the given dotted path, or 0 when the
// path is absent.
func (r Recipe) Value(path string) float64 {
	return r.Numbers[path]
}
