package models

// ShoppingEntry is one accumulated row of the persisted shopping list.
// Entries are keyed by (ingredient id, normalized unit); contributions for
// the same ingredient in different units stay separate.
type ShoppingEntry struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Amount       float64 `json:"amount"`
	Checked      bool    `json:"checked"`
}

// ShoppingItem is a single portion-scaled contribution to the shopping
// aggregate. Amount is always numeric; freeform quantities are never
// contributed.
type ShoppingItem struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Amount       float64 `json:"amount"`
}
