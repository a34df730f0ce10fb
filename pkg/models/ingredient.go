package models

// Ingredient is a reference entry an ingredient line points at.
type Ingredient struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       Image     `json:"image"`
	PropertyIDs []string  `json:"property_ids,omitempty"`
	Season      Season    `json:"season"`
	Storage     Storage   `json:"storage"`
	Spoilage    []string  `json:"spoilage,omitempty"`
	Nutrition   Nutrition `json:"nutrition_per_100g"`
}

// Season lists the months (1-12) an ingredient is locally available.
// An empty month list means year-round.
type Season struct {
	Months []int    `json:"months,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// Storage is display-only storage and shelf-life metadata.
type Storage struct {
	Place     string   `json:"place,omitempty"`
	ShelfDays int      `json:"shelf_days,omitempty"`
	Tips      []string `json:"tips,omitempty"`
}

// Nutrition holds display-only per-100g nutrient values.
type Nutrition struct {
	Kcal     float64 `json:"kcal,omitempty"`
	ProteinG float64 `json:"protein_g,omitempty"`
	FatG     float64 `json:"fat_g,omitempty"`
	CarbsG   float64 `json:"carbs_g,omitempty"`
}
