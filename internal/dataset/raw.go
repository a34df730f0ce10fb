// Package dataset loads the six reference collections and normalizes their
// loosely-typed records into the strict entity shapes of pkg/models. All
// shape tolerance lives here; downstream code never re-checks field types.
package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Collection keys inside each dataset document.
const (
	KeyRecipes     = "recipes"
	KeyIngredients = "ingredients"
	KeyProperties  = "properties"
	KeyLore        = "lore"
	KeySeasons     = "seasons"
	KeyNutrients   = "nutrients"
)

// Collections holds the raw records of all six datasets. Recipes stay as raw
// messages because the adapter reads them twice: once through the typed
// shape, once as a generic tree for numeric-path flattening.
type Collections struct {
	Recipes     []json.RawMessage
	Ingredients []rawIngredient
	Properties  []rawProperty
	Lore        []rawLore
	Seasons     []rawSeason
	Nutrients   []rawNutrient
}

// flexStrings accepts a JSON array of strings, a single comma-separated
// string, or null.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s := anyToString(v); s != "" {
				out = append(out, s)
			}
		}
		*f = out
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*f = out
		return nil
	}

	// Any other shape degrades to an empty list.
	*f = nil
	return nil
}

// flexInts accepts a JSON array of numbers or numeric strings.
type flexInts []int

func (f *flexInts) UnmarshalJSON(data []byte) error {
	var arr []any
	if err := json.Unmarshal(data, &arr); err != nil {
		*f = nil
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		if n, ok := anyToNumber(v); ok {
			out = append(out, int(n))
		}
	}
	*f = out
	return nil
}

// flexImage accepts either a plain path string or a {path, alt} object.
type flexImage struct {
	Path string `json:"path"`
	Alt  string `json:"alt"`
}

func (f *flexImage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}
	type plain flexImage
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*f = flexImage(p)
	}
	return nil
}

// flexQuantity accepts a JSON number or a freeform string and keeps the
// display representation.
type flexQuantity string

func (f *flexQuantity) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexQuantity(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexQuantity(s)
	}
	return nil
}

type rawRecipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Image        flexImage `json:"image"`
	BasePortions any       `json:"base_portions"`
	Tags         struct {
		Properties flexStrings `json:"properties"`
		Lore       flexStrings `json:"lore"`
	} `json:"tags"`
	// Flat legacy shape; used when the nested tags object is absent.
	PropertyIDs flexStrings `json:"property_ids"`
	LoreIDs     flexStrings `json:"lore_ids"`
	Allergens   struct {
		Contains flexStrings `json:"contains"`
	} `json:"allergens"`
	Content struct {
		Story struct {
			Short   string      `json:"short"`
			Setting string      `json:"setting"`
			Ritual  flexStrings `json:"ritual"`
		} `json:"story"`
		IngredientLists []struct {
			Title string `json:"title"`
			Items []struct {
				IngredientID string       `json:"ingredient_id"`
				Quantity     flexQuantity `json:"quantity"`
				Unit         string       `json:"unit"`
				Prep         string       `json:"prep"`
			} `json:"items"`
		} `json:"ingredient_lists"`
		Steps []struct {
			Name  string `json:"name"`
			Title string `json:"title"`
			Steps []struct {
				Number  any         `json:"number"`
				Title   string      `json:"title"`
				Text    flexStrings `json:"text"`
				Minutes any         `json:"minutes"`
				Checks  flexStrings `json:"checks"`
				Hint    string      `json:"hint"`
			} `json:"steps"`
		} `json:"steps"`
	} `json:"content"`
}

type rawIngredient struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Image       flexImage   `json:"image"`
	PropertyIDs flexStrings `json:"property_ids"`
	Season      struct {
		Months flexInts    `json:"months"`
		Labels flexStrings `json:"labels"`
	} `json:"season"`
	Storage struct {
		Place     string      `json:"place"`
		ShelfDays any         `json:"shelf_days"`
		Tips      flexStrings `json:"tips"`
	} `json:"storage"`
	Spoilage  flexStrings `json:"spoilage"`
	Nutrition struct {
		Kcal     any `json:"kcal"`
		ProteinG any `json:"protein_g"`
		FatG     any `json:"fat_g"`
		CarbsG   any `json:"carbs_g"`
	} `json:"nutrition_per_100g"`
}

type rawProperty struct {
	ID       string `json:"id"`
	Group    string `json:"group"`
	Subgroup string `json:"subgroup"`
	Priority any    `json:"priority"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
}

type rawLore struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	Label string `json:"label"`
	Price *struct {
		Gold   any `json:"gm"`
		Silver any `json:"sm"`
		Copper any `json:"km"`
	} `json:"price"`
}

type rawSeason struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Months flexInts `json:"months"`
}

type rawNutrient struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Unit   string `json:"unit"`
	Source string `json:"source"`
}

// anyToString renders scalar JSON values as trimmed strings.
func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// anyToNumber extracts a finite number from a scalar JSON value.
func anyToNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// numberOr returns the numeric value of v, or fallback when v is absent or
// not numeric.
func numberOr(v any, fallback float64) float64 {
	if n, ok := anyToNumber(v); ok {
		return n
	}
	return fallback
}
