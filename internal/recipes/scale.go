package recipes

import (
	"math"
	"strconv"
	"strings"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/pkg/models"
)

// FormatAmount renders a numeric amount rounded to two decimal places with
// trailing zeros and a trailing decimal point stripped (2.00 -> "2",
// 2.50 -> "2.5").
func FormatAmount(v float64) string {
	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// ScaleQuantity multiplies a numeric quantity by the portion factor and
// formats it per FormatAmount. Empty quantities stay empty; freeform
// quantities ("nach Geschmack") pass through verbatim.
func ScaleQuantity(q string, factor float64) string {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return ""
	}
	n, ok := NumericQuantity(q)
	if !ok {
		return q
	}
	return FormatAmount(n * factor)
}

// NumericQuantity parses a quantity display string as a finite number.
func NumericQuantity(q string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ClampPortions enforces the minimum of one portion.
func ClampPortions(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// PortionFactor computes requested/base with both sides clamped to at
// least 1.
func PortionFactor(current, base int) float64 {
	if base < 1 {
		base = 1
	}
	return float64(ClampPortions(current)) / float64(base)
}

// ScaledItem is one display-ready ingredient line.
type ScaledItem struct {
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name"`
	Amount       string `json:"amount,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Prep         string `json:"prep,omitempty"`
}

// ScaledList is one titled ingredient group with scaled amounts.
type ScaledList struct {
	Title string       `json:"title"`
	Items []ScaledItem `json:"items"`
}

// ScaledLists renders a recipe's ingredient groups at the requested portion
// count. Freeform amounts render unchanged; names resolve through the
// catalog with raw-id fallback.
func ScaledLists(r models.Recipe, portions int, cat *catalog.Store) []ScaledList {
	factor := PortionFactor(portions, r.BasePortions)

	lists := make([]ScaledList, 0, len(r.IngredientLists))
	for _, list := range r.IngredientLists {
		items := make([]ScaledItem, 0, len(list.Items))
		for _, it := range list.Items {
			items = append(items, ScaledItem{
				IngredientID: it.IngredientID,
				Name:         cat.IngredientName(it.IngredientID),
				Amount:       ScaleQuantity(it.Quantity, factor),
				Unit:         it.Unit,
				Prep:         it.Prep,
			})
		}
		lists = append(lists, ScaledList{Title: list.Title, Items: items})
	}
	return lists
}

// ContributionItems collects a recipe's numerically-quantified ingredient
// lines, portion-scaled, for the shopping aggregate. Freeform quantities are
// never contributed.
func ContributionItems(r models.Recipe, portions int, cat *catalog.Store) []models.ShoppingItem {
	factor := PortionFactor(portions, r.BasePortions)

	var items []models.ShoppingItem
	for _, list := range r.IngredientLists {
		for _, it := range list.Items {
			id := strings.TrimSpace(it.IngredientID)
			if id == "" {
				continue
			}
			n, ok := NumericQuantity(it.Quantity)
			if !ok {
				continue
			}
			items = append(items, models.ShoppingItem{
				IngredientID: id,
				Name:         cat.IngredientName(id),
				Unit:         it.Unit,
				Amount:       math.Round(n*factor*100) / 100,
			})
		}
	}
	return items
}
