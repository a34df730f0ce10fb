package models

import (
	"fmt"
	"strings"
)

// PropertyGroup names the display group a property tag belongs to.
type PropertyGroup string

// Groups admitted to grouped display. Tags in any other group still filter
// but are excluded from the grouped blocks.
const (
	GroupNutrition        PropertyGroup = "nutrition"
	GroupAllergenContains PropertyGroup = "allergen-contains"
	GroupDishType         PropertyGroup = "dish-type"
	GroupUsage            PropertyGroup = "usage"
)

// DisplayGroups is the fixed allow-list, in display order.
var DisplayGroups = []PropertyGroup{
	GroupNutrition,
	GroupAllergenContains,
	GroupDishType,
	GroupUsage,
}

// PriorityUnset sorts a tag without an explicit priority after all ranked
// tags.
const PriorityUnset = 9999

// PropertyTag is a classification label attachable to recipes and
// ingredients (diet, allergen, dish type, usage).
type PropertyTag struct {
	ID       string        `json:"id"`
	Group    PropertyGroup `json:"group"`
	Subgroup string        `json:"subgroup,omitempty"`
	Priority int           `json:"priority"`
	Label    string        `json:"label"`
	Icon     string        `json:"icon,omitempty"`
}

// LoreTag is a narrative classification label attachable to recipes.
type LoreTag struct {
	ID    string `json:"id"`
	Group string `json:"group,omitempty"`
	Label string `json:"label"`
	Price *Price `json:"price,omitempty"`
}

// Price is optional coin metadata on a lore tag.
type Price struct {
	Gold   int `json:"gm,omitempty"`
	Silver int `json:"sm,omitempty"`
	Copper int `json:"km,omitempty"`
}

// String renders the non-zero denominations as "2 GM, 5 SM". An all-zero
// price renders empty.
func (p Price) String() string {
	var parts []string
	if p.Gold > 0 {
		parts = append(parts, fmt.Sprintf("%d GM", p.Gold))
	}
	if p.Silver > 0 {
		parts = append(parts, fmt.Sprintf("%d SM", p.Silver))
	}
	if p.Copper > 0 {
		parts = append(parts, fmt.Sprintf("%d KM", p.Copper))
	}
	return strings.Join(parts, ", ")
}

// SeasonEntry maps a named period (a "season_*" id or a month id) to its
// calendar months.
type SeasonEntry struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Months []int  `json:"months"`
}

// NutrientDef declares a rankable nutrient: its label, unit, and the dotted
// path into a recipe's numeric fields that supplies its value.
type NutrientDef struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Unit   string `json:"unit,omitempty"`
	Source string `json:"source"`
}
