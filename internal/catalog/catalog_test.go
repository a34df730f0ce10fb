package catalog_test

import (
	"reflect"
	"testing"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/internal/testutil"
	"github.com/HerbHall/larder/pkg/models"
)

func newStore() *catalog.Store {
	recipes := []models.Recipe{
		testutil.NewRecipe(testutil.WithID("rcp_bread"), testutil.WithTitle("Brot")),
	}
	ingredients := []models.Ingredient{
		testutil.NewIngredient(testutil.WithIngredientID("ing_flour"), testutil.WithName("Mehl")),
	}
	properties := []models.PropertyTag{
		{ID: "prop_vegan", Group: models.GroupNutrition, Priority: 1, Label: "Vegan"},
	}
	lore := []models.LoreTag{
		{ID: "lore_festive", Label: "Festtagsgericht"},
	}
	seasons := []models.SeasonEntry{
		{ID: "season_summer", Label: "Sommer", Months: []int{6, 7, 8}},
		{ID: "season_empty", Label: "Leer"},
	}
	nutrients := []models.NutrientDef{
		{ID: "nut_protein", Label: "Protein", Source: "nutrition.protein_g"},
	}
	return catalog.NewStore(recipes, ingredients, properties, lore, seasons, nutrients)
}

func TestStoreLookups(t *testing.T) {
	s := newStore()

	if r, ok := s.Recipe("rcp_bread"); !ok || r.Title != "Brot" {
		t.Errorf("Recipe(rcp_bread) = %+v, %v", r, ok)
	}
	if _, ok := s.Recipe("rcp_missing"); ok {
		t.Error("Recipe(rcp_missing) found")
	}
	if ing, ok := s.Ingredient("ing_flour"); !ok || ing.Name != "Mehl" {
		t.Errorf("Ingredient(ing_flour) = %+v, %v", ing, ok)
	}
	if p, ok := s.Property("prop_vegan"); !ok || p.Label != "Vegan" {
		t.Errorf("Property(prop_vegan) = %+v, %v", p, ok)
	}
	if l, ok := s.LoreTag("lore_festive"); !ok || l.Label != "Festtagsgericht" {
		t.Errorf("LoreTag(lore_festive) = %+v, %v", l, ok)
	}
	if n, ok := s.Nutrient("nut_protein"); !ok || n.Source != "nutrition.protein_g" {
		t.Errorf("Nutrient(nut_protein) = %+v, %v", n, ok)
	}
}

func TestStoreFallbackResolvers(t *testing.T) {
	s := newStore()

	if got := s.IngredientName("ing_flour"); got != "Mehl" {
		t.Errorf("IngredientName = %q, want Mehl", got)
	}
	// Unknown ids fall back to the raw id so display never goes blank.
	if got := s.IngredientName("ing_unknown"); got != "ing_unknown" {
		t.Errorf("IngredientName fallback = %q", got)
	}
	if got := s.PropertyLabel("prop_unknown"); got != "prop_unknown" {
		t.Errorf("PropertyLabel fallback = %q", got)
	}
	if got := s.LoreLabel("lore_unknown"); got != "lore_unknown" {
		t.Errorf("LoreLabel fallback = %q", got)
	}
}

func TestStoreSeasonMonths(t *testing.T) {
	s := newStore()

	if got := s.SeasonMonths("season_summer"); !reflect.DeepEqual(got, []int{6, 7, 8}) {
		t.Errorf("SeasonMonths(season_summer) = %v", got)
	}
	if got := s.SeasonMonths("season_empty"); got != nil {
		t.Errorf("SeasonMonths(season_empty) = %v, want nil", got)
	}
	if got := s.SeasonMonths("season_missing"); got != nil {
		t.Errorf("SeasonMonths(season_missing) = %v, want nil", got)
	}
}

func TestStoreDuplicateIDFirstWins(t *testing.T) {
	recipes := []models.Recipe{
		testutil.NewRecipe(testutil.WithID("rcp_dup"), testutil.WithTitle("Erstes")),
		testutil.NewRecipe(testutil.WithID("rcp_dup"), testutil.WithTitle("Zweites")),
	}
	s := catalog.NewStore(recipes, nil, nil, nil, nil, nil)

	r, ok := s.Recipe("rcp_dup")
	if !ok || r.Title != "Erstes" {
		t.Errorf("Recipe(rcp_dup) = %+v, want first entry", r)
	}
}
