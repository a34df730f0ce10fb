package recipes_test

import (
	"testing"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/internal/recipes"
	"github.com/HerbHall/larder/internal/testutil"
	"github.com/HerbHall/larder/pkg/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{2.5, "2.5"},
		{2.504, "2.5"},
		{2.507, "2.51"},
		{0.6666666666, "0.67"},
		{0, "0"},
		{150, "150"},
	}
	for _, tt := range tests {
		if got := recipes.FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScaleQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		factor   float64
		want     string
	}{
		{"scale up", "2", 1.5, "3"},
		{"scale down", "0.75", 2.0 / 3.0, "0.5"},
		{"identity", "250", 1, "250"},
		{"empty stays empty", "", 2, ""},
		{"whitespace only stays verbatim", "   ", 2, "   "},
		{"freeform passes through", "nach Geschmack", 3, "nach Geschmack"},
		{"fraction text passes through", "1/2", 2, "1/2"},
		{"strips trailing zeros", "1", 2.5, "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recipes.ScaleQuantity(tt.quantity, tt.factor); got != tt.want {
				t.Errorf("ScaleQuantity(%q, %v) = %q, want %q", tt.quantity, tt.factor, got, tt.want)
			}
		})
	}
}

func TestScaleQuantityFactorOneIsIdentity(t *testing.T) {
	for _, q := range []string{"1", "2.5", "0.33", "100"} {
		if got := recipes.ScaleQuantity(q, 1); got != q {
			t.Errorf("ScaleQuantity(%q, 1) = %q, want unchanged", q, got)
		}
	}
}

func TestClampPortions(t *testing.T) {
	if got := recipes.ClampPortions(0); got != 1 {
		t.Errorf("ClampPortions(0) = %d, want 1", got)
	}
	if got := recipes.ClampPortions(-3); got != 1 {
		t.Errorf("ClampPortions(-3) = %d, want 1", got)
	}
	if got := recipes.ClampPortions(6); got != 6 {
		t.Errorf("ClampPortions(6) = %d, want 6", got)
	}
}

func TestPortionFactor(t *testing.T) {
	if got := recipes.PortionFactor(6, 4); got != 1.5 {
		t.Errorf("PortionFactor(6, 4) = %v, want 1.5", got)
	}
	// A recipe without base portions scales against 1.
	if got := recipes.PortionFactor(3, 0); got != 3 {
		t.Errorf("PortionFactor(3, 0) = %v, want 3", got)
	}
	if got := recipes.PortionFactor(0, 4); got != 0.25 {
		t.Errorf("PortionFactor(0, 4) = %v, want 0.25", got)
	}
}

func scalingCatalog() *catalog.Store {
	flour := testutil.NewIngredient(testutil.WithIngredientID("ing_flour"), testutil.WithName("Mehl"))
	salt := testutil.NewIngredient(testutil.WithIngredientID("ing_salt"), testutil.WithName("Salz"))
	return catalog.NewStore(nil, []models.Ingredient{flour, salt}, nil, nil, nil, nil)
}

func TestScaledLists(t *testing.T) {
	rec := testutil.NewRecipe(
		testutil.WithBasePortions(4),
		testutil.WithIngredientList("Teig",
			testutil.Item("ing_flour", "250", "g"),
			testutil.Item("ing_salt", "nach Geschmack", ""),
		),
	)

	lists := recipes.ScaledLists(rec, 6, scalingCatalog())
	if len(lists) != 1 {
		t.Fatalf("got %d lists, want 1", len(lists))
	}
	if lists[0].Title != "Teig" {
		t.Errorf("Title = %q, want %q", lists[0].Title, "Teig")
	}
	items := lists[0].Items
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Amount != "375" {
		t.Errorf("flour amount = %q, want %q", items[0].Amount, "375")
	}
	if items[0].Name != "Mehl" {
		t.Errorf("flour name = %q, want %q", items[0].Name, "Mehl")
	}
	if items[1].Amount != "nach Geschmack" {
		t.Errorf("salt amount = %q, want passthrough", items[1].Amount)
	}
}

func TestContributionItemsSkipsFreeform(t *testing.T) {
	rec := testutil.NewRecipe(
		testutil.WithBasePortions(4),
		testutil.WithIngredientList("Teig",
			testutil.Item("ing_flour", "100", "g"),
			testutil.Item("ing_salt", "nach Geschmack", ""),
			testutil.Item("", "50", "g"),
		),
	)

	items := recipes.ContributionItems(rec, 6, scalingCatalog())
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].IngredientID != "ing_flour" {
		t.Errorf("IngredientID = %q, want ing_flour", items[0].IngredientID)
	}
	if items[0].Amount != 150 {
		t.Errorf("Amount = %v, want 150", items[0].Amount)
	}
	if items[0].Unit != "g" {
		t.Errorf("Unit = %q, want g", items[0].Unit)
	}
}
