package recipes_test

import (
	"testing"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/internal/recipes"
	"github.com/HerbHall/larder/internal/testutil"
	"github.com/HerbHall/larder/pkg/models"
)

// engineCatalog builds a small catalog with three recipes:
//
//	Frühlingssalat — ramson (in season Mar-May, vegan) and flour
//	Wintereintopf  — parsnip (Oct-Feb) and flour, celery allergen, festive lore
//	Apfelkuchen    — flour and egg, sweet, egg and gluten allergens
func engineCatalog() *catalog.Store {
	ingredients := []models.Ingredient{
		testutil.NewIngredient(
			testutil.WithIngredientID("ing_ramson"),
			testutil.WithName("Bärlauch"),
			testutil.WithIngredientProperties("prop_vegan"),
			testutil.WithSeasonMonths(3, 4, 5),
		),
		testutil.NewIngredient(
			testutil.WithIngredientID("ing_parsnip"),
			testutil.WithName("Pastinake"),
			testutil.WithSeasonMonths(10, 11, 12, 1, 2),
		),
		testutil.NewIngredient(
			testutil.WithIngredientID("ing_flour"),
			testutil.WithName("Mehl"),
		),
		testutil.NewIngredient(
			testutil.WithIngredientID("ing_egg"),
			testutil.WithName("Ei"),
			testutil.WithIngredientProperties("prop_enthaelt_ei"),
		),
	}

	rcpSpring := testutil.NewRecipe(
		testutil.WithID("rcp_spring"),
		testutil.WithTitle("Frühlingssalat"),
		testutil.WithProperties("prop_vegetarisch"),
		testutil.WithIngredientList("Salat",
			testutil.Item("ing_ramson", "100", "g"),
			testutil.Item("ing_flour", "50", "g"),
		),
		testutil.WithNumbers(map[string]float64{"nutrition.protein_g": 0.8}),
	)
	rcpWinter := testutil.NewRecipe(
		testutil.WithID("rcp_winter"),
		testutil.WithTitle("Wintereintopf"),
		testutil.WithAllergens("alg_sellerie"),
		testutil.WithLore("lore_festive"),
		testutil.WithIngredientList("Eintopf",
			testutil.Item("ing_parsnip", "300", "g"),
			testutil.Item("ing_flour", "20", "g"),
		),
		testutil.WithNumbers(map[string]float64{"nutrition.protein_g": 0.3}),
	)
	rcpCake := testutil.NewRecipe(
		testutil.WithID("rcp_cake"),
		testutil.WithTitle("Apfelkuchen"),
		testutil.WithProperties("prop_suess"),
		testutil.WithAllergens("alg_ei", "alg_gluten"),
		testutil.WithIngredientList("Teig",
			testutil.Item("ing_flour", "250", "g"),
			testutil.Item("ing_egg", "2", ""),
		),
		testutil.WithNumbers(map[string]float64{"nutrition.protein_g": 0.5}),
	)

	properties := []models.PropertyTag{
		{ID: "prop_vegan", Group: models.GroupNutrition, Priority: 1, Label: "Vegan"},
		{ID: "prop_vegetarisch", Group: models.GroupNutrition, Priority: 2, Label: "Vegetarisch"},
		{ID: "prop_enthaelt_ei", Group: models.GroupAllergenContains, Priority: models.PriorityUnset, Label: "Enthält Ei"},
		{ID: "prop_enthaelt_sellerie", Group: models.GroupAllergenContains, Priority: models.PriorityUnset, Label: "Enthält Sellerie"},
		{ID: "prop_suess", Group: models.GroupDishType, Priority: 10, Label: "Süssspeise"},
	}
	lore := []models.LoreTag{
		{ID: "lore_festive", Label: "Festtagsgericht"},
	}
	nutrients := []models.NutrientDef{
		{ID: "nut_protein", Label: "Protein", Unit: "g", Source: "nutrition.protein_g"},
	}

	return catalog.NewStore(
		[]models.Recipe{rcpSpring, rcpWinter, rcpCake},
		ingredients, properties, lore, nil, nutrients,
	)
}

func ids(recs []models.Recipe) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Recipe, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestEvaluateEmptyCriteriaSortsByTitle(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{})
	assertIDs(t, got, "rcp_cake", "rcp_spring", "rcp_winter")
}

func TestEvaluateExclusionViaIngredientProperty(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{
		ExcludedProperties: []string{"prop_vegan"},
	})
	// Frühlingssalat carries vegan only through its ramson ingredient.
	assertIDs(t, got, "rcp_cake", "rcp_winter")
}

func TestEvaluateExclusionViaAllergenExpansion(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{
		ExcludedProperties: []string{"prop_enthaelt_sellerie"},
	})
	// Wintereintopf declares alg_sellerie, which expands to the
	// contains-property.
	assertIDs(t, got, "rcp_cake", "rcp_spring")
}

func TestEvaluateRequiredAcrossSources(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())

	// Satisfied through an ingredient's property.
	got := eng.Evaluate(recipes.FilterCriteria{
		RequiredProperties: []string{"prop_vegan"},
	})
	assertIDs(t, got, "rcp_spring")

	// Satisfied through allergen expansion.
	got = eng.Evaluate(recipes.FilterCriteria{
		RequiredProperties: []string{"prop_enthaelt_sellerie"},
	})
	assertIDs(t, got, "rcp_winter")

	// All required ids must hold.
	got = eng.Evaluate(recipes.FilterCriteria{
		RequiredProperties: []string{"prop_vegan", "prop_suess"},
	})
	assertIDs(t, got)
}

func TestEvaluateExclusionBeatsRequirement(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{
		RequiredProperties: []string{"prop_suess"},
		ExcludedProperties: []string{"prop_suess"},
	})
	assertIDs(t, got)
}

func TestEvaluateRequiredLore(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())

	got := eng.Evaluate(recipes.FilterCriteria{
		RequiredLore: []string{"lore_festive"},
	})
	assertIDs(t, got, "rcp_winter")

	got = eng.Evaluate(recipes.FilterCriteria{
		RequiredLore: []string{"lore_festive", "lore_unknown"},
	})
	assertIDs(t, got)
}

func TestEvaluateIngredientConstraints(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())

	got := eng.Evaluate(recipes.FilterCriteria{
		MustContain: []string{"ing_flour", "ing_egg"},
	})
	assertIDs(t, got, "rcp_cake")

	got = eng.Evaluate(recipes.FilterCriteria{
		MustNotContain: []string{"ing_egg"},
	})
	assertIDs(t, got, "rcp_spring", "rcp_winter")
}

func TestEvaluateContradictoryIngredientConstraints(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{
		MustContain:    []string{"ing_flour"},
		MustNotContain: []string{"ing_flour"},
	})
	assertIDs(t, got)
}

func TestEvaluateSeasonIntersectsEveryIngredient(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())

	// Summer: ramson (Mar-May) and parsnip (Oct-Feb) both disqualify.
	// Apfelkuchen's ingredients carry no season data and always pass.
	got := eng.Evaluate(recipes.FilterCriteria{
		SeasonMonths: []int{6, 7, 8},
	})
	assertIDs(t, got, "rcp_cake")

	// Spring months.
	got = eng.Evaluate(recipes.FilterCriteria{
		SeasonMonths: []int{3, 4, 5},
	})
	assertIDs(t, got, "rcp_cake", "rcp_spring")
}

func TestEvaluateSeasonMismatchVetoesOtherMatches(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())

	// Frühlingssalat matches the query, but ramson (Mar-May) is out of
	// season in winter.
	got := eng.Evaluate(recipes.FilterCriteria{
		Query:        "bärlauch",
		SeasonMonths: []int{12, 1, 2},
	})
	assertIDs(t, got)

	// Wintereintopf carries the lore tag, but parsnip (Oct-Feb) is out of
	// season in summer.
	got = eng.Evaluate(recipes.FilterCriteria{
		RequiredLore: []string{"lore_festive"},
		SeasonMonths: []int{6, 7, 8},
	})
	assertIDs(t, got)
}

func TestEvaluateQuery(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())

	// Matches an ingredient name, case-insensitively.
	got := eng.Evaluate(recipes.FilterCriteria{Query: "bärlauch"})
	assertIDs(t, got, "rcp_spring")

	// Matches the recipe's own property label.
	got = eng.Evaluate(recipes.FilterCriteria{Query: "vegetarisch"})
	assertIDs(t, got, "rcp_spring")

	// Matches a lore label.
	got = eng.Evaluate(recipes.FilterCriteria{Query: "festtag"})
	assertIDs(t, got, "rcp_winter")

	// Matches a title substring.
	got = eng.Evaluate(recipes.FilterCriteria{Query: "APFEL"})
	assertIDs(t, got, "rcp_cake")

	got = eng.Evaluate(recipes.FilterCriteria{Query: "no such dish"})
	assertIDs(t, got)
}

func TestEvaluateRankByNutrient(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{
		RankNutrients: []string{"nut_protein"},
	})
	// Protein 0.8, 0.5, 0.3 descending.
	assertIDs(t, got, "rcp_spring", "rcp_cake", "rcp_winter")
}

func TestEvaluateRankUnknownNutrientFallsBackToTitle(t *testing.T) {
	eng := recipes.NewEngine(engineCatalog())
	got := eng.Evaluate(recipes.FilterCriteria{
		RankNutrients: []string{"nut_missing"},
	})
	assertIDs(t, got, "rcp_cake", "rcp_spring", "rcp_winter")
}

func TestEvaluateRankNormalizesPerNutrient(t *testing.T) {
	// One recipe dominates protein, the other dominates kcal with much
	// larger raw values. Normalizing by the per-nutrient maximum keeps the
	// weights equal, so the protein-heavy recipe wins; a raw sum would not.
	recA := testutil.NewRecipe(
		testutil.WithID("rcp_a"), testutil.WithTitle("A"),
		testutil.WithNumbers(map[string]float64{"nutrition.protein_g": 10, "nutrition.kcal": 400}),
	)
	recB := testutil.NewRecipe(
		testutil.WithID("rcp_b"), testutil.WithTitle("B"),
		testutil.WithNumbers(map[string]float64{"nutrition.protein_g": 1, "nutrition.kcal": 500}),
	)
	nutrients := []models.NutrientDef{
		{ID: "nut_protein", Label: "Protein", Source: "nutrition.protein_g"},
		{ID: "nut_kcal", Label: "Kalorien", Source: "nutrition.kcal"},
	}
	cat := catalog.NewStore([]models.Recipe{recA, recB}, nil, nil, nil, nil, nutrients)

	got := recipes.NewEngine(cat).Evaluate(recipes.FilterCriteria{
		RankNutrients: []string{"nut_protein", "nut_kcal"},
	})
	// A scores 1.0 + 0.8 = 1.8, B scores 0.1 + 1.0 = 1.1.
	assertIDs(t, got, "rcp_a", "rcp_b")
}

func TestEvaluateRankIsDeterministicOnTies(t *testing.T) {
	recA := testutil.NewRecipe(
		testutil.WithID("rcp_a"), testutil.WithTitle("Zwiebelkuchen"),
		testutil.WithNumbers(map[string]float64{"nutrition.kcal": 100}),
	)
	recB := testutil.NewRecipe(
		testutil.WithID("rcp_b"), testutil.WithTitle("Apfelmus"),
		testutil.WithNumbers(map[string]float64{"nutrition.kcal": 100}),
	)
	nutrients := []models.NutrientDef{
		{ID: "nut_kcal", Label: "Kalorien", Source: "nutrition.kcal"},
	}
	cat := catalog.NewStore([]models.Recipe{recA, recB}, nil, nil, nil, nil, nutrients)
	eng := recipes.NewEngine(cat)

	criteria := recipes.FilterCriteria{RankNutrients: []string{"nut_kcal"}}
	first := ids(eng.Evaluate(criteria))
	for i := 0; i < 10; i++ {
		again := ids(eng.Evaluate(criteria))
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: order %v, want stable %v", i, again, first)
			}
		}
	}
}
