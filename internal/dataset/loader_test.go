package dataset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HerbHall/larder/internal/testutil"
)

func writeDatasetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"recipes.json":     `{"recipes": [{"id": "rcp_bread", "title": "Brot", "base_portions": 4}]}`,
		"ingredients.json": `{"ingredients": [{"id": "ing_flour", "name": "Mehl"}]}`,
		"properties.json":  `{"properties": [{"id": "prop_vegan", "group": "nutrition", "label": "Vegan", "priority": 1}]}`,
		"lore.json":        `{"lore": [{"id": "lore_festive", "label": "Festtagsgericht"}]}`,
		"seasons.json":     `{"seasons": [{"id": "season_summer", "label": "Sommer", "months": [6, 7, 8]}]}`,
		"nutrients.json":   `{"nutrients": [{"id": "nut_protein", "label": "Protein", "source": "nutrition.protein_g"}]}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadFromDirectory(t *testing.T) {
	l := NewLoader(writeDatasetDir(t), time.Second, testutil.Logger())
	defer l.Close()

	c, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Recipes) != 1 || len(c.Ingredients) != 1 || len(c.Properties) != 1 ||
		len(c.Lore) != 1 || len(c.Seasons) != 1 || len(c.Nutrients) != 1 {
		t.Errorf("collection sizes: %d %d %d %d %d %d",
			len(c.Recipes), len(c.Ingredients), len(c.Properties),
			len(c.Lore), len(c.Seasons), len(c.Nutrients))
	}

	cat := Normalize(c)
	if _, ok := cat.Recipe("rcp_bread"); !ok {
		t.Error("rcp_bread missing after Normalize")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	dir := writeDatasetDir(t)
	if err := os.Remove(filepath.Join(dir, "lore.json")); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir, time.Second, testutil.Logger())
	defer l.Close()

	if _, err := l.Load(context.Background()); err == nil {
		t.Error("Load with missing document succeeded, want error")
	}
}

func TestSectionDecoding(t *testing.T) {
	// Missing key degrades to an empty collection.
	got, err := section[json.RawMessage]([]byte(`{"other": []}`), KeyRecipes)
	if err != nil || got != nil {
		t.Errorf("missing key: %v, %v", got, err)
	}

	// A non-array key degrades to an empty collection.
	got, err = section[json.RawMessage]([]byte(`{"recipes": {"oops": true}}`), KeyRecipes)
	if err != nil || got != nil {
		t.Errorf("non-array key: %v, %v", got, err)
	}

	// A document that is not valid JSON is fatal.
	if _, err = section[json.RawMessage]([]byte(`{broken`), KeyRecipes); err == nil {
		t.Error("invalid document accepted")
	}
}

func TestSampleCollections(t *testing.T) {
	c, err := sampleCollections()
	if err != nil {
		t.Fatalf("sampleCollections: %v", err)
	}
	if len(c.Recipes) == 0 || len(c.Ingredients) == 0 || len(c.Properties) == 0 ||
		len(c.Lore) == 0 || len(c.Seasons) == 0 || len(c.Nutrients) == 0 {
		t.Fatal("sample dataset has empty collections")
	}

	cat := Normalize(c)
	rec, ok := cat.Recipe("rcp_hearthstew")
	if !ok {
		t.Fatal("rcp_hearthstew missing from sample")
	}
	if rec.BasePortions != 4 {
		t.Errorf("BasePortions = %d, want 4", rec.BasePortions)
	}
	// Every ingredient line must resolve against the sample's ingredient
	// collection.
	for _, list := range rec.IngredientLists {
		for _, it := range list.Items {
			if it.IngredientID == "" {
				continue
			}
			if _, ok := cat.Ingredient(it.IngredientID); !ok {
				t.Errorf("unresolvable ingredient %q in sample", it.IngredientID)
			}
		}
	}
}

func TestLoadSampleSource(t *testing.T) {
	l := NewLoader(SourceSample, time.Second, testutil.Logger())
	defer l.Close()

	c, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if len(c.Recipes) == 0 {
		t.Error("sample source returned no recipes")
	}
}
