package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleRawData []byte

// sampleCollections parses the embedded demo dataset. The YAML document is
// re-encoded as JSON so it flows through the same section decoding as an
// external dataset.
func sampleCollections() (*Collections, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(sampleRawData, &tree); err != nil {
		return nil, fmt.Errorf("sample dataset: parse yaml: %w", err)
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("sample dataset: re-encode: %w", err)
	}

	var c Collections
	if c.Recipes, err = section[json.RawMessage](data, KeyRecipes); err != nil {
		return nil, err
	}
	if c.Ingredients, err = section[rawIngredient](data, KeyIngredients); err != nil {
		return nil, err
	}
	if c.Properties, err = section[rawProperty](data, KeyProperties); err != nil {
		return nil, err
	}
	if c.Lore, err = section[rawLore](data, KeyLore); err != nil {
		return nil, err
	}
	if c.Seasons, err = section[rawSeason](data, KeySeasons); err != nil {
		return nil, err
	}
	if c.Nutrients, err = section[rawNutrient](data, KeyNutrients); err != nil {
		return nil, err
	}
	return &c, nil
}
