package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

// SourceSample selects the embedded demo dataset.
const SourceSample = "sample"

// Loader retrieves the six dataset collections from a directory, a base URL,
// or the embedded sample. All collections load concurrently and the caller
// waits for all of them before the first filter evaluation.
type Loader struct {
	source string
	client *resty.Client
	logger *zap.Logger
}

// NewLoader creates a loader for the given source. A source starting with
// http:// or https:// is fetched over HTTP, anything else is treated as a
// directory path (or the literal "sample").
func NewLoader(source string, timeout time.Duration, logger *zap.Logger) *Loader {
	l := &Loader{source: source, logger: logger}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		l.client = resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetHeader("Accept", "application/json")
	}
	return l
}

// Close releases the HTTP client, if any.
func (l *Loader) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// Load fetches and decodes all six collections. A fetch or document-level
// parse failure of any collection is fatal; a missing or non-array top-level
// key degrades to an empty collection.
func (l *Loader) Load(ctx context.Context) (*Collections, error) {
	if l.source == SourceSample {
		return sampleCollections()
	}

	var c Collections
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := l.fetch(ctx, "recipes.json")
		if err != nil {
			return err
		}
		c.Recipes, err = section[json.RawMessage](data, KeyRecipes)
		return err
	})
	g.Go(func() error {
		data, err := l.fetch(ctx, "ingredients.json")
		if err != nil {
			return err
		}
		c.Ingredients, err = section[rawIngredient](data, KeyIngredients)
		return err
	})
	g.Go(func() error {
		data, err := l.fetch(ctx, "properties.json")
		if err != nil {
			return err
		}
		c.Properties, err = section[rawProperty](data, KeyProperties)
		return err
	})
	g.Go(func() error {
		data, err := l.fetch(ctx, "lore.json")
		if err != nil {
			return err
		}
		c.Lore, err = section[rawLore](data, KeyLore)
		return err
	})
	g.Go(func() error {
		data, err := l.fetch(ctx, "seasons.json")
		if err != nil {
			return err
		}
		c.Seasons, err = section[rawSeason](data, KeySeasons)
		return err
	})
	g.Go(func() error {
		data, err := l.fetch(ctx, "nutrients.json")
		if err != nil {
			return err
		}
		c.Nutrients, err = section[rawNutrient](data, KeyNutrients)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("datasets loaded",
		zap.String("source", l.source),
		zap.Int("recipes", len(c.Recipes)),
		zap.Int("ingredients", len(c.Ingredients)),
		zap.Int("properties", len(c.Properties)),
		zap.Int("lore", len(c.Lore)),
		zap.Int("seasons", len(c.Seasons)),
		zap.Int("nutrients", len(c.Nutrients)),
	)
	return &c, nil
}

// fetch retrieves one dataset document.
func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	if l.client != nil {
		url := strings.TrimSuffix(l.source, "/") + "/" + name
		resp, err := l.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode())
		}
		return resp.Bytes(), nil
	}

	data, err := os.ReadFile(filepath.Join(l.source, name))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", name, err)
	}
	return data, nil
}

// section decodes the array under the document's top-level key. A document
// that is not valid JSON is an error; a missing or non-array key yields an
// empty collection.
func section[T any](data []byte, key string) ([]T, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset %q: %w", key, err)
	}
	raw, ok := doc[key]
	if !ok {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil
	}
	return out, nil
}
