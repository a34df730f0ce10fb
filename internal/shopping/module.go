package shopping

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/internal/recipes"
	"github.com/HerbHall/larder/internal/store"
	"github.com/HerbHall/larder/pkg/models"
)

// ErrUnknownRecipe is returned when a contribution names a recipe the
// catalog does not carry.
var ErrUnknownRecipe = fmt.Errorf("shopping: unknown recipe")

// Module implements the persisted shopping list.
type Module struct {
	cat    *catalog.Store
	st     *store.SQLiteStore
	repo   *Repository
	logger *zap.Logger

	// mu serializes the load-mutate-save cycle within this process.
	// Across processes the persistence stays last-write-wins.
	mu sync.Mutex
}

// New creates a shopping module backed by the catalog and the shared store.
func New(cat *catalog.Store, st *store.SQLiteStore) *Module {
	return &Module{cat: cat, st: st}
}

func (m *Module) Name() string    { return "shopping" }
func (m *Module) Version() string { return "0.1.0" }

func (m *Module) Init(config *viper.Viper, logger *zap.Logger) error {
	m.logger = logger
	m.repo = NewRepository(m.st, logger)
	m.logger.Info("shopping module initialized")
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	if err := m.repo.Migrate(ctx); err != nil {
		return fmt.Errorf("shopping migrations: %w", err)
	}
	m.logger.Info("shopping module started")
	return nil
}

func (m *Module) Stop() error {
	m.logger.Info("shopping module stopped")
	return nil
}

// mutate runs one load-mutate-save cycle. The mutation sees the freshly
// loaded document and its result is persisted only when it returns nil.
func (m *Module) mutate(ctx context.Context, fn func(doc *Document) error) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := m.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AddRecipe contributes a recipe's numeric ingredient lines at the given
// portion count.
func (m *Module) AddRecipe(ctx context.Context, recipeID string, portions int) (*Document, error) {
	rec, ok := m.cat.Recipe(recipeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID)
	}
	items := recipes.ContributionItems(rec, portions, m.cat)
	return m.mutate(ctx, func(doc *Document) error {
		doc.Contribute(items)
		return nil
	})
}

// AddItems contributes pre-built items directly.
func (m *Module) AddItems(ctx context.Context, items []models.ShoppingItem) (*Document, error) {
	return m.mutate(ctx, func(doc *Document) error {
		doc.Contribute(items)
		return nil
	})
}

// SetChecked flips one entry's checked state.
func (m *Module) SetChecked(ctx context.Context, key string, checked bool) (*Document, error) {
	return m.mutate(ctx, func(doc *Document) error {
		return doc.SetChecked(key, checked)
	})
}

// CheckAll applies the checked state to every entry.
func (m *Module) CheckAll(ctx context.Context, checked bool) (*Document, error) {
	return m.mutate(ctx, func(doc *Document) error {
		doc.SetAllChecked(checked)
		return nil
	})
}

// Clear empties the list.
func (m *Module) Clear(ctx context.Context) error {
	_, err := m.mutate(ctx, func(doc *Document) error {
		doc.Clear()
		return nil
	})
	return err
}

// List loads the current document.
func (m *Module) List(ctx context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Load(ctx)
}

// Export renders the current list as plain text.
func (m *Module) Export(ctx context.Context) (string, error) {
	doc, err := m.List(ctx)
	if err != nil {
		return "", err
	}
	return ExportText(doc), nil
}
