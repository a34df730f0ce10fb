package recipes

import (
	"context"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/larder/internal/catalog"
)

const defaultDebounce = 60 * time.Millisecond

// Module implements the recipe catalog and filter module.
type Module struct {
	cat    *catalog.Store
	engine *Engine
	eval   *Evaluator
	logger *zap.Logger
	config *viper.Viper

	debounce time.Duration
}

// New creates a recipes module backed by the given catalog.
func New(cat *catalog.Store) *Module {
	return &Module{cat: cat}
}

func (m *Module) Name() string    { return "recipes" }
func (m *Module) Version() string { return "0.1.0" }

func (m *Module) Init(config *viper.Viper, logger *zap.Logger) error {
	m.config = config
	m.logger = logger
	m.engine = NewEngine(m.cat)

	m.debounce = defaultDebounce
	if config != nil {
		if d := config.GetDuration("debounce"); d > 0 {
			m.debounce = d
		}
	}

	m.logger.Info("recipes module initialized",
		zap.Int("recipes", len(m.cat.Recipes)),
		zap.Duration("debounce", m.debounce))
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	m.eval = NewEvaluator(m.engine, m.debounce, m.logger)
	m.logger.Info("recipes module started")
	return nil
}

func (m *Module) Stop() error {
	if m.eval != nil {
		m.eval.Stop()
	}
	m.logger.Info("recipes module stopped")
	return nil
}
