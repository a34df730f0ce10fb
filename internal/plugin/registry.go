package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Registry manages the lifecycle of all registered modules.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
	logger  *zap.Logger
}

// NewRegistry creates a new module registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		logger:  logger,
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("module %q already registered", name)
	}

	r.plugins[name] = p
	r.order = append(r.order, name)
	r.logger.Info("module registered", zap.String("name", name), zap.String("version", p.Version()))
	return nil
}

// InitAll initializes all registered modules with their configuration.
// Modules with `modules.<name>.enabled: false` are skipped.
func (r *Registry) InitAll(config *viper.Viper) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		p := r.plugins[name]

		moduleConfig := config.Sub("modules." + name)
		if moduleConfig == nil {
			moduleConfig = viper.New()
		}

		if config.IsSet("modules."+name+".enabled") && !config.GetBool("modules."+name+".enabled") {
			r.logger.Info("module disabled, skipping", zap.String("name", name))
			continue
		}

		r.logger.Info("initializing module", zap.String("name", name))
		if err := p.Init(moduleConfig, r.logger.Named(name)); err != nil {
			return fmt.Errorf("failed to initialize module %q: %w", name, err)
		}
	}
	return nil
}

// StartAll starts all initialized modules.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		p := r.plugins[name]
		r.logger.Info("starting module", zap.String("name", name))
		if err := p.Start(ctx); err != nil {
			return fmt.Errorf("failed to start module %q: %w", name, err)
		}
	}
	return nil
}

// StopAll stops all modules in reverse registration order.
func (r *Registry) StopAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.order) - 1; i >= 0; i-- {
		name := r.order[i]
		p := r.plugins[name]
		r.logger.Info("stopping module", zap.String("name", name))
		if err := p.Stop(); err != nil {
			r.logger.Error("failed to stop module", zap.String("name", name), zap.Error(err))
		}
	}
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// All returns all registered modules in registration order.
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.plugins[name])
	}
	return result
}

// AllRoutes returns all routes from all registered modules.
func (r *Registry) AllRoutes() map[string][]Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make(map[string][]Route)
	for _, name := range r.order {
		p := r.plugins[name]
		if pr := p.Routes(); len(pr) > 0 {
			routes[name] = pr
		}
	}
	return routes
}
