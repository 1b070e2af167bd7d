// Package registry provides in-memory lookup registries over the rule,
// model and regexp lists owned by the surrounding application's settings
// layer. The registries never mutate the lists; they only resolve ids.
package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/core"
)

// Registry indexes models and regexps by id for the matcher cascade.
type Registry struct {
	mu      sync.RWMutex
	models  map[string]*core.Model
	regexps map[string]*core.Regexp
	logger  *zap.Logger
}

// New creates a registry over the given model and regexp lists.
func New(models []*core.Model, regexps []*core.Regexp, logger *zap.Logger) *Registry {
	r := &Registry{
		models:  make(map[string]*core.Model, len(models)),
		regexps: make(map[string]*core.Regexp, len(regexps)),
		logger:  logger,
	}
	for _, m := range models {
		r.models[m.ID] = m
	}
	for _, re := range regexps {
		r.regexps[re.ID] = re
	}

	if logger != nil && (len(models) > 0 || len(regexps) > 0) {
		logger.Info("Initialized registry",
			zap.Int("models", len(models)),
			zap.Int("regexps", len(regexps)))
	}
	return r
}

// ModelByID looks up a model definition.
func (r *Registry) ModelByID(id string) (*core.Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[id]
	return m, ok
}

// RegexpByID looks up a regexp definition.
func (r *Registry) RegexpByID(id string) (*core.Regexp, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	re, ok := r.regexps[id]
	return re, ok
}

// PutModel inserts or replaces a model definition. Used when the settings
// layer pushes updates, e.g. after a model finishes training.
func (r *Registry) PutModel(m *core.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ID] = m
}

// PutRegexp inserts or replaces a regexp definition.
func (r *Registry) PutRegexp(re *core.Regexp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regexps[re.ID] = re
}
