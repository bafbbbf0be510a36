package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

// ConfigStore is the store surface the config service needs.
type ConfigStore interface {
	Read(ctx context.Context) *model.SiteConfig
	Update(ctx context.Context, partial map[string]interface{}) error
}

// UpdateResult reports the outcome of a config write to the admin form.
type UpdateResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ConfigService serves the shared site configuration through a
// process-wide cache. The cache holds the last successful read and is
// explicitly invalidated by the write path; in dev mode every call
// bypasses it so edits show up immediately.
type ConfigService struct {
	store   ConfigStore
	devMode bool

	mu          sync.RWMutex
	cached      *model.SiteConfig
	populatedAt time.Time
}

func NewConfigService(store ConfigStore, devMode bool) *ConfigService {
	return &ConfigService{store: store, devMode: devMode}
}

// Get returns the configuration, from cache when populated. It never
// returns nil: the store degrades to the bundled snapshot on failure.
func (s *ConfigService) Get(ctx context.Context) *model.SiteConfig {
	if s.devMode {
		return s.store.Read(ctx)
	}

	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached
	}

	cfg := s.store.Read(ctx)
	s.mu.Lock()
	s.cached = cfg
	s.populatedAt = time.Now()
	s.mu.Unlock()
	return cfg
}

// Update merge-writes the given fields and invalidates the cache so the
// next Get observes the write.
func (s *ConfigService) Update(ctx context.Context, partial map[string]interface{}) UpdateResult {
	if err := s.store.Update(ctx, partial); err != nil {
		log.Error().Err(err).Msg("config update failed")
		return UpdateResult{Success: false, Error: "No se pudo guardar la configuración"}
	}
	s.Invalidate()
	return UpdateResult{Success: true}
}

// Invalidate drops the cached configuration.
func (s *ConfigService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.populatedAt = time.Time{}
	s.mu.Unlock()
}

// PopulatedAt reports when the cache was last filled, zero when empty.
func (s *ConfigService) PopulatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populatedAt
}
