package repository

import (
	"context"
	"sync"
	"time"

	"github.com/totegamma/gravatar/internal/domain"
	"github.com/totegamma/gravatar/internal/usecase"
)

// MemoryPresetRepository keeps presets in process. It backs the service
// when no database is configured and is seeded from the config file.
type MemoryPresetRepository struct {
	mu      sync.RWMutex
	presets map[string]domain.Preset
}

func NewMemoryPresetRepository(seed map[string]map[string]any) *MemoryPresetRepository {
	now := time.Now()
	presets := make(map[string]domain.Preset, len(seed))
	for name, options := range seed {
		presets[name] = domain.Preset{
			Name:    name,
			Options: copyOptions(options),
			CDate:   now,
			MDate:   now,
		}
	}
	return &MemoryPresetRepository{presets: presets}
}

func (r *MemoryPresetRepository) Get(ctx context.Context, name string) (domain.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	preset, ok := r.presets[name]
	if !ok {
		return domain.Preset{}, domain.NotFoundError{Resource: "preset " + name}
	}
	preset.Options = copyOptions(preset.Options)
	return preset, nil
}

func (r *MemoryPresetRepository) Upsert(ctx context.Context, preset domain.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	preset.Options = copyOptions(preset.Options)
	preset.MDate = now
	if existing, ok := r.presets[preset.Name]; ok {
		preset.CDate = existing.CDate
	} else {
		preset.CDate = now
	}
	r.presets[preset.Name] = preset
	return nil
}

func (r *MemoryPresetRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.presets[name]; !ok {
		return domain.NotFoundError{Resource: "preset " + name}
	}
	delete(r.presets, name)
	return nil
}

func copyOptions(options map[string]any) map[string]any {
	c := make(map[string]any, len(options))
	for k, v := range options {
		c[k] = v
	}
	return c
}

var _ usecase.PresetRepository = (*MemoryPresetRepository)(nil)
