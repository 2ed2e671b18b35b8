package usecase

import (
	"context"

	"github.com/totegamma/gravatar/internal/domain"
)

// PresetRepository defines storage operations for presets.
type PresetRepository interface {
	Get(ctx context.Context, name string) (domain.Preset, error)
	Upsert(ctx context.Context, preset domain.Preset) error
	Delete(ctx context.Context, name string) error
}
