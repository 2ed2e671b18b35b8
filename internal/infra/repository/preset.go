package repository

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/gravatar/internal/domain"
	"github.com/totegamma/gravatar/internal/infra/database/models"
	"github.com/totegamma/gravatar/internal/usecase"
)

type PresetRepository struct {
	db *gorm.DB
}

func NewPresetRepository(db *gorm.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

func (r *PresetRepository) Get(ctx context.Context, name string) (domain.Preset, error) {
	var preset models.Preset
	err := r.db.WithContext(ctx).Where("id = ?", name).Take(&preset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Preset{}, domain.NotFoundError{Resource: "preset " + name}
		}
		return domain.Preset{}, pkgerrors.Wrap(err, "failed to load preset")
	}

	options := map[string]any{}
	if err := json.Unmarshal([]byte(preset.Options), &options); err != nil {
		return domain.Preset{}, pkgerrors.Wrapf(err, "corrupted preset %s", name)
	}

	return domain.Preset{
		Name:    preset.ID,
		Options: options,
		CDate:   preset.CDate,
		MDate:   preset.MDate,
	}, nil
}

func (r *PresetRepository) Upsert(ctx context.Context, preset domain.Preset) error {
	serialized, err := json.Marshal(preset.Options)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize preset")
	}

	model := models.Preset{
		ID:      preset.Name,
		Options: string(serialized),
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"options", "m_date"}),
	}).Create(&model).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to save preset")
	}
	return nil
}

func (r *PresetRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("id = ?", name).Delete(&models.Preset{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete preset")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "preset " + name}
	}
	return nil
}

var _ usecase.PresetRepository = (*PresetRepository)(nil)
