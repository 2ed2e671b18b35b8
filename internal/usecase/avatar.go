package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/gravatar"
	"github.com/totegamma/gravatar/internal/domain"
	"github.com/totegamma/gravatar/internal/utils"
)

var tracer = otel.Tracer("avatar")

// ErrEmptyPresetName is returned when saving a preset without a name.
var ErrEmptyPresetName = errors.New("preset name is empty")

type RenderInput struct {
	Email     string
	Preset    string
	Overrides map[string]any
}

type AvatarUsecase struct {
	presets PresetRepository
	checker gravatar.Checker
	baseURL string
}

func NewAvatarUsecase(presets PresetRepository, checker gravatar.Checker, baseURL string) *AvatarUsecase {
	return &AvatarUsecase{
		presets: presets,
		checker: checker,
		baseURL: baseURL,
	}
}

func (uc *AvatarUsecase) profileOptions() []gravatar.ProfileOption {
	return []gravatar.ProfileOption{
		gravatar.WithBaseURL(uc.baseURL),
		gravatar.WithChecker(uc.checker),
	}
}

// Render builds the avatar view for an address. Preset options are applied
// first, then the overrides.
func (uc *AvatarUsecase) Render(ctx context.Context, input RenderInput) (domain.Avatar, error) {
	ctx, span := tracer.Start(ctx, "Avatar.Usecase.Render")
	defer span.End()
	span.SetAttributes(attribute.String("preset", input.Preset))

	if !gravatar.IsValidEmail(input.Email) {
		return domain.Avatar{}, domain.ErrInvalidEmail
	}

	cfg := map[string]any{}
	if input.Preset != "" {
		preset, err := uc.presets.Get(ctx, input.Preset)
		if err != nil {
			span.RecordError(err)
			return domain.Avatar{}, err
		}
		cfg = preset.Options
	}

	p, err := gravatar.NewFromConfig(cfg, uc.profileOptions()...)
	if err != nil {
		span.RecordError(err)
		return domain.Avatar{}, err
	}
	if err := p.Apply(input.Overrides); err != nil {
		span.RecordError(err)
		return domain.Avatar{}, err
	}
	p.SetEmail(input.Email)

	return toAvatar(p), nil
}

// Exists reports whether the service has an avatar for email.
func (uc *AvatarUsecase) Exists(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Avatar.Usecase.Exists")
	defer span.End()

	if !gravatar.IsValidEmail(email) {
		return false, domain.ErrInvalidEmail
	}

	exists := gravatar.New(email, uc.profileOptions()...).Exists(ctx)
	span.SetAttributes(attribute.Bool("exists", exists))
	return exists, nil
}

func (uc *AvatarUsecase) GetPreset(ctx context.Context, name string) (domain.Preset, error) {
	ctx, span := tracer.Start(ctx, "Avatar.Usecase.GetPreset")
	defer span.End()

	return uc.presets.Get(ctx, name)
}

// SavePreset stores a preset after checking its options build a profile.
func (uc *AvatarUsecase) SavePreset(ctx context.Context, preset domain.Preset) error {
	ctx, span := tracer.Start(ctx, "Avatar.Usecase.SavePreset")
	defer span.End()

	if preset.Name == "" {
		return ErrEmptyPresetName
	}
	if preset.Options == nil {
		preset.Options = map[string]any{}
	}
	if _, err := gravatar.NewFromConfig(preset.Options); err != nil {
		span.RecordError(err)
		return err
	}
	return uc.presets.Upsert(ctx, preset)
}

func (uc *AvatarUsecase) DeletePreset(ctx context.Context, name string) error {
	ctx, span := tracer.Start(ctx, "Avatar.Usecase.DeletePreset")
	defer span.End()

	return uc.presets.Delete(ctx, name)
}

func toAvatar(p *gravatar.Profile) domain.Avatar {
	hash, _ := p.Hash()
	options := utils.OrderedKVMap[any]{}
	for i, opt := range p.Options() {
		options.Put(string(opt.Name), opt.Value, int64(i))
	}
	return domain.Avatar{
		Email:   p.Email(),
		Hash:    hash,
		URL:     p.URL(),
		HTML:    p.HTML(),
		Options: options,
	}
}
