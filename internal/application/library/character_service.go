package library

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novel-studio-api/internal/application/shared"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/tracer"
)

// CreateCharacterInput 创建角色参数
type CreateCharacterInput struct {
	NovelID       string
	Name          string
	Description   string
	Personality   string
	Background    string
	Relationships string
	Avatar        string
}

// Validate 校验创建参数
func (in CreateCharacterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.NovelID, shared.NotBlank("缺少 novelId 参数")),
		validation.Field(&in.Name, shared.NotBlank("角色名称不能为空")),
	)
}

// UpdateCharacterInput 更新角色参数，nil 表示不修改
type UpdateCharacterInput struct {
	Name          *string
	Description   *string
	Personality   *string
	Background    *string
	Relationships *string
	Avatar        *string
}

// Validate 校验更新参数
func (in UpdateCharacterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, shared.NotBlank("角色名称不能为空")),
	)
}

// CharacterService 角色业务服务
type CharacterService struct {
	tx         repository.Transactor
	novels     repository.NovelRepository
	characters repository.CharacterRepository
}

// NewCharacterService 创建角色服务
func NewCharacterService(tx repository.Transactor, novels repository.NovelRepository, characters repository.CharacterRepository) *CharacterService {
	return &CharacterService{tx: tx, novels: novels, characters: characters}
}

// List 按小说与关键字查询角色
func (s *CharacterService) List(ctx context.Context, filter repository.KeywordFilter) ([]*entity.Character, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Take = repository.CharacterTake.Clamp(filter.Take)
	characters, err := s.characters.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return characters, nil
}

// Create 创建角色
func (s *CharacterService) Create(ctx context.Context, in CreateCharacterInput) (*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "library.CharacterService.Create")
	defer span.End()

	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	character := entity.NewCharacter(in.NovelID, in.Name)
	character.Description = strings.TrimSpace(in.Description)
	character.Personality = strings.TrimSpace(in.Personality)
	character.Background = strings.TrimSpace(in.Background)
	character.Relationships = strings.TrimSpace(in.Relationships)
	character.Avatar = in.Avatar

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := lockNovel(txCtx, s.novels, in.NovelID); err != nil {
			return err
		}
		if err := s.characters.Create(txCtx, character); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	return character, nil
}

// Update 部分更新角色
func (s *CharacterService) Update(ctx context.Context, id string, in UpdateCharacterInput) (*entity.Character, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	character, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		character.Name = strings.TrimSpace(*in.Name)
	}
	assignTrimmed(&character.Description, in.Description)
	assignTrimmed(&character.Personality, in.Personality)
	assignTrimmed(&character.Background, in.Background)
	assignTrimmed(&character.Relationships, in.Relationships)
	if in.Avatar != nil {
		character.Avatar = *in.Avatar
	}

	if err := s.characters.Update(ctx, character); err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return character, nil
}

// Delete 删除角色
func (s *CharacterService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.characters.Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithError(err)
	}
	return nil
}

func (s *CharacterService) get(ctx context.Context, id string) (*entity.Character, error) {
	character, err := s.characters.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	if character == nil {
		return nil, apperrors.ErrCharacterNotFound
	}
	return character, nil
}

func assignTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
