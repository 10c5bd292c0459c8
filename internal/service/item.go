package service

import (
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemService инкапсулирует бизнес-логику работы с Item.
type ItemService struct {
	repo   repo.ItemRepository
	logger *zap.SugaredLogger
}

func NewItemService(r repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ItemService{repo: r, logger: logger}
}

// ItemInput — данные для создания/обновления элемента.
// Favorite == nil означает «не передано».
type ItemInput struct {
	Type        model.ItemType
	Title       string
	Description string
	Content     string
	Tags        []string
	Category    string
	Stack       string
	Favorite    *bool
}

// Validate проверяет обязательные поля: type, title, content.
func (in ItemInput) Validate() error {
	if in.Type == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: type, title and content are required", ErrValidation)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, in.Type)
	}
	return nil
}

// apply переносит поля ввода в модель; пустые необязательные строки становятся NULL.
func (in ItemInput) apply(it *model.Item) {
	it.Type = in.Type
	it.Title = in.Title
	it.Description = optional(in.Description)
	it.Content = in.Content
	it.Tags = model.NormalizeTags(in.Tags)
	it.Category = optional(in.Category)
	it.Stack = optional(in.Stack)
	if in.Favorite != nil {
		it.Favorite = *in.Favorite
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// List возвращает элементы по фильтру. Пустая выборка — пустой срез.
func (s *ItemService) List(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	return s.repo.List(ctx, filter)
}

func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return it, nil
}

// Create сохраняет новый элемент с usageCount=0.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (*model.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	it := &model.Item{}
	in.apply(it)
	it.UsageCount = 0
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.logger.Infow("item created", "id", it.ID, "type", it.Type)
	return it, nil
}

// Update перезаписывает изменяемые поля. Если Favorite не передан, сохраняется прежнее значение.
// Существование проверяется до валидации.
func (s *ItemService) Update(ctx context.Context, id string, in ItemInput) (*model.Item, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.apply(existing)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.logger.Infow("item deleted", "id", id)
	return nil
}

// SetFavorite устанавливает favorite, а при nil переключает его.
func (s *ItemService) SetFavorite(ctx context.Context, id string, favorite *bool) (*model.Item, error) {
	it, err := s.repo.SetFavorite(ctx, id, favorite)
	if err != nil {
		return nil, notFound(err)
	}
	return it, nil
}

// RecordUse увеличивает счётчик использований на 1 и возвращает новое значение.
func (s *ItemService) RecordUse(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.IncrementUsage(ctx, id)
	if err != nil {
		return 0, notFound(err)
	}
	return n, nil
}

// FilterOptions — значения для выпадающих списков фильтра.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Stacks     []string `json:"stacks"`
}

func (s *ItemService) FilterOptions(ctx context.Context) (FilterOptions, error) {
	cats, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	stacks, err := s.repo.DistinctStacks(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return FilterOptions{Categories: cats, Stacks: stacks}, nil
}

func (s *ItemService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.repo.Stats(ctx)
}

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return err
}
