package repo

import (
	"MeuArsenal/internal/model"
	"context"

	"gorm.io/gorm"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
// Для отсутствующего id методы возвращают gorm.ErrRecordNotFound.
type ItemRepository interface {
	// List возвращает элементы по фильтру: favorite DESC, updated_at DESC.
	List(ctx context.Context, filter model.ItemFilter) ([]model.Item, error)
	GetByID(ctx context.Context, id string) (*model.Item, error)
	Create(ctx context.Context, it *model.Item) error
	// Update перезаписывает все изменяемые поля.
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id string) error
	// SetFavorite ставит значение, а при nil инвертирует текущее одним UPDATE.
	SetFavorite(ctx context.Context, id string, favorite *bool) (*model.Item, error)
	// IncrementUsage атомарно увеличивает usage_count на 1 и возвращает новое значение.
	IncrementUsage(ctx context.Context, id string) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctStacks(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) List(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Stack != "" {
		q = q.Where("stack = ?", f.Stack)
	}
	if f.FavoriteOnly {
		q = q.Where("favorite = ?", true)
	}
	if f.Search != "" {
		s := f.Search
		q = q.Where(r.db.
			Where(r.contains("title"), s).
			Or(r.contains("description"), s).
			Or(r.contains("content"), s).
			Or(r.contains("tags"), s))
	}

	items := []model.Item{}
	if err := q.Order("favorite DESC").Order("updated_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// contains — регистрозависимый поиск подстроки (LIKE в SQLite регистр игнорирует).
func (r *itemRepo) contains(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	updates := map[string]any{
		"type":        it.Type,
		"title":       it.Title,
		"description": it.Description,
		"content":     it.Content,
		"tags":        it.Tags,
		"category":    it.Category,
		"stack":       it.Stack,
		"favorite":    it.Favorite,
	}
	return r.update(ctx, it.ID, updates)
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Item{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) SetFavorite(ctx context.Context, id string, favorite *bool) (*model.Item, error) {
	var value any = gorm.Expr("NOT favorite")
	if favorite != nil {
		value = *favorite
	}
	if err := r.update(ctx, id, map[string]any{"favorite": value}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *itemRepo) IncrementUsage(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Item{}).
			Where("id = ?", id).
			Updates(map[string]any{"usage_count": gorm.Expr("usage_count + ?", 1)})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// строка заблокирована до конца транзакции — читаем своё значение
		return tx.Model(&model.Item{}).Select("usage_count").Where("id = ?", id).Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *itemRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *itemRepo) DistinctStacks(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "stack")
}

func (r *itemRepo) distinct(ctx context.Context, column string) ([]string, error) {
	out := []string{}
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Distinct().
		Order(column).
		Pluck(column, &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) Stats(ctx context.Context) (*model.Stats, error) {
	db := r.db.WithContext(ctx)
	st := &model.Stats{
		ByType:        make(map[model.ItemType]int64, len(model.ItemTypes)),
		RecentItems:   []model.Item{},
		FavoriteItems: []model.Item{},
		MostUsed:      []model.Item{},
	}

	if err := db.Model(&model.Item{}).Count(&st.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Item{}).Where("favorite = ?", true).Count(&st.Favorites).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Type  model.ItemType
		Count int64
	}
	if err := db.Model(&model.Item{}).Select("type, count(*) AS count").Group("type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, t := range model.ItemTypes {
		st.ByType[t] = 0
	}
	for _, row := range rows {
		st.ByType[row.Type] = row.Count
	}

	if err := db.Order("created_at DESC").Limit(6).Find(&st.RecentItems).Error; err != nil {
		return nil, err
	}
	if err := db.Where("favorite = ?", true).Order("updated_at DESC").Limit(4).Find(&st.FavoriteItems).Error; err != nil {
		return nil, err
	}
	if err := db.Where("usage_count > ?", 0).Order("usage_count DESC").Limit(4).Find(&st.MostUsed).Error; err != nil {
		return nil, err
	}
	return st, nil
}

// update применяет изменения к одной строке; updated_at gorm проставляет сам.
func (r *itemRepo) update(ctx context.Context, id string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
