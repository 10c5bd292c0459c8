package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemType — тип артефакта в арсенале.
type ItemType string

const (
	ItemTypePrompt    ItemType = "prompt"
	ItemTypeTemplate  ItemType = "template"
	ItemTypeSnippet   ItemType = "snippet"
	ItemTypeTool      ItemType = "tool"
	ItemTypeChecklist ItemType = "checklist"
)

// ItemTypes перечисляет допустимые типы в порядке отображения.
var ItemTypes = []ItemType{
	ItemTypePrompt,
	ItemTypeTemplate,
	ItemTypeSnippet,
	ItemTypeTool,
	ItemTypeChecklist,
}

// Valid сообщает, входит ли тип в перечисление.
func (t ItemType) Valid() bool {
	for _, v := range ItemTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Item — серверная модель элемента арсенала.
type Item struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	Type        ItemType `gorm:"not null;index" json:"type"`
	Title       string   `gorm:"not null" json:"title"`
	Description *string  `json:"description"`
	Content     string   `gorm:"not null" json:"content"`
	Tags        Tags     `gorm:"type:text;not null;default:'[]'" json:"tags"`
	Category    *string  `gorm:"index" json:"category"`
	Stack       *string  `gorm:"index" json:"stack"`

	Favorite   bool  `gorm:"not null;default:false" json:"favorite"`
	UsageCount int64 `gorm:"not null;default:0" json:"usageCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate выдаёт UUID, если идентификатор не задан.
func (it *Item) BeforeCreate(_ *gorm.DB) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Tags == nil {
		it.Tags = Tags{}
	}
	return nil
}

// ItemFilter — фильтры списка. Пустые поля не участвуют в выборке.
type ItemFilter struct {
	Search       string
	Type         ItemType
	Category     string
	Stack        string
	FavoriteOnly bool
}

// Stats — сводка для дашборда.
type Stats struct {
	Total         int64              `json:"total"`
	Favorites     int64              `json:"favorites"`
	ByType        map[ItemType]int64 `json:"byType"`
	RecentItems   []Item             `json:"recentItems"`
	FavoriteItems []Item             `json:"favoriteItems"`
	MostUsed      []Item             `json:"mostUsed"`
}
