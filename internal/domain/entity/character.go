package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Character 角色实体
type Character struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NovelID       string    `json:"novelId" gorm:"type:uuid;index;not null"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Personality   string    `json:"personality" gorm:"type:text"`
	Background    string    `json:"background" gorm:"type:text"`
	Relationships string    `json:"relationships" gorm:"type:text"`
	Avatar        string    `json:"avatar" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Character) TableName() string {
	return "characters"
}

// NewCharacter 创建角色
func NewCharacter(novelID, name string) *Character {
	now := time.Now()
	return &Character{
		ID:        uuid.New().String(),
		NovelID:   novelID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
