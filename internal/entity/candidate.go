package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ColorPurple = "purple"
	ColorSilver = "silver"
	ColorTeal   = "teal"
)

// Colors 前端主题支持的强调色
var Colors = []string{ColorPurple, ColorSilver, ColorTeal}

// IsValidColor 判断 value 是否属于 Colors
func IsValidColor(value string) bool {
	for _, c := range Colors {
		if c == value {
			return true
		}
	}
	return false
}

// Candidate 候选人，带照片与德英双语介绍
type Candidate struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Name        string            `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Position    string            `gorm:"column:position;type:varchar(255);not null" json:"position"`
	BioDE       string            `gorm:"column:bio_de;type:text;not null" json:"bio_de"`
	BioEN       string            `gorm:"column:bio_en;type:text;not null" json:"bio_en"`
	GoalsDE     string            `gorm:"column:goals_de;type:text;not null" json:"goals_de"`
	GoalsEN     string            `gorm:"column:goals_en;type:text;not null" json:"goals_en"`
	Email       string            `gorm:"column:email;type:varchar(255)" json:"email"`
	SocialLinks datatypes.JSONMap `gorm:"column:social_links" json:"social_links"`
	PhotoURL    string            `gorm:"column:photo_url;type:varchar(500)" json:"photo_url"`
	IsActive    bool              `gorm:"column:is_active;not null;index" json:"is_active"`
	Color       string            `gorm:"column:color;type:varchar(20);not null" json:"color"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// CandidateStats 后台面板使用的候选人统计
type CandidateStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}
