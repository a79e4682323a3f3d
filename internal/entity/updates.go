package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AdminUserUpdates 管理员更新字段
type AdminUserUpdates struct {
	LastLogin *time.Time
	IsActive  *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u AdminUserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.LastLogin != nil {
		updates["last_login"] = *u.LastLogin
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u AdminUserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// CandidateUpdates 候选人更新字段，nil 表示未提交
type CandidateUpdates struct {
	Name        *string
	Position    *string
	BioDE       *string
	BioEN       *string
	GoalsDE     *string
	GoalsEN     *string
	Email       *string
	SocialLinks *datatypes.JSONMap
	PhotoURL    *string
	IsActive    *bool
	Color       *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u CandidateUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Position != nil {
		updates["position"] = *u.Position
	}
	if u.BioDE != nil {
		updates["bio_de"] = *u.BioDE
	}
	if u.BioEN != nil {
		updates["bio_en"] = *u.BioEN
	}
	if u.GoalsDE != nil {
		updates["goals_de"] = *u.GoalsDE
	}
	if u.GoalsEN != nil {
		updates["goals_en"] = *u.GoalsEN
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.SocialLinks != nil {
		updates["social_links"] = *u.SocialLinks
	}
	if u.PhotoURL != nil {
		updates["photo_url"] = *u.PhotoURL
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.Color != nil {
		updates["color"] = *u.Color
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u CandidateUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TopicUpdates 政策与基础话题共用的更新字段
type TopicUpdates struct {
	TitleDE       *string
	TitleEN       *string
	DescriptionDE *string
	DescriptionEN *string
	Color         *string
	IsActive      *bool
	DisplayOrder  *int
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u TopicUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.TitleDE != nil {
		updates["title_de"] = *u.TitleDE
	}
	if u.TitleEN != nil {
		updates["title_en"] = *u.TitleEN
	}
	if u.DescriptionDE != nil {
		updates["description_de"] = *u.DescriptionDE
	}
	if u.DescriptionEN != nil {
		updates["description_en"] = *u.DescriptionEN
	}
	if u.Color != nil {
		updates["color"] = *u.Color
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.DisplayOrder != nil {
		updates["display_order"] = *u.DisplayOrder
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u TopicUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// FAQUpdates 常见问题更新字段
type FAQUpdates struct {
	QuestionDE   *string
	QuestionEN   *string
	AnswerDE     *string
	AnswerEN     *string
	IsActive     *bool
	DisplayOrder *int
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u FAQUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.QuestionDE != nil {
		updates["question_de"] = *u.QuestionDE
	}
	if u.QuestionEN != nil {
		updates["question_en"] = *u.QuestionEN
	}
	if u.AnswerDE != nil {
		updates["answer_de"] = *u.AnswerDE
	}
	if u.AnswerEN != nil {
		updates["answer_en"] = *u.AnswerEN
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.DisplayOrder != nil {
		updates["display_order"] = *u.DisplayOrder
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u FAQUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// EventUpdates 活动更新字段
type EventUpdates struct {
	TitleDE       *string
	TitleEN       *string
	EventDate     *datatypes.Date
	EventTime     *datatypes.Time
	LocationDE    *string
	LocationEN    *string
	DescriptionDE *string
	DescriptionEN *string
	IsActive      *bool
	DisplayOrder  *int
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u EventUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.TitleDE != nil {
		updates["title_de"] = *u.TitleDE
	}
	if u.TitleEN != nil {
		updates["title_en"] = *u.TitleEN
	}
	if u.EventDate != nil {
		updates["event_date"] = *u.EventDate
	}
	if u.EventTime != nil {
		updates["event_time"] = *u.EventTime
	}
	if u.LocationDE != nil {
		updates["location_de"] = *u.LocationDE
	}
	if u.LocationEN != nil {
		updates["location_en"] = *u.LocationEN
	}
	if u.DescriptionDE != nil {
		updates["description_de"] = *u.DescriptionDE
	}
	if u.DescriptionEN != nil {
		updates["description_en"] = *u.DescriptionEN
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.DisplayOrder != nil {
		updates["display_order"] = *u.DisplayOrder
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u EventUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
