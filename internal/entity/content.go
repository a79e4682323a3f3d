package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DisplayOrdered 由按 display_order 手动排序的内容实现
type DisplayOrdered interface {
	SetDisplayOrder(order int)
}

// TopicFields 政策与基础话题共用的双语字段
type TopicFields struct {
	TitleDE       string `gorm:"column:title_de;type:varchar(255);not null" json:"title_de"`
	TitleEN       string `gorm:"column:title_en;type:varchar(255);not null" json:"title_en"`
	DescriptionDE string `gorm:"column:description_de;type:text;not null" json:"description_de"`
	DescriptionEN string `gorm:"column:description_en;type:text;not null" json:"description_en"`
	Color         string `gorm:"column:color;type:varchar(20);not null" json:"color"`
}

// Policy 竞选政策
type Policy struct {
	ID uint `gorm:"primarykey" json:"id"`
	TopicFields
	IsActive     bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Policy) TableName() string {
	return "policies"
}

func (p *Policy) SetDisplayOrder(order int) { p.DisplayOrder = order }

// BasicTopic 基础话题，结构与 Policy 相同
type BasicTopic struct {
	ID uint `gorm:"primarykey" json:"id"`
	TopicFields
	IsActive     bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BasicTopic) TableName() string {
	return "basic_topics"
}

func (b *BasicTopic) SetDisplayOrder(order int) { b.DisplayOrder = order }

// FAQ 双语问答
type FAQ struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	QuestionDE   string    `gorm:"column:question_de;type:text;not null" json:"question_de"`
	QuestionEN   string    `gorm:"column:question_en;type:text;not null" json:"question_en"`
	AnswerDE     string    `gorm:"column:answer_de;type:text;not null" json:"answer_de"`
	AnswerEN     string    `gorm:"column:answer_en;type:text;not null" json:"answer_en"`
	IsActive     bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (FAQ) TableName() string {
	return "faqs"
}

func (f *FAQ) SetDisplayOrder(order int) { f.DisplayOrder = order }

// Event 竞选活动日程
type Event struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TitleDE       string         `gorm:"column:title_de;type:varchar(255);not null" json:"title_de"`
	TitleEN       string         `gorm:"column:title_en;type:varchar(255);not null" json:"title_en"`
	EventDate     datatypes.Date `gorm:"column:event_date;not null" json:"event_date"`
	EventTime     datatypes.Time `gorm:"column:event_time;not null" json:"event_time"`
	LocationDE    string         `gorm:"column:location_de;type:varchar(255);not null" json:"location_de"`
	LocationEN    string         `gorm:"column:location_en;type:varchar(255);not null" json:"location_en"`
	DescriptionDE string         `gorm:"column:description_de;type:text;not null" json:"description_de"`
	DescriptionEN string         `gorm:"column:description_en;type:text;not null" json:"description_en"`
	IsActive      bool           `gorm:"column:is_active;not null;index" json:"is_active"`
	DisplayOrder  int            `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) SetDisplayOrder(order int) { e.DisplayOrder = order }

// StatusResponse 删除与登出接口的响应
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
