package entity

import "time"

// AdminUser 可使用后台接口的内容管理员
type AdminUser struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Username     string     `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Email        string     `gorm:"column:email;type:varchar(255)" json:"email"`
	IsActive     bool       `gorm:"column:is_active;not null" json:"is_active"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}

// UserSummary 返回给客户端的用户摘要
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type AuthResponse struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type AuthVerifyResponse struct {
	Valid bool         `json:"valid"`
	User  *UserSummary `json:"user,omitempty"`
}
