package domain

import "time"

// 常用活动标签，Details 中携带上下文信息
const (
	ActivityLogin          = "login"
	ActivityLoginFailed    = "login_failed"
	ActivityLogout         = "logout"
	ActivityRegisterOK     = "register_success"
	ActivityRegisterFailed = "register_failed"
	ActivitySearch         = "api_search"
	ActivityView           = "api_activity_view"
	ActivityDenied         = "api_activity_denied"
)

// UserActivity 用户活动记录（只追加，不修改）
//
// Token 是登录时生成的会话令牌，用于把同一次会话内的
// 操作串联起来。Details 是 JSON 编码的附加信息。
type UserActivity struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Token     string    `json:"token" gorm:"type:varchar(36);index"`
	Activity  string    `json:"activity" gorm:"type:varchar(200);not null"`
	Details   string    `json:"details" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// TableName 指定表名
func (UserActivity) TableName() string {
	return "user_activities"
}
