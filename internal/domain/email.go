package domain

import "time"

// EmailType 邮件类别
type EmailType string

const (
	TypeWork      EmailType = "Work"
	TypePersonal  EmailType = "Personal"
	TypeSpam      EmailType = "Spam"
	TypePromotion EmailType = "Promotion"
)

// EmailTypes 所有已知的邮件类别
var EmailTypes = []EmailType{TypeWork, TypePersonal, TypeSpam, TypePromotion}

// Email 表示归档邮件的业务实体
//
// UniqueEmailID 是对外可见的标识，形如 "JohnSmith-24-1007"
// （发件人串-两位年份-序号），全库唯一，正文中出现的该格式
// 字符串会被解析为指向其他邮件的交叉引用。
type Email struct {
	UniqueEmailID string    `json:"uniqueEmailId" gorm:"primaryKey;column:unique_email_id;type:varchar(255)"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	SenderName    string    `json:"senderName" gorm:"type:varchar(255)"`
	SenderEmail   string    `json:"senderEmail" gorm:"type:varchar(255);index"`
	Title         string    `json:"title" gorm:"type:varchar(500)"`
	Body          string    `json:"body" gorm:"type:text"`
	EmailType     EmailType `json:"emailType" gorm:"type:varchar(50);index"`
	DateSent      time.Time `json:"dateSent" gorm:"index"`

	// References 是正文引用的冗余缓存（逗号分隔的 unique_email_id 列表），
	// 由导入工具写入，仅用于 has_references 筛选加速。
	// 正文才是权威来源：展示时总是重新扫描 Body。
	References string `json:"-" gorm:"column:refs;type:text"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName 指定表名
func (Email) TableName() string {
	return "emails"
}

// HasReferences 判断引用缓存是否非空
func (e *Email) HasReferences() bool {
	return len(e.References) > 0
}
