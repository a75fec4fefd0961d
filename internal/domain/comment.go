package domain

import "time"

// Comment 邮件评论，ParentID 非空时表示对另一条评论的回复
type Comment struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	EmailID   string    `json:"emailId" gorm:"column:email_id;type:varchar(255);index;not null"`
	ParentID  *int      `json:"parentId,omitempty" gorm:"index"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// IsReply 判断是否为回复
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CommentNode 评论树节点，Replies 按时间正序排列
//
// 树由平铺的评论列表一次性索引构建，节点只持有子节点切片，
// 不回指父节点。
type CommentNode struct {
	Comment Comment       `json:"comment"`
	Author  string        `json:"author,omitempty"`
	Replies []CommentNode `json:"replies"`
}
