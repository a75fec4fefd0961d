package httptransport

import (
	"mailarchive/backend/internal/auth"
	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/service"
	"mailarchive/backend/internal/storage"
)

// 错误消息映射表（业务错误 -> 中文消息）
var errorMessages = map[error]string{
	// 认证错误
	auth.ErrInvalidUsername:    "用户名格式无效",
	auth.ErrUsernameExists:     "用户名已存在",
	auth.ErrUserNotFound:       "用户不存在",
	auth.ErrInvalidCredentials: "用户名或密码错误",
	auth.ErrUserInactive:       "账户已被禁用",

	// 校验错误
	domain.ErrPasswordTooShort: "密码长度不足8位",
	domain.ErrPasswordTooLong:  "密码长度超过72位",
	domain.ErrUsernameTooShort: "用户名长度不足3位",
	domain.ErrUsernameTooLong:  "用户名长度超过32位",
	domain.ErrEmptyCommentBody: "评论内容不能为空",
	domain.ErrCommentTooLong:   "评论内容过长",

	// 存储错误
	storage.ErrEmailNotFound:   "邮件不存在",
	storage.ErrCommentNotFound: "评论不存在",
	storage.ErrUserNotFound:    "用户不存在",
	storage.ErrUsernameExists:  "用户名已存在",

	// 评论错误
	service.ErrParentNotFound: "回复的评论不存在",
	service.ErrParentMismatch: "不能回复其他邮件下的评论",
}

// GetErrorMessage 获取错误的中文消息
func GetErrorMessage(err error) string {
	if msg, ok := errorMessages[err]; ok {
		return msg
	}
	return err.Error()
}

// 通用错误消息
const (
	// 请求相关
	MsgInvalidRequest   = "请求参数格式错误"
	MsgInvalidJSON      = "JSON格式错误"
	MsgRequestBodyEmpty = "请求体不能为空"

	// 认证相关
	MsgAuthRequired       = "需要登录认证"
	MsgInvalidCredentials = "用户名或密码错误"
	MsgTokenExpired       = "登录已过期，请重新登录"
	MsgTokenInvalid       = "无效的访问令牌"
	MsgPermissionDenied   = "权限不足"

	// 邮件相关
	MsgEmailNotFound     = "邮件不存在"
	MsgEmailSearchFailed = "检索邮件失败"
	MsgEmailGetFailed    = "获取邮件详情失败"

	// 评论相关
	MsgCommentCreateFailed = "发表评论失败"
	MsgCommentListFailed   = "获取评论列表失败"

	// 活动日志相关
	MsgActivityListFailed = "获取活动记录失败"

	// 用户相关
	MsgUserListFailed = "获取用户列表失败"
	MsgUserNotFound   = "用户不存在"

	// 服务器错误
	MsgInternalError = "服务器内部错误，请稍后重试"
)
