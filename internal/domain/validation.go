package domain

import (
	"errors"
	"regexp"
	"strings"
)

// 验证相关的错误定义
var (
	ErrPasswordTooShort = errors.New("password too short (min 8 chars)")
	ErrPasswordTooLong  = errors.New("password too long (max 72 chars)")
	ErrUsernameTooShort = errors.New("username too short (min 3 chars)")
	ErrUsernameTooLong  = errors.New("username too long (max 32 chars)")
	ErrInvalidUsername  = errors.New("invalid username format")
	ErrEmptyCommentBody = errors.New("comment body must not be empty")
	ErrCommentTooLong   = errors.New("comment body too long (max 10000 chars)")
)

// 验证常量
const (
	// 密码长度限制（上限对齐 bcrypt 的 72 字节输入限制）
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// 用户名长度限制
	MinUsernameLength = 3
	MaxUsernameLength = 32

	// 评论长度限制
	MaxCommentLength = 10000
)

// usernameRegex 用户名必须以字母开头
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]*[a-zA-Z0-9]$|^[a-zA-Z]$`)

// ValidateUsername 验证用户名
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}

	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}

	return nil
}

// ValidatePassword 验证密码长度
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}

// ValidateCommentBody 验证评论内容，空白内容视为空
func ValidateCommentBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyCommentBody
	}
	if len(body) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
