package httptransport

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailarchive/backend/internal/service"
)

// UserHandler 处理用户管理的 HTTP 请求（仅管理员）
type UserHandler struct {
	users *service.UserService
	log   *zap.Logger
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(users *service.UserService, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{
		users: users,
		log:   log,
	}
}

// List 列出全部用户
// @Summary 列出用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{users=[]userResponse} "用户列表"
// @Failure 403 {object} Response "权限不足"
// @Router /v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		InternalError(c, MsgUserListFailed)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}

	Success(c, gin.H{"users": resp})
}
