package httptransport

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/pagination"
	"mailarchive/backend/internal/service"
)

// ActivityHandler 处理活动日志检索的 HTTP 请求
type ActivityHandler struct {
	activity *service.ActivityService
	log      *zap.Logger
}

// NewActivityHandler 创建活动日志处理器
func NewActivityHandler(activity *service.ActivityService, log *zap.Logger) *ActivityHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityHandler{
		activity: activity,
		log:      log,
	}
}

type activityListResponse struct {
	Activities []domain.UserActivity `json:"activities"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
	Pagination pagination.View       `json:"pagination"`
}

// List 检索活动记录（仅管理员）
// @Summary 检索活动记录
// @Description 管理员查看全部用户的活动日志；非管理员的访问本身也会被记录
// @Tags 活动日志
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "按用户筛选"
// @Param sort_by query string false "排序列"
// @Param sort_order query string false "asc/desc"
// @Param page query int false "页码"
// @Param per_page query int false "每页数量"
// @Success 200 {object} activityListResponse "活动记录"
// @Failure 401 {object} Response "未认证"
// @Failure 403 {object} Response "权限不足"
// @Router /v1/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	userID := c.GetString("userID")
	sessionToken := c.GetString("sessionToken")

	// 权限检查放在处理器内，拒绝本身也要留痕
	if c.GetString("role") != string(domain.RoleAdmin) {
		h.activity.Log(userID, sessionToken, domain.ActivityDenied, map[string]interface{}{
			"ip": c.ClientIP(),
		})
		Forbidden(c, MsgPermissionDenied)
		return
	}

	result, pg, err := h.activity.List(service.ListActivitiesInput{
		UserID:    c.Query("user_id"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      queryInt(c, "page", 0),
		PageSize:  queryInt(c, "per_page", 0),
	})
	if err != nil {
		h.log.Error("failed to list activities", zap.Error(err))
		InternalError(c, MsgActivityListFailed)
		return
	}

	h.activity.Log(userID, sessionToken, domain.ActivityView, map[string]interface{}{
		"filter_user": c.Query("user_id"),
		"page":        result.Page,
	})

	Success(c, activityListResponse{
		Activities: result.Activities,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		Pagination: pg.View(),
	})
}
