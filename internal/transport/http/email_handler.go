package httptransport

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/pagination"
	"mailarchive/backend/internal/service"
	"mailarchive/backend/internal/storage"
)

// EmailHandler 处理邮件检索与查看的 HTTP 请求
type EmailHandler struct {
	search   *service.SearchService
	emails   *service.EmailService
	activity *service.ActivityService
	log      *zap.Logger
}

// NewEmailHandler 创建邮件处理器
func NewEmailHandler(search *service.SearchService, emails *service.EmailService, activity *service.ActivityService, log *zap.Logger) *EmailHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmailHandler{
		search:   search,
		emails:   emails,
		activity: activity,
		log:      log,
	}
}

type searchResponse struct {
	Emails     []domain.Email  `json:"emails"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
	Pagination pagination.View `json:"pagination"`
}

// Search 检索邮件
// @Summary 检索邮件
// @Description 自由文本检索归档邮件，支持 "短语"、-排除词、发件人/类别/日期筛选
// @Tags 邮件
// @Produce json
// @Security BearerAuth
// @Param search_term query string false "自由文本查询"
// @Param sender query string false "发件人筛选"
// @Param email_type query string false "类别筛选"
// @Param start_date query string false "起始日期 2006-01-02"
// @Param end_date query string false "结束日期（含当天）"
// @Param date_filter query string false "快捷区间: yesterday/week/month/year"
// @Param has_references query bool false "仅保留带引用的邮件"
// @Param has_comments query bool false "仅保留有评论的邮件"
// @Param sort_by query string false "排序列"
// @Param sort_order query string false "asc/desc"
// @Param page query int false "页码"
// @Param per_page query int false "每页数量"
// @Success 200 {object} searchResponse "检索结果"
// @Failure 401 {object} Response "未认证"
// @Failure 500 {object} Response "服务器内部错误"
// @Router /v1/emails/search [get]
func (h *EmailHandler) Search(c *gin.Context) {
	userID := c.GetString("userID")

	input := service.SearchEmailsInput{
		Query:         c.Query("search_term"),
		Sender:        c.Query("sender"),
		EmailType:     c.Query("email_type"),
		StartDate:     c.Query("start_date"),
		EndDate:       c.Query("end_date"),
		DatePreset:    c.Query("date_filter"),
		HasReferences: c.Query("has_references") == "true",
		HasComments:   c.Query("has_comments") == "true",
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		Page:          queryInt(c, "page", 0),
		PageSize:      queryInt(c, "per_page", 0),
	}

	result, pg, err := h.search.SearchEmails(input)
	if err != nil {
		h.log.Error("failed to search emails", zap.Error(err))
		InternalError(c, MsgEmailSearchFailed)
		return
	}

	h.activity.Log(userID, c.GetString("sessionToken"), domain.ActivitySearch, map[string]interface{}{
		"search_term": input.Query,
		"sender":      input.Sender,
		"email_type":  input.EmailType,
		"page":        result.Page,
		"total":       result.Total,
	})

	Success(c, searchResponse{
		Emails:     result.Emails,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		Pagination: pg.View(),
	})
}

// ListTypes 列出归档中出现过的邮件类别
// @Summary 列出邮件类别
// @Tags 邮件
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{types=[]string} "类别列表"
// @Router /v1/emails/types [get]
func (h *EmailHandler) ListTypes(c *gin.Context) {
	types, err := h.search.ListEmailTypes()
	if err != nil {
		h.log.Error("failed to list email types", zap.Error(err))
		InternalError(c, MsgInternalError)
		return
	}

	Success(c, gin.H{"types": types})
}

// View 查看单封邮件
// @Summary 查看邮件详情
// @Description 返回正文（交叉引用已改写为链接）、被引用邮件与评论树
// @Tags 邮件
// @Produce json
// @Security BearerAuth
// @Param id path string true "邮件标识"
// @Success 200 {object} service.EmailView "邮件视图"
// @Failure 401 {object} Response "未认证"
// @Failure 404 {object} Response "邮件不存在"
// @Failure 500 {object} Response "服务器内部错误"
// @Router /v1/emails/{id} [get]
func (h *EmailHandler) View(c *gin.Context) {
	userID := c.GetString("userID")
	emailID := c.Param("id")

	view, err := h.emails.View(emailID)
	if err != nil {
		if err == storage.ErrEmailNotFound {
			NotFound(c, MsgEmailNotFound)
			return
		}
		h.log.Error("failed to view email",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
		InternalError(c, MsgEmailGetFailed)
		return
	}

	h.activity.Log(userID, c.GetString("sessionToken"), fmt.Sprintf("view_email_%s", emailID), nil)

	Success(c, view)
}

// queryInt 解析整数查询参数，缺失或非法时返回默认值
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
