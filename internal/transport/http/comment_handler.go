package httptransport

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/service"
	"mailarchive/backend/internal/storage"
)

// CommentHandler 处理邮件评论的 HTTP 请求
type CommentHandler struct {
	comments *service.CommentService
	emails   *service.EmailService
	activity *service.ActivityService
	log      *zap.Logger
}

// NewCommentHandler 创建评论处理器
func NewCommentHandler(comments *service.CommentService, emails *service.EmailService, activity *service.ActivityService, log *zap.Logger) *CommentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommentHandler{
		comments: comments,
		emails:   emails,
		activity: activity,
		log:      log,
	}
}

type addCommentRequest struct {
	Body     string `json:"body" binding:"required"`
	ParentID *int   `json:"parentId"`
}

// List 获取一封邮件的评论树
// @Summary 获取评论树
// @Description 顶层评论按时间倒序，回复按时间正序
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path string true "邮件标识"
// @Success 200 {object} object{comments=[]domain.CommentNode} "评论树"
// @Failure 404 {object} Response "邮件不存在"
// @Router /v1/emails/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	emailID := c.Param("id")

	// 邮件必须存在
	if _, err := h.emails.Get(emailID); err != nil {
		if err == storage.ErrEmailNotFound {
			NotFound(c, MsgEmailNotFound)
			return
		}
		h.log.Error("failed to check email", zap.Error(err))
		InternalError(c, MsgCommentListFailed)
		return
	}

	thread, err := h.comments.ListThread(emailID)
	if err != nil {
		h.log.Error("failed to list comments",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
		InternalError(c, MsgCommentListFailed)
		return
	}

	Success(c, gin.H{"comments": thread})
}

// Add 发表评论或回复
// @Summary 发表评论
// @Description 在邮件下发表评论，携带 parentId 时为对已有评论的回复
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "邮件标识"
// @Param request body addCommentRequest true "评论内容"
// @Success 201 {object} domain.Comment "发表成功"
// @Failure 400 {object} Response "内容为空或回复目标非法"
// @Failure 404 {object} Response "邮件不存在"
// @Router /v1/emails/{id}/comments [post]
func (h *CommentHandler) Add(c *gin.Context) {
	userID := c.GetString("userID")
	emailID := c.Param("id")

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	// 邮件必须存在
	if _, err := h.emails.Get(emailID); err != nil {
		if err == storage.ErrEmailNotFound {
			NotFound(c, MsgEmailNotFound)
			return
		}
		h.log.Error("failed to check email", zap.Error(err))
		InternalError(c, MsgCommentCreateFailed)
		return
	}

	comment, err := h.comments.Add(service.AddCommentInput{
		UserID:   userID,
		EmailID:  emailID,
		Body:     req.Body,
		ParentID: req.ParentID,
	})
	if err != nil {
		switch err {
		case domain.ErrEmptyCommentBody, domain.ErrCommentTooLong,
			service.ErrParentNotFound, service.ErrParentMismatch:
			BadRequest(c, GetErrorMessage(err))
		case storage.ErrEmailNotFound:
			NotFound(c, MsgEmailNotFound)
		default:
			h.log.Error("failed to add comment", zap.Error(err))
			InternalError(c, MsgCommentCreateFailed)
		}
		return
	}

	label := fmt.Sprintf("comment_email_%s", emailID)
	if comment.IsReply() {
		label = fmt.Sprintf("reply_comment_%d", *comment.ParentID)
	}
	h.activity.Log(userID, c.GetString("sessionToken"), label, map[string]interface{}{
		"email_id":   emailID,
		"comment_id": comment.ID,
	})

	Created(c, comment)
}
