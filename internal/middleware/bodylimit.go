package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultBodyLimit 全局请求体上限
	DefaultBodyLimit = 1 * 1024 * 1024 // 1MB

	// SmallBodyLimit 评论提交等普通 JSON 请求的上限
	SmallBodyLimit = 256 * 1024 // 256KB
)

// BodySizeLimit 限制请求体大小
//
// Content-Length 超限直接拒绝；对分块传输等无法预判长度的
// 请求，由 MaxBytesReader 在读取阶段截断。
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.Header("X-Max-Body-Size", strconv.FormatInt(maxBytes, 10))
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request body too large",
				"limit": maxBytes,
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
