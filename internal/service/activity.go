package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/monitoring"
	"mailarchive/backend/internal/pagination"
	"mailarchive/backend/internal/pool"
)

// ActivityService 用户活动日志服务
//
// 写入走协程池异步落库，请求路径不等待。队列满时丢弃
// 并计数，活动日志是审计辅助，不能拖垮在线请求。
type ActivityService struct {
	store   domain.Store
	pool    *pool.WorkerPool
	log     *zap.Logger
	metrics *monitoring.Metrics
}

// NewActivityService 创建活动日志服务
func NewActivityService(store domain.Store, workers *pool.WorkerPool, log *zap.Logger, metrics *monitoring.Metrics) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityService{
		store:   store,
		pool:    workers,
		log:     log,
		metrics: metrics,
	}
}

// Log 异步记录一条活动
//
// 参数:
//   - userID: 操作用户
//   - sessionToken: 本次会话令牌，可为空
//   - activity: 活动标签，如 domain.ActivityLogin
//   - details: 附加上下文，JSON 编码后存储
func (s *ActivityService) Log(userID, sessionToken, activity string, details map[string]interface{}) {
	record := &domain.UserActivity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     sessionToken,
		Activity:  activity,
		Timestamp: time.Now(),
	}

	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			record.Details = string(data)
		}
	}

	submitted := s.pool.TrySubmit(func() {
		if err := s.store.AppendActivity(record); err != nil {
			s.log.Error("failed to append activity",
				zap.String("activity", activity),
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return
		}
		if s.metrics != nil {
			s.metrics.RecordActivity()
		}
	})

	if !submitted {
		if s.metrics != nil {
			s.metrics.RecordActivityDropped()
		}
		s.log.Warn("activity queue full, record dropped",
			zap.String("activity", activity),
			zap.String("user_id", userID),
		)
	}
}

// ListActivitiesInput 活动检索输入
type ListActivitiesInput struct {
	UserID    string // 按用户筛选，空表示全部
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// List 检索活动记录
func (s *ActivityService) List(input ListActivitiesInput) (*domain.ActivitySearchResult, *pagination.Pagination, error) {
	criteria := domain.ActivitySearchCriteria{
		UserID:   input.UserID,
		Sort:     domain.NormalizeActivitySort(input.SortBy, input.SortOrder),
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	result, err := s.store.SearchActivities(criteria)
	if err != nil {
		return nil, nil, err
	}

	pg := pagination.New(result.Page, result.PageSize, result.Total)
	return result, &pg, nil
}
