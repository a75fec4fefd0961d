package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/pool"
	"mailarchive/backend/internal/storage/memory"
)

func TestActivityService_Log(t *testing.T) {
	store := memory.NewStore()
	workers := pool.NewWorkerPool(2, 16)
	workers.Start(context.Background())

	service := NewActivityService(store, workers, zap.NewNop(), nil)

	service.Log("user-1", "session-1", domain.ActivityLogin, map[string]interface{}{
		"ip": "127.0.0.1",
	})
	service.Log("user-1", "session-1", domain.ActivitySearch, nil)

	// Stop 等待队列排空
	workers.Stop()

	result, err := store.SearchActivities(domain.ActivitySearchCriteria{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	for _, a := range result.Activities {
		assert.Equal(t, "user-1", a.UserID)
		assert.Equal(t, "session-1", a.Token)
		assert.NotEmpty(t, a.ID)
		assert.False(t, a.Timestamp.IsZero())
	}
}

func TestActivityService_Log_QueueFullDrops(t *testing.T) {
	store := memory.NewStore()
	// 不启动 worker，队列容量 1，第二条必然被丢弃
	workers := pool.NewWorkerPool(1, 1)

	service := NewActivityService(store, workers, zap.NewNop(), nil)

	service.Log("user-1", "", domain.ActivitySearch, nil)
	service.Log("user-1", "", domain.ActivitySearch, nil)

	result, err := store.SearchActivities(domain.ActivitySearchCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestActivityService_List(t *testing.T) {
	store := memory.NewStore()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, label := range []string{domain.ActivityLogin, domain.ActivitySearch, domain.ActivityLogout} {
		require.NoError(t, store.AppendActivity(&domain.UserActivity{
			ID:        label + "-id",
			UserID:    "user-1",
			Activity:  label,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.AppendActivity(&domain.UserActivity{
		ID:        "other-id",
		UserID:    "user-2",
		Activity:  domain.ActivityLogin,
		Timestamp: base,
	}))

	workers := pool.NewWorkerPool(1, 1)
	service := NewActivityService(store, workers, zap.NewNop(), nil)

	// 默认按时间倒序
	result, pg, err := service.List(ListActivitiesInput{})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, pg.Pages())
	assert.Equal(t, domain.ActivityLogout, result.Activities[0].Activity)

	// 按用户筛选
	result, _, err = service.List(ListActivitiesInput{UserID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}
