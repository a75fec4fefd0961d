// Package pool 提供一个带固定队列的协程池，用于活动日志这类
// 不能阻塞请求路径的后台写入。
package pool

import (
	"context"
	"sync"
)

// WorkerPool 固定容量协程池
//
// 队列满时 TrySubmit 立即失败，由调用方决定丢弃或降级；
// Stop 关闭队列并等待剩余任务全部执行完毕。
type WorkerPool struct {
	maxWorkers int
	taskQueue  chan func()
	wg         sync.WaitGroup
}

// NewWorkerPool 创建协程池
//
// 参数:
//   - maxWorkers: 工作协程数
//   - queueSize: 待执行任务队列长度
func NewWorkerPool(maxWorkers, queueSize int) *WorkerPool {
	return &WorkerPool{
		maxWorkers: maxWorkers,
		taskQueue:  make(chan func(), queueSize),
	}
}

// Start 启动全部工作协程；ctx 取消时协程放弃剩余队列直接退出
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Submit 提交任务，队列满时阻塞
func (p *WorkerPool) Submit(task func()) {
	p.taskQueue <- task
}

// TrySubmit 提交任务，队列满时立即返回 false
func (p *WorkerPool) TrySubmit(task func()) bool {
	select {
	case p.taskQueue <- task:
		return true
	default:
		return false
	}
}

// Stop 关闭队列并等待已入队任务执行完毕
func (p *WorkerPool) Stop() {
	close(p.taskQueue)
	p.wg.Wait()
}

// QueueDepth 当前待执行任务数
func (p *WorkerPool) QueueDepth() int {
	return len(p.taskQueue)
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			runTask(task)
		}
	}
}

// runTask 执行单个任务，panic 不会击穿工作协程
func runTask(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}
