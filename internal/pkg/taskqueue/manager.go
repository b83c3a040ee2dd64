package taskqueue

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/env"
)

// Manager manages the global job queue
type Manager struct {
	queue *Queue
	mu    sync.Mutex
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global task queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := 5
		if raw := env.GetEnv("TASK_QUEUE_WORKERS", ""); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				workerCount = n
			}
		}

		globalManager = &Manager{
			queue: NewQueue(workerCount),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue workers
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.Info("[TaskQueue Manager] Starting job queue")
	m.queue.Start()
}

// Stop stops the job queue workers
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.Info("[TaskQueue Manager] Stopping job queue")
	m.queue.Stop()
}
