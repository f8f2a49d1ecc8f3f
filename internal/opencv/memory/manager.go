package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"erosion-engine/internal/logger"
)

const defaultMaxMemory = 2 * 1024 * 1024 * 1024

var ErrBudgetExceeded = errors.New("memory limit exceeded")

type Manager struct {
	mu           sync.RWMutex
	logger       logger.Logger
	maxMemory    int64
	usedMemory   int64
	allocCount   int64
	deallocCount int64
	activeMats   map[uint64]*MatInfo
}

type MatInfo struct {
	ID        uint64
	Tag       string
	Size      int64
	Timestamp time.Time
}

type Stats struct {
	Allocations   int64
	Deallocations int64
	UsedBytes     int64
	ActiveMats    int
}

func NewManager(log logger.Logger) *Manager {
	return NewManagerWithLimit(log, defaultMaxMemory)
}

func NewManagerWithLimit(log logger.Logger, maxBytes int64) *Manager {
	return &Manager{
		logger:     log,
		maxMemory:  maxBytes,
		activeMats: make(map[uint64]*MatInfo),
	}
}

// Reserve reports whether size more bytes of Mat storage fit in the budget.
func (m *Manager) Reserve(size int64) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.usedMemory+size > m.maxMemory {
		return fmt.Errorf("%w: would use %d bytes, limit is %d", ErrBudgetExceeded, m.usedMemory+size, m.maxMemory)
	}
	return nil
}

func (m *Manager) TrackAllocation(id uint64, size int64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.usedMemory += size
	m.allocCount++
	m.activeMats[id] = &MatInfo{
		ID:        id,
		Tag:       tag,
		Size:      size,
		Timestamp: time.Now(),
	}
}

func (m *Manager) TrackDeallocation(id uint64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deallocCount++
	if info, exists := m.activeMats[id]; exists {
		delete(m.activeMats, id)
		m.usedMemory -= info.Size
	}
}

func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		Allocations:   m.allocCount,
		Deallocations: m.deallocCount,
		UsedBytes:     m.usedMemory,
		ActiveMats:    len(m.activeMats),
	}
}

// Cleanup logs every Mat that was never released and forgets it.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, info := range m.activeMats {
		m.logger.Warning("MemoryManager", "unreleased Mat", map[string]interface{}{
			"tag":  info.Tag,
			"size": info.Size,
			"age":  time.Since(info.Timestamp).String(),
		})
		delete(m.activeMats, id)
	}

	m.logger.Debug("MemoryManager", "cleanup completed", map[string]interface{}{
		"allocations":   m.allocCount,
		"deallocations": m.deallocCount,
	})

	m.usedMemory = 0
}
