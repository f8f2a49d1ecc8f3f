package memory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"erosion-engine/internal/logger"
)

func TestTracking(t *testing.T) {
	m := NewManagerWithLimit(logger.NewNop(), 100)

	m.TrackAllocation(1, 40, "a")
	m.TrackAllocation(2, 30, "b")
	assert.NoError(t, m.Reserve(30))
	assert.ErrorIs(t, m.Reserve(31), ErrBudgetExceeded)

	m.TrackDeallocation(1, "a")
	m.TrackDeallocation(1, "a")

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.Allocations)
	assert.Equal(t, int64(2), stats.Deallocations)
	assert.Equal(t, int64(30), stats.UsedBytes)
	assert.Equal(t, 1, stats.ActiveMats)
}

func TestCleanupReportsLeaks(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(logger.NewZerolog(&buf, zerolog.WarnLevel))

	m.TrackAllocation(7, 16, "leaked")
	m.Cleanup()

	assert.True(t, strings.Contains(buf.String(), "leaked"))
	assert.Zero(t, m.GetStats().ActiveMats)
	assert.Zero(t, m.GetStats().UsedBytes)
}
