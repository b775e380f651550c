package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisitors_Allow(t *testing.T) {
	v := NewVisitors(1, 2)

	assert.True(t, v.Allow("10.0.0.1"))
	assert.True(t, v.Allow("10.0.0.1"))
	assert.False(t, v.Allow("10.0.0.1"))
	assert.True(t, v.Allow("10.0.0.2"), "limits are per client")
}

func TestVisitors_Cleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := NewVisitors(1, 1)
	v.now = func() time.Time { return now }

	v.GetVisitor("a")
	now = now.Add(10 * time.Minute)
	v.GetVisitor("b")

	v.Cleanup(5 * time.Minute)
	assert.Equal(t, 1, v.Len())
}
