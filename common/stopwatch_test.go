package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopWatch(t *testing.T) {
	w := NewStopWatch("test")
	assert.Zero(t, w.Elapsed())

	w.Start()
	time.Sleep(2 * time.Millisecond)
	w.Start() // no-op while running
	w.Stop()
	first := w.Elapsed()
	assert.GreaterOrEqual(t, first, 2*time.Millisecond)
	assert.Equal(t, first, w.Elapsed(), "stopped watch does not advance")

	w.Stop() // no-op while stopped
	w.Start()
	time.Sleep(time.Millisecond)
	w.Stop()
	assert.Greater(t, w.Elapsed(), first, "laps accumulate")

	w.Reset()
	assert.Zero(t, w.Elapsed())
}
