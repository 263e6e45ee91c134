package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsOncePerInterval(t *testing.T) {
	// time.Second/60 truncates, so sixty steps fall short of a second; size the interval by steps.
	const step = time.Second / 60
	clock := &fakeClock{t: time.Unix(0, 0)}
	core, logs := observer.New(zap.InfoLevel)
	p := NewProfiler(WithLogger(zap.New(core)), WithInterval(60*step), withClock(clock.now))

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(step)
		assert.False(t, p.Tick())
	}
	clock.t = clock.t.Add(step)
	require.True(t, p.Tick())

	assert.Equal(t, 60, p.Last().Frames)
	assert.InDelta(t, 60, p.Last().FPS, 0.5)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "frame stats", logs.All()[0].Message)

	clock.t = clock.t.Add(step)
	assert.False(t, p.Tick(), "the frame counter restarts after a report")
}

func TestWithInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(100*time.Millisecond), WithInterval(0), withClock(clock.now))

	clock.t = clock.t.Add(100 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 10, p.Last().FPS, 1e-9)
}

func TestDefaultIntervalIsOneSecond(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(withClock(clock.now))

	clock.t = clock.t.Add(time.Second - time.Nanosecond)
	assert.False(t, p.Tick())
	clock.t = clock.t.Add(time.Nanosecond)
	assert.True(t, p.Tick())
	assert.Equal(t, 2, p.Last().Frames)
}
