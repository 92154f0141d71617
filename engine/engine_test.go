package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRunsOnLoopInOrder(t *testing.T) {
	e := NewEngine(WithTickRate(1000))
	var got []int

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		e.Post(func() { got = append(got, i) })
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Post(func() { e.Post(e.Quit) })
	}()

	require.NoError(t, e.Run(context.Background()))
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, e.Run(ctx), context.DeadlineExceeded)
}

func TestTickCallback(t *testing.T) {
	e := NewEngine(WithTickRate(500))
	ticks := 0
	e.SetTickCallback(func(dt float32) {
		ticks++
		assert.GreaterOrEqual(t, dt, float32(0))
		if ticks == 3 {
			e.Quit()
		}
	})
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, ticks)
}

type closingSource struct {
	polls int
}

func (s *closingSource) PollEvents() {
	s.polls++
}

func (s *closingSource) ShouldClose() bool {
	return s.polls >= 2
}

func TestEventSourceCloseQuits(t *testing.T) {
	src := &closingSource{}
	e := NewEngine(WithTickRate(500), WithEventSource(src))
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 2, src.polls)
}

func TestPanickingTaskDoesNotStopLoop(t *testing.T) {
	e := NewEngine(WithProfiling(true))
	ran := false
	e.Post(func() { panic("boom") })
	e.Post(func() { ran = true; e.Quit() })
	require.NoError(t, e.Run(context.Background()))
	assert.True(t, ran)
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()
	assert.NoError(t, e.Run(context.Background()))
}
