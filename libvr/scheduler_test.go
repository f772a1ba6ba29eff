package libvr_test

import (
	"sync"
	"testing"

	"stereo-gl/libvr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	s := libvr.NewScheduler()
	var order []int
	s.Schedule(func(float64) { order = append(order, 1) })
	s.Schedule(func(float64) { order = append(order, 2) })

	assert.Equal(t, 2, s.Run(0.5))
	assert.Equal(t, []int{1, 2}, order)
	assert.Zero(t, s.Pending())
	assert.Zero(t, s.Run(1))
}

func TestSchedulerDefersReregistration(t *testing.T) {
	s := libvr.NewScheduler()
	calls := 0
	var cb libvr.FrameCallback
	cb = func(float64) {
		calls++
		s.Schedule(cb)
	}
	s.Schedule(cb)

	assert.Equal(t, 1, s.Run(0))
	assert.Equal(t, 1, calls, "re-registration must not run in the same batch")
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 1, s.Run(0))
	assert.Equal(t, 2, calls)
}

func TestSchedulerCancel(t *testing.T) {
	s := libvr.NewScheduler()
	ran := false
	h := s.Schedule(func(float64) { ran = true })
	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(12345)

	assert.Zero(t, s.Run(0))
	assert.False(t, ran)
}

func TestSchedulerCancelFromEarlierCallback(t *testing.T) {
	s := libvr.NewScheduler()
	var second libvr.FrameHandle
	ran := false
	s.Schedule(func(float64) { s.Cancel(second) })
	second = s.Schedule(func(float64) { ran = true })

	assert.Equal(t, 1, s.Run(0))
	assert.False(t, ran)
}

func TestSchedulerCancelReleasesOrder(t *testing.T) {
	s := libvr.NewScheduler()
	for i := 0; i < 50; i++ {
		s.Cancel(s.Schedule(func(float64) { t.Fatal("cancelled callback ran") }))
	}
	kept := s.Schedule(func(float64) {})
	s.Cancel(kept + 100)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 1, libvr.QueuedHandles(s))
	assert.Equal(t, 1, s.Run(0))
}

func TestSchedulerHandlesAreUnique(t *testing.T) {
	s := libvr.NewScheduler()
	seen := map[libvr.FrameHandle]bool{}
	for i := 0; i < 100; i++ {
		h := s.Schedule(func(float64) {})
		require.NotZero(t, h)
		require.False(t, seen[h])
		seen[h] = true
	}
}

func TestPresentFutureSettlesOnce(t *testing.T) {
	f := libvr.NewPresentFuture()
	_, ok := f.Poll()
	assert.False(t, ok)

	assert.True(t, f.Resolve(libvr.SessionParams{DisplayName: "a"}))
	assert.False(t, f.Reject(libvr.ErrDeviceLost))
	assert.False(t, f.Resolve(libvr.SessionParams{DisplayName: "b"}))

	result, ok := f.Poll()
	require.True(t, ok)
	assert.NoError(t, result.Err)
	assert.Equal(t, "a", result.Params.DisplayName)
}

func TestPresentFutureRejectDefaultReason(t *testing.T) {
	f := libvr.NewPresentFuture()
	f.Reject(nil)
	result, ok := f.Poll()
	require.True(t, ok)
	assert.ErrorIs(t, result.Err, libvr.ErrPresentRejected)
}

func TestPresentFutureConcurrentSettle(t *testing.T) {
	f := libvr.NewPresentFuture()
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.Resolve(libvr.SessionParams{}) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	<-f.Done()
	wg.Wait()
	assert.Equal(t, 1, winners)
}
