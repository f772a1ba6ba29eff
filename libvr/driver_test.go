package libvr_test

import (
	"errors"
	"testing"

	"stereo-gl/libvr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDriverTickOrder(t *testing.T) {
	h := newHarness()
	h.surface.width, h.surface.height = 2160, 1200
	driver := libvr.NewFrameDriver(h.display, h.surface, h.renderer, nil)

	driver.Start()
	assert.Equal(t, []string{"RequestAnimationFrame"}, []string(*h.log))
	*h.log = nil

	require.Equal(t, 1, h.display.refresh())
	assert.Equal(t, []string{
		"RequestAnimationFrame",
		"GetFrameData",
		"Bind",
		"Clear",
		"Viewport 0 0 1080 1200",
		"SetMatrices 1",
		"Draw",
		"Viewport 1080 0 1080 1200",
		"SetMatrices -1",
		"Draw",
		"SubmitFrame",
	}, []string(*h.log))
	assert.Equal(t, 2, h.renderer.draws)
	assert.Equal(t, uint64(1), driver.Ticks())
	assert.Equal(t, h.display.frame.RightProjectionMatrix, h.renderer.lastProj)
}

func TestFrameDriverTwoDrawsPerTick(t *testing.T) {
	h := newHarness()
	driver := libvr.NewFrameDriver(h.display, h.surface, h.renderer, nil)
	driver.Start()

	for i := 1; i <= 5; i++ {
		require.Equal(t, 1, h.display.refresh(), "refresh %d", i)
		assert.Equal(t, 2*i, h.renderer.draws)
		assert.Equal(t, i, h.display.submits)
		assert.Equal(t, 1, h.display.scheduler.Pending(), "one registration outstanding")
	}
}

func TestFrameDriverStopCancelsPendingTick(t *testing.T) {
	h := newHarness()
	driver := libvr.NewFrameDriver(h.display, h.surface, h.renderer, nil)
	driver.Start()
	h.display.refresh()

	driver.Stop()
	assert.False(t, driver.Running())
	assert.Zero(t, h.display.scheduler.Pending())

	assert.Zero(t, h.display.refresh())
	assert.Zero(t, h.display.refresh())
	assert.Equal(t, uint64(1), driver.Ticks())
	assert.Equal(t, 2, h.renderer.draws)
}

func TestFrameDriverStartIsIdempotent(t *testing.T) {
	h := newHarness()
	driver := libvr.NewFrameDriver(h.display, h.surface, h.renderer, nil)
	driver.Start()
	driver.Start()
	assert.Equal(t, 1, h.display.scheduler.Pending())

	h.display.refresh()
	assert.Equal(t, 2, h.renderer.draws)
}

func TestFrameDriverDeviceLost(t *testing.T) {
	h := newHarness()
	var lost error
	driver := libvr.NewFrameDriver(h.display, h.surface, h.renderer, func(err error) { lost = err })
	driver.Start()
	h.display.refresh()

	h.display.frameErr = libvr.ErrDeviceLost
	h.display.refresh()

	assert.ErrorIs(t, lost, libvr.ErrDeviceLost)
	assert.False(t, driver.Running())
	assert.Zero(t, h.display.scheduler.Pending())
	assert.Equal(t, 2, h.renderer.draws, "nothing drawn after the loss")
	assert.Zero(t, h.display.refresh())
}

func TestFrameDriverSubmitFailure(t *testing.T) {
	h := newHarness()
	submitErr := errors.New("compositor gone")
	h.display.submitErr = submitErr
	var lost error
	driver := libvr.NewFrameDriver(h.display, h.surface, h.renderer, func(err error) { lost = err })
	driver.Start()

	h.display.refresh()
	assert.ErrorIs(t, lost, submitErr)
	assert.Zero(t, driver.Ticks())
	assert.Zero(t, h.display.scheduler.Pending())
}
