package libvr_test

import (
	"errors"
	"testing"

	"stereo-gl/libvr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStereoSurfaceSize(t *testing.T) {
	w, h := libvr.StereoSurfaceSize(
		libvr.EyeParameters{RenderWidth: 1080, RenderHeight: 1200},
		libvr.EyeParameters{RenderWidth: 1080, RenderHeight: 1200},
	)
	assert.Equal(t, 2160, w)
	assert.Equal(t, 1200, h)

	w, h = libvr.StereoSurfaceSize(
		libvr.EyeParameters{RenderWidth: 960, RenderHeight: 1100},
		libvr.EyeParameters{RenderWidth: 1000, RenderHeight: 1080},
	)
	assert.Equal(t, 2000, w)
	assert.Equal(t, 1100, h)
}

func TestSessionEntersStereo(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	var transitions []libvr.State
	session.OnStateChange = func(from, to libvr.State) { transitions = append(transitions, to) }

	require.NoError(t, session.Toggle())
	assert.Equal(t, libvr.StateRequesting, session.State())
	assert.Nil(t, session.Driver())

	// nothing happens until the request settles
	session.Update()
	assert.Equal(t, libvr.StateRequesting, session.State())
	assert.Zero(t, h.surface.resizes)

	h.display.resolve()
	session.Update()
	assert.Equal(t, libvr.StateStereo, session.State())
	assert.Equal(t, []libvr.State{libvr.StateRequesting, libvr.StateStereo}, transitions)

	w, ht := h.surface.Size()
	assert.Equal(t, 2160, w)
	assert.Equal(t, 1200, ht)
	assert.Equal(t, "fake", session.Params().DisplayName)

	require.NotNil(t, session.Driver())
	assert.True(t, session.Driver().Running())
	assert.Equal(t, 1, h.display.scheduler.Pending(), "exactly one frame driver")

	h.display.refresh()
	h.display.refresh()
	assert.Equal(t, 4, h.renderer.draws)
	assert.Equal(t, uint64(2), session.Driver().Ticks())
}

func TestSessionToggleOffEndsPresentation(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	require.NoError(t, session.Toggle())
	h.display.resolve()
	session.Update()
	h.display.refresh()
	driver := session.Driver()

	require.NoError(t, session.Toggle())
	assert.Equal(t, libvr.StateFlat, session.State())
	assert.Nil(t, session.Driver())
	assert.False(t, driver.Running())
	assert.False(t, h.display.presenting)
	assert.Equal(t, 1, h.display.exits)

	draws := h.renderer.draws
	assert.Zero(t, h.display.refresh())
	assert.Zero(t, h.display.refresh())
	assert.Equal(t, draws, h.renderer.draws, "no tick after toggling off")
}

func TestSessionReenterAfterToggleOff(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)

	for round := 0; round < 3; round++ {
		require.NoError(t, session.Toggle())
		h.display.resolve()
		session.Update()
		require.Equal(t, libvr.StateStereo, session.State())
		assert.Equal(t, 1, h.display.scheduler.Pending(), "round %d", round)
		h.display.refresh()
		require.NoError(t, session.Toggle())
		assert.Zero(t, h.display.scheduler.Pending(), "round %d", round)
	}
	assert.Equal(t, 3, h.renderer.draws/2)
	assert.Equal(t, 3, h.display.requests)
}

func TestSessionToggleWhileRequesting(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	require.NoError(t, session.Toggle())

	assert.ErrorIs(t, session.Toggle(), libvr.ErrPresentPending)
	assert.Equal(t, libvr.StateRequesting, session.State())
	assert.Equal(t, 1, h.display.requests)
}

func TestSessionPresentRejected(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	require.NoError(t, session.Toggle())

	reason := errors.New("user denied")
	h.display.future.Reject(reason)
	session.Update()

	assert.Equal(t, libvr.StateFlat, session.State())
	assert.ErrorIs(t, session.Err(), reason)
	assert.Zero(t, h.surface.resizes)
	assert.Zero(t, h.display.scheduler.Pending())

	// the toggle is usable again
	require.NoError(t, session.Toggle())
	assert.Equal(t, libvr.StateRequesting, session.State())
	assert.NoError(t, session.Err())
}

func TestSessionSettledSynchronously(t *testing.T) {
	h := newHarness()
	emu := libvr.NewEmulator(libvr.DefaultEmulatorConfig(), nil)
	emu.Disconnect()
	session := libvr.NewSession(emu, h.surface, h.renderer)

	require.NoError(t, session.Toggle())
	assert.Equal(t, libvr.StateFlat, session.State())
	assert.ErrorIs(t, session.Err(), libvr.ErrDeviceLost)
}

func TestSessionDeviceLostReturnsToFlat(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	require.NoError(t, session.Toggle())
	h.display.resolve()
	session.Update()
	h.display.refresh()

	h.display.frameErr = libvr.ErrDeviceLost
	h.display.refresh()

	assert.Equal(t, libvr.StateFlat, session.State())
	assert.ErrorIs(t, session.Err(), libvr.ErrDeviceLost)
	assert.Nil(t, session.Driver())
	assert.Zero(t, h.display.scheduler.Pending())
	assert.Equal(t, 1, h.display.exits)
}

func TestSessionCloseWhileRequesting(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	require.NoError(t, session.Toggle())
	future := h.display.future

	require.NoError(t, session.Close())
	assert.Equal(t, libvr.StateFlat, session.State())

	result, ok := future.Poll()
	require.True(t, ok)
	assert.ErrorIs(t, result.Err, libvr.ErrPresentAbandoned)

	// a late resolution is ignored
	assert.False(t, future.Resolve(libvr.SessionParams{}))
	session.Update()
	assert.Equal(t, libvr.StateFlat, session.State())
}

func TestSessionCloseWhileStereo(t *testing.T) {
	h := newHarness()
	session := libvr.NewSession(h.display, h.surface, h.renderer)
	require.NoError(t, session.Toggle())
	h.display.resolve()
	session.Update()

	require.NoError(t, session.Close())
	assert.Equal(t, libvr.StateFlat, session.State())
	assert.Zero(t, h.display.refresh())
}
