package libvr_test

import (
	"errors"
	"testing"

	"stereo-gl/libvr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenProvider struct{}

func (brokenProvider) Name() string {
	return "broken"
}

func (brokenProvider) Displays() ([]libvr.Display, error) {
	return nil, errors.New("runtime not installed")
}

func TestDiscoverWithoutProviders(t *testing.T) {
	_, err := libvr.Discover()
	assert.ErrorIs(t, err, libvr.ErrUnsupported)
}

func TestDiscoverNoDisplays(t *testing.T) {
	_, err := libvr.FirstDisplay(&libvr.EmulatorProvider{Disabled: true}, brokenProvider{})
	assert.ErrorIs(t, err, libvr.ErrNoDisplay)
}

func TestDiscoverEmulator(t *testing.T) {
	cfg := libvr.DefaultEmulatorConfig()
	cfg.Name = "bench"
	display, err := libvr.FirstDisplay(brokenProvider{}, &libvr.EmulatorProvider{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "bench", display.DisplayName())
	assert.Implements(t, (*libvr.RefreshSource)(nil), display)
}
