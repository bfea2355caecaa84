package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamdock-hub/go-streamdock/catalog"
	"github.com/streamdock-hub/go-streamdock/config"
	"github.com/streamdock-hub/go-streamdock/imagepipe"
	"github.com/streamdock-hub/go-streamdock/sdkerr"
)

func TestEncodeRejectsUnrecognizedContainerMagic(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)
	r := NewRenderer(&Device{descriptor: d}, nil)

	_, err := r.encode([]byte("not an image"), r.keyHelper())
	require.Error(t, err)
	assert.True(t, sdkerr.Is(err, sdkerr.ErrParamInvalid))
}

func TestEncodeAcceptsJPEGAndPNGMagic(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)
	r := NewRenderer(&Device{descriptor: d}, imagepipe.NewDefaultPipeline())

	jpegMagic := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	_, err := r.encode(jpegMagic, r.keyHelper())
	// Magic passes; decode itself fails on this truncated stand-in, which
	// is a different error than the rejected-container case.
	require.Error(t, err)
	assert.False(t, sdkerr.Is(err, sdkerr.ErrParamInvalid))

	pngMagic := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	_, err = r.encode(pngMagic, r.keyHelper())
	require.Error(t, err)
	assert.False(t, sdkerr.Is(err, sdkerr.ErrParamInvalid))
}

func TestAnimationHelpersUseLowerQualityThanStills(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)
	dev := &Device{descriptor: d}

	r := NewRendererFromConfig(dev, nil, config.DefaultConfig())
	assert.Equal(t, 95, r.keyHelper().Quality)
	assert.Equal(t, 70, r.animationKeyHelper().Quality)
	assert.Equal(t, 95, r.backgroundHelper().Quality)
	assert.Equal(t, 70, r.animationBackgroundHelper().Quality)

	cfg := config.DefaultConfig()
	cfg.LinuxVirtualizedHost = true
	rv := NewRendererFromConfig(dev, nil, cfg)
	assert.Equal(t, 60, rv.animationKeyHelper().Quality)
	assert.Equal(t, 60, rv.animationBackgroundHelper().Quality)
}
