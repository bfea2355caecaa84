package device

import (
	"fmt"
	"time"

	"github.com/streamdock-hub/go-streamdock/config"
	"github.com/streamdock-hub/go-streamdock/imagepipe"
	"github.com/streamdock-hub/go-streamdock/sdkerr"
	"github.com/streamdock-hub/go-streamdock/transport"
)

// Renderer wires a Device to an image pipeline. It is created
// separately from Bind so callers can swap the pipeline implementation
// (or share one pipeline instance across many devices) without the core
// Device type depending on any particular backend.
type Renderer struct {
	dev      *Device
	pipeline imagepipe.Pipeline

	keyQuality        int
	backgroundQuality int
	opts              imagepipe.Options
}

// NewRenderer attaches pipeline to dev for key/background/animation
// rendering, using the package's default quality policy.
func NewRenderer(dev *Device, pipeline imagepipe.Pipeline) *Renderer {
	return NewRendererFromConfig(dev, pipeline, config.DefaultConfig())
}

// NewRendererFromConfig attaches pipeline to dev, taking still-image
// quality and the Linux-virtualized-host animation policy from cfg
// instead of the package defaults.
func NewRendererFromConfig(dev *Device, pipeline imagepipe.Pipeline, cfg *config.Config) *Renderer {
	return &Renderer{
		dev:               dev,
		pipeline:          pipeline,
		keyQuality:        cfg.DefaultKeyQuality,
		backgroundQuality: cfg.DefaultBackgroundQuality,
		opts:              imagepipe.Options{LinuxVirtualized: cfg.LinuxVirtualizedHost},
	}
}

func (r *Renderer) keyHelper() imagepipe.Helper {
	geo := r.dev.descriptor.Geometry
	quality := r.keyQuality
	if quality <= 0 {
		quality = imagepipe.StillQuality
	}
	return imagepipe.Helper{
		Width: geo.KeyImageWidth, Height: geo.KeyImageHeight,
		RotateAngle: geo.KeyRotation, Resize: imagepipe.ResizeScale,
		Format: imagepipe.FormatJPEG, Quality: quality,
	}
}

func (r *Renderer) backgroundHelper() imagepipe.Helper {
	geo := r.dev.descriptor.Geometry
	quality := r.backgroundQuality
	if quality <= 0 {
		quality = imagepipe.StillQuality
	}
	return imagepipe.Helper{
		Width: geo.BackgroundWidth, Height: geo.BackgroundHeight,
		RotateAngle: geo.BackgroundRotation, Resize: imagepipe.ResizePad,
		Format: imagepipe.FormatJPEG, Quality: quality,
	}
}

// animationKeyHelper and animationBackgroundHelper are the GIF-frame
// counterparts of keyHelper/backgroundHelper: same geometry, but
// quality dropped per imagepipe's animation-frame policy (further
// still under a Linux-virtualized host).
func (r *Renderer) animationKeyHelper() imagepipe.Helper {
	h := r.keyHelper()
	h.Quality = imagepipe.AnimationQualityFor(r.opts)
	return h
}

func (r *Renderer) animationBackgroundHelper() imagepipe.Helper {
	h := r.backgroundHelper()
	h.Quality = imagepipe.AnimationQualityFor(r.opts)
	return h
}

// SetKeyImage loads, transforms, and encodes data (JPEG/PNG source) and
// writes it to keyIndex.
func (r *Renderer) SetKeyImage(keyIndex int, data []byte) error {
	if r.dev.outOfRange(keyIndex) {
		return fmt.Errorf("key %d: %w", keyIndex, sdkerr.ErrParamInvalid)
	}
	encoded, err := r.encode(data, r.keyHelper())
	if err != nil {
		return err
	}
	return r.dev.send(transport.OpKeyImage, 0, uint8(keyIndex), encoded)
}

// SetBackgroundImage loads, transforms, and encodes data as the
// whole-screen background.
func (r *Renderer) SetBackgroundImage(data []byte) error {
	if !r.dev.descriptor.Geometry.HasBackground {
		return fmt.Errorf("%s has no background surface: %w", r.dev.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	encoded, err := r.encode(data, r.backgroundHelper())
	if err != nil {
		return err
	}
	return r.dev.send(transport.OpBackgroundImage, 0, 0, encoded)
}

// SetBackgroundGif splits an animated GIF into frames and hands them to
// the device's animation scheduler as the background track (target 0).
// Returns ErrStateInvalid on a model that doesn't support background
// animation.
func (r *Renderer) SetBackgroundGif(data []byte) error {
	if !r.dev.capabilities.SupportsBackgroundGif {
		return fmt.Errorf("%s has no background GIF support: %w", r.dev.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	frames, delays, err := r.splitFrames(data, r.animationBackgroundHelper())
	if err != nil {
		return err
	}
	r.dev.scheduler.Start(0, frames, delays)
	return nil
}

// SetKeyGif splits an animated GIF into frames and starts them playing
// on keyIndex. Only dual-device (per-key animation capable) models
// support this.
func (r *Renderer) SetKeyGif(keyIndex int, data []byte) error {
	if r.dev.outOfRange(keyIndex) || keyIndex == 0 {
		return fmt.Errorf("key %d: %w", keyIndex, sdkerr.ErrParamInvalid)
	}
	if !r.dev.capabilities.IsDualDevice {
		return fmt.Errorf("%s has no per-key animation support: %w", r.dev.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	frames, delays, err := r.splitFrames(data, r.animationKeyHelper())
	if err != nil {
		return err
	}
	r.dev.scheduler.Start(keyIndex, frames, delays)
	return nil
}

func (r *Renderer) encode(data []byte, h imagepipe.Helper) ([]byte, error) {
	if _, ok := imagepipe.DetectInputContainer(data); !ok {
		return nil, fmt.Errorf("image container magic unrecognized: %w", sdkerr.ErrParamInvalid)
	}
	img, err := r.pipeline.Load(data)
	if err != nil {
		return nil, err
	}
	transformed := r.pipeline.Transform(img, h)
	return r.pipeline.Encode(transformed, h)
}

func (r *Renderer) splitFrames(data []byte, h imagepipe.Helper) ([][]byte, []time.Duration, error) {
	frames, err := r.pipeline.SplitAnimated(data, h)
	if err != nil {
		return nil, nil, err
	}
	out := make([][]byte, len(frames))
	delays := make([]time.Duration, len(frames))
	for i, f := range frames {
		out[i] = f.Data
		delays[i] = f.Delay
	}
	return out, delays, nil
}
