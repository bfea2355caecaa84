// Package imagepipe is the default implementation of the image pipeline
// contract: decode, transform (resize/rotate/flip/crop), encode into one
// of the device-native containers, and split an animated GIF into a
// delay-tagged frame sequence ready for the animation scheduler.
package imagepipe

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/disintegration/imaging"

	"github.com/streamdock-hub/go-streamdock/sdkerr"
)

// Format identifies an output container.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatRawBGR888
	FormatRawRGB565
	FormatWEBP
)

// ResizeOption selects how Transform fits a source image into the
// target's width/height when the aspect ratios don't match.
type ResizeOption int

const (
	// ResizeScale stretches/shrinks to exactly fill the target
	// dimensions, discarding the source aspect ratio.
	ResizeScale ResizeOption = iota
	// ResizePad fits the source within the target preserving aspect
	// ratio, centered, with the remainder padded black.
	ResizePad
)

// Helper is the per-target rendering configuration: how to crop, resize,
// rotate, flip, and encode one canvas before it goes to the wire. Named
// and shaped after the vendor SDK's per-target ImgHelper.
type Helper struct {
	CropOffsetX, CropOffsetY int
	CropWidth, CropHeight    int // 0,0 means no crop

	Width, Height int // target dimensions after resize

	RotateAngle int // degrees, counter-clockwise
	Resize      ResizeOption

	FlipVertical   bool
	FlipHorizontal bool

	Format  Format
	Quality int // 1-100, JPEG only; ignored otherwise
}

// Quality levels this SDK targets for JPEG encodes. Stills use
// StillQuality; animation frames use AnimationQuality, dropped further
// to AnimationQualityVirtualized when Options.LinuxVirtualized is set,
// trading fidelity for the lower effective bandwidth of a virtualized
// USB passthrough.
const (
	StillQuality                = 95
	AnimationQuality            = 70
	AnimationQualityVirtualized = 60
)

// Options carries host-environment policy that affects encode quality
// but isn't part of any single target's Helper.
type Options struct {
	// LinuxVirtualized reports whether the host is a Linux VM/container.
	// This package never auto-detects it; callers set it from whatever
	// signal they trust (e.g. config.Config.LinuxVirtualizedHost).
	LinuxVirtualized bool
}

// AnimationQualityFor returns the JPEG quality animation frames should
// encode at under opts.
func AnimationQualityFor(opts Options) int {
	if opts.LinuxVirtualized {
		return AnimationQualityVirtualized
	}
	return AnimationQuality
}

var (
	jpegMagic = []byte{0xFF, 0xD8}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// DetectInputContainer reports the container format identified by
// data's leading magic bytes, and whether it's one this pipeline
// accepts as still-image encode input (JPEG or PNG). Callers validate
// against this before submitting a render, rather than discovering a
// malformed or unsupported container only after a decode failure.
func DetectInputContainer(data []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG, true
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG, true
	default:
		return 0, false
	}
}

// ErrUnsupportedContainer is returned by Encode for a Format this
// implementation cannot produce. WEBP is the only case today: no pure-Go
// encoder exists among this SDK's dependencies, and adding a cgo-based
// one would introduce a dependency ungrounded in any reference
// implementation this codebase draws from.
var ErrUnsupportedContainer = errors.New("imagepipe: unsupported output container")

// Pipeline is the full image-pipeline contract a Device's render
// operations are built on. DefaultPipeline is the implementation wired
// in by this SDK; callers may supply their own to swap the backend
// entirely.
type Pipeline interface {
	Load(data []byte) (image.Image, error)
	Transform(src image.Image, h Helper) image.Image
	Encode(src image.Image, h Helper) ([]byte, error)
	SplitAnimated(data []byte, h Helper) ([]Frame, error)
}

// Frame is one decoded, positioned animation frame ready for the
// scheduler: already-encoded bytes in h.Format, and how long to display
// it before advancing.
type Frame struct {
	Data  []byte
	Delay time.Duration
}

// DefaultPipeline implements Pipeline using github.com/disintegration/
// imaging for geometric transforms and the standard library's image
// codecs for JPEG/PNG/GIF.
type DefaultPipeline struct{}

// NewDefaultPipeline returns the SDK's default Pipeline.
func NewDefaultPipeline() DefaultPipeline { return DefaultPipeline{} }

func (DefaultPipeline) Load(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errEncode("decode", err)
	}
	return img, nil
}

func (DefaultPipeline) Transform(src image.Image, h Helper) image.Image {
	out := src
	if h.CropWidth > 0 && h.CropHeight > 0 {
		rect := image.Rect(h.CropOffsetX, h.CropOffsetY, h.CropOffsetX+h.CropWidth, h.CropOffsetY+h.CropHeight)
		out = imaging.Crop(out, rect)
	}
	if h.Width > 0 && h.Height > 0 {
		switch h.Resize {
		case ResizePad:
			out = imaging.Fit(out, h.Width, h.Height, imaging.Lanczos)
			out = imaging.PasteCenter(imaging.New(h.Width, h.Height, image.Black), out)
		default:
			out = imaging.Resize(out, h.Width, h.Height, imaging.Lanczos)
		}
	}
	switch ((h.RotateAngle % 360) + 360) % 360 {
	case 90:
		out = imaging.Rotate90(out)
	case 180:
		out = imaging.Rotate180(out)
	case 270:
		out = imaging.Rotate270(out)
	case 0:
		// no-op
	default:
		out = imaging.Rotate(out, float64(h.RotateAngle), image.Black)
	}
	if h.FlipVertical {
		out = imaging.FlipV(out)
	}
	if h.FlipHorizontal {
		out = imaging.FlipH(out)
	}
	return out
}

func (DefaultPipeline) Encode(src image.Image, h Helper) ([]byte, error) {
	switch h.Format {
	case FormatJPEG:
		quality := h.Quality
		if quality <= 0 {
			quality = 95
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
			return nil, errEncode("jpeg encode", err)
		}
		return buf.Bytes(), nil
	case FormatPNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, src); err != nil {
			return nil, errEncode("png encode", err)
		}
		return buf.Bytes(), nil
	case FormatRawBGR888:
		return encodeRawBGR888(src), nil
	case FormatRawRGB565:
		return encodeRawRGB565(src), nil
	case FormatWEBP:
		return nil, errEncode("webp", ErrUnsupportedContainer)
	default:
		return nil, errEncode("encode", ErrUnsupportedContainer)
	}
}

func errEncode(msg string, cause error) error {
	return &encodeError{msg: msg, cause: cause}
}

type encodeError struct {
	msg   string
	cause error
}

func (e *encodeError) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *encodeError) Unwrap() error { return errors.Join(e.cause, sdkerr.ErrEncoderFailure) }
