package imagepipe

import (
	"bytes"
	"image"
	"image/draw"
	"image/gif"
	"time"
)

// defaultFrameDelay is substituted for a GIF frame whose delay field is
// zero — some encoders emit 0 to mean "as fast as possible", which in
// practice renders as a fixed minimum rather than truly instant.
const defaultFrameDelay = 100 * time.Millisecond

// delayUnit is the GIF container's delay tick: 1 unit == 10ms.
const delayUnit = 10 * time.Millisecond

// SplitAnimated decodes an animated GIF and composites each frame onto a
// full-canvas buffer according to its disposal method, returning one
// fully-opaque (or transparency-preserving, for DisposeNone/Previous)
// canvas per frame, encoded per h.Format and ready for the animation
// scheduler.
func (p DefaultPipeline) SplitAnimated(data []byte, h Helper) ([]Frame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, errEncode("gif decode", err)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	canvas := image.NewNRGBA(bounds)
	previous := image.NewNRGBA(bounds)

	frames := make([]Frame, 0, len(g.Image))
	for i, srcFrame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		// Snapshot before drawing, in case this frame requests
		// DisposePrevious restoration afterward.
		copy(previous.Pix, canvas.Pix)

		draw.Draw(canvas, srcFrame.Bounds(), srcFrame, srcFrame.Bounds().Min, draw.Over)

		rendered := image.NewNRGBA(bounds)
		copy(rendered.Pix, canvas.Pix)

		transformed := p.Transform(rendered, h)
		encoded, err := p.Encode(transformed, h)
		if err != nil {
			return nil, err
		}

		delayTicks := 0
		if i < len(g.Delay) {
			delayTicks = g.Delay[i]
		}
		delay := time.Duration(delayTicks) * delayUnit
		if delay == 0 {
			delay = defaultFrameDelay
		}
		frames = append(frames, Frame{Data: encoded, Delay: delay})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, srcFrame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous.Pix)
		default:
			// DisposalNone / unspecified: leave canvas as drawn, next
			// frame composites on top of it.
		}
	}
	return frames, nil
}
