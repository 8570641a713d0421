package nimsforestgallery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"
)

// Format is an output file format for rendered frames.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatForPath picks the format from a file name's extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// RasterizeFrame draws the frame onto a new RGBA image of the frame's
// size.
func RasterizeFrame(f *Frame) *image.RGBA {
	c := NewRasterCanvas(int(math.Ceil(f.Width)), int(math.Ceil(f.Height)))
	f.Render(c)
	return c.Image()
}

// WriteFrame encodes the frame in the given format.
func WriteFrame(w io.Writer, f *Frame, format Format) error {
	if f == nil {
		return fmt.Errorf("write frame: %w", ErrEmptyData)
	}
	switch format {
	case FormatSVG:
		c := NewSVGCanvas(w, f.Width, f.Height)
		f.Render(c)
		return c.Close()
	case FormatPNG:
		return png.Encode(w, RasterizeFrame(f))
	case FormatJPEG:
		return jpeg.Encode(w, RasterizeFrame(f), &jpeg.Options{Quality: 85})
	}
	return fmt.Errorf("write frame: %w %q", ErrUnknownFormat, format)
}

// EncodeFrame is WriteFrame into a byte slice.
func EncodeFrame(f *Frame, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, f, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderVisual waits for the gallery's datasets, selects id and ticks it
// up to maxFrames times, stopping early once the visual stops looping.
// It returns the last frame drawn.
func RenderVisual(ctx context.Context, g *Gallery, id string, maxFrames int) (*Frame, error) {
	if ld := g.Loader(); ld != nil {
		if err := ld.Wait(ctx); err != nil {
			g.log.Warn("some datasets failed to load", "err", err)
		}
	}
	if !g.Select(id) {
		return nil, fmt.Errorf("render %s: %w", id, ErrUnknownVisual)
	}
	if v, _ := g.Lookup(id); !v.Loaded() {
		return nil, fmt.Errorf("render %s: dataset did not load", id)
	}

	src := NewGallerySource(g)
	var f *Frame
	for i := 0; i < max(maxFrames, 1); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := src.NextFrame()
		if err != nil {
			return nil, err
		}
		f = next
		if !f.Looping {
			break
		}
	}
	return f, nil
}
