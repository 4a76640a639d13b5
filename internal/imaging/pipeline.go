// Package imaging turns an uploaded photo into a bounded JPEG data URL that can be
// previewed immediately and stored inside the artwork record.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"strings"

	// decoders for image.Decode
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth  = 800
	DefaultQuality   = 60
	DefaultMaxPixels = 40_000_000

	dataURLPrefix = "data:image/jpeg;base64,"
)

// ErrDecode reports bytes that are not a recognizable raster image.
var ErrDecode = errors.New("unrecognized image")

// Asset is the pipeline output.
type Asset struct {
	DataURL string `json:"data_url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	// encoded JPEG size before base64
	Bytes int `json:"bytes"`
}

type Pipeline struct {
	MaxWidth  int
	Quality   int
	MaxPixels int
}

func New() *Pipeline {
	return &Pipeline{
		MaxWidth:  DefaultMaxWidth,
		Quality:   DefaultQuality,
		MaxPixels: DefaultMaxPixels,
	}
}

// Ingest decodes raw, scales it down to MaxWidth when wider, and re-encodes it as JPEG.
// ctx is checked between stages; a cancelled request stops before the next stage starts.
func (p *Pipeline) Ingest(ctx context.Context, raw []byte) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Asset{}, fmt.Errorf("%w: empty image", ErrDecode)
	}
	if p.MaxPixels > 0 && cfg.Width*cfg.Height > p.MaxPixels {
		return Asset{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, p.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	b := src.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy(), p.maxWidth())
	dst := render(src, w, h)
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality()}); err != nil {
		return Asset{}, fmt.Errorf("encode jpeg: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	return Asset{
		DataURL: dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   w,
		Height:  h,
		Bytes:   buf.Len(),
	}, nil
}

// TargetSize scales proportionally to maxWidth when width exceeds it; narrower images pass through.
func TargetSize(width, height, maxWidth int) (int, int) {
	if maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	h := int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}

// render draws src onto an opaque surface of w x h. Transparent areas become white since JPEG has no alpha.
func render(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// IngestDataURL runs an image already encoded as a base64 data URL (any raster type) through Ingest,
// so it is bounded and re-encoded like an upload.
func (p *Pipeline) IngestDataURL(ctx context.Context, dataURL string) (Asset, error) {
	meta, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return Asset{}, fmt.Errorf("%w: not a base64 image data url", ErrDecode)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return p.Ingest(ctx, raw)
}

// Decode reads a data URL produced by Ingest back into an image.
func Decode(dataURL string) (image.Image, error) {
	if len(dataURL) < len(dataURLPrefix) || dataURL[:len(dataURLPrefix)] != dataURLPrefix {
		return nil, fmt.Errorf("%w: not a jpeg data url", ErrDecode)
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(dataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func (p *Pipeline) maxWidth() int {
	if p.MaxWidth <= 0 {
		return DefaultMaxWidth
	}
	return p.MaxWidth
}

func (p *Pipeline) quality() int {
	if p.Quality < 1 || p.Quality > 100 {
		return DefaultQuality
	}
	return p.Quality
}
