// Package render turns a validated generation request into image bytes. The
// QR encoding and rasterization themselves are done by third-party encoders.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/fancyqr/fancyqr/builder"
)

// Renderer encodes and rasterizes a request, returning an encoded image.
type Renderer interface {
	Render(ctx context.Context, req builder.Request) ([]byte, error)
}

// Options are the fixed encoder parameters.
type Options struct {
	Level      Level
	ModuleSize int // pixels per module
	Border     int // quiet zone, in modules
}

// DefaultOptions matches the classic output: level H, 10px modules and a
// four module border.
func DefaultOptions() Options {
	return Options{Level: LevelHigh, ModuleSize: 10, Border: 4}
}

func (o Options) validate() error {
	if o.ModuleSize < 1 || o.ModuleSize > 255 {
		return fmt.Errorf("module size must be in [1,255], got %d", o.ModuleSize)
	}
	if o.Border < 0 {
		return fmt.Errorf("border must not be negative, got %d", o.Border)
	}
	return nil
}

// StyledRenderer draws PNG QR codes with per-request eye and body primitives
// and a solid two-color fill.
type StyledRenderer struct {
	opts Options
}

// NewStyledRenderer returns a renderer using opts for every request.
func NewStyledRenderer(opts Options) (*StyledRenderer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &StyledRenderer{opts: opts}, nil
}

// Render encodes req.Payload and returns the PNG bytes.
func (r *StyledRenderer) Render(ctx context.Context, req builder.Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qrc, err := qrcode.NewWith(req.Payload,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		r.opts.Level.encodeOption(),
	)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{&buf},
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(uint8(r.opts.ModuleSize)),
		standard.WithBorderWidth(r.opts.Border*r.opts.ModuleSize),
		standard.WithFgColor(req.Foreground.RGBA()),
		standard.WithBgColor(req.Background.RGBA()),
		standard.WithCustomShape(newModuleShape(req.Eye.Drawer(), req.Body.Drawer())),
	)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("draw qr: %w", err)
	}
	return buf.Bytes(), nil
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }
