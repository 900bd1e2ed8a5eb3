// Package generator runs one user action end to end: validate the form,
// render the QR code, overwrite the output file and classify the outcome
// into a notification for the front end.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fancyqr/fancyqr/builder"
	"github.com/fancyqr/fancyqr/render"
)

// DefaultOutput is the file written in the working directory.
const DefaultOutput = "fancy_qr.png"

// ErrRenderFailure wraps any error raised while rendering or saving.
var ErrRenderFailure = errors.New("render failure")

// Result is the outcome of a single generation.
type Result struct {
	Request builder.Request // zero unless validation passed
	Path    string          // set on success
	Err     error
	Notice  Notification
}

// OK reports whether the image was written.
func (r Result) OK() bool { return r.Err == nil }

// Generator serializes generations onto a single output path.
type Generator struct {
	renderer render.Renderer
	output   string
	log      *slog.Logger

	mu sync.Mutex
}

// New returns a Generator writing to output (DefaultOutput when empty).
func New(r render.Renderer, output string, log *slog.Logger) *Generator {
	if output == "" {
		output = DefaultOutput
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{renderer: r, output: output, log: log}
}

// Output returns the path every successful generation overwrites.
func (g *Generator) Output() string {
	return g.output
}

// Generate validates form and, if valid, renders and writes the image.
// Failures are never retried.
func (g *Generator) Generate(ctx context.Context, form builder.FormState) Result {
	req, err := builder.Build(form)
	if err != nil {
		g.log.Debug("generation rejected", "error", err)
		return Result{Err: err, Notice: Notify(err, g.output)}
	}

	// Lock does not observe ctx; a request cancelled while waiting gives up
	// in write, before anything is rendered.
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.write(ctx, req); err != nil {
		err = fmt.Errorf("%w: %w", ErrRenderFailure, err)
		g.log.Error("generation failed", "error", err, "output", g.output)
		return Result{Request: req, Err: err, Notice: Notify(err, g.output)}
	}

	g.log.Info("qr code generated",
		"output", g.output,
		"eye", req.Eye,
		"body", req.Body,
		"fg", req.Foreground,
		"bg", req.Background,
	)
	return Result{Request: req, Path: g.output, Notice: Notify(nil, g.output)}
}

func (g *Generator) write(ctx context.Context, req builder.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := g.renderer.Render(ctx, req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.output, img, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", g.output, err)
	}
	return nil
}
