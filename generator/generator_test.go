package generator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fancyqr/fancyqr/builder"
	"github.com/fancyqr/fancyqr/render"
	"github.com/fancyqr/fancyqr/style"
)

// fakeRenderer records requests and returns a body derived from them.
type fakeRenderer struct {
	mu    sync.Mutex
	calls []builder.Request
	err   error
}

func (f *fakeRenderer) Render(ctx context.Context, req builder.Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(req.Payload + "|" + string(req.Eye) + "|" + string(req.Body) + "|" + req.Foreground.Hex()), nil
}

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func form(url string) builder.FormState {
	f := builder.DefaultFormState()
	f.URL = url
	return f
}

func TestGenerateWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{}
	g := New(fr, out, quietLog())

	res := g.Generate(context.Background(), form("https://example.com"))
	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Equal(t, out, res.Path)
	assert.Equal(t, LevelInfo, res.Notice.Level)
	assert.Equal(t, "QR Code generated as fancy_qr.png!", res.Notice.Message)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com|square|default|#000000", string(data))
	require.Len(t, fr.calls, 1)
	assert.Equal(t, style.White, fr.calls[0].Background)
}

func TestGenerateEmptyURLSkipsRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{}
	g := New(fr, out, quietLog())

	res := g.Generate(context.Background(), form("   "))
	assert.ErrorIs(t, res.Err, builder.ErrEmptyInput)
	assert.Equal(t, Notification{Level: LevelWarning, Title: "Missing URL", Message: "Please enter a URL."}, res.Notice)
	assert.Empty(t, fr.calls)
	assert.NoFileExists(t, out)
}

func TestGenerateInvalidColorSkipsRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{}
	g := New(fr, out, quietLog())

	f := form("https://example.com")
	f.Background = "#ggg000"
	res := g.Generate(context.Background(), f)
	assert.ErrorIs(t, res.Err, builder.ErrInvalidColor)
	assert.Equal(t, LevelError, res.Notice.Level)
	assert.Equal(t, "Invalid Color", res.Notice.Title)
	assert.Empty(t, fr.calls)
	assert.NoFileExists(t, out)
}

func TestGenerateRenderFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{err: errors.New("data too long")}
	g := New(fr, out, quietLog())

	res := g.Generate(context.Background(), form("https://example.com"))
	require.ErrorIs(t, res.Err, ErrRenderFailure)
	assert.Equal(t, LevelError, res.Notice.Level)
	assert.Equal(t, "Error", res.Notice.Title)
	assert.Equal(t, "QR generation failed:\ndata too long", res.Notice.Message)
	assert.Len(t, fr.calls, 1, "failures are not retried")
	assert.NoFileExists(t, out)
}

func TestGenerateCancelledBeforeRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{}
	g := New(fr, out, quietLog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := g.Generate(ctx, form("https://example.com"))
	require.ErrorIs(t, res.Err, ErrRenderFailure)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Empty(t, fr.calls)
	assert.NoFileExists(t, out)
}

// A request cancelled while another generation holds the output is dropped
// once it gets its turn.
func TestGenerateCancelledWhileWaiting(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{}
	g := New(fr, out, quietLog())

	ctx, cancel := context.WithCancel(context.Background())
	g.mu.Lock()
	done := make(chan Result, 1)
	go func() { done <- g.Generate(ctx, form("https://example.com")) }()
	cancel()
	g.mu.Unlock()

	res := <-done
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Empty(t, fr.calls)
}

func TestGenerateSaveFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", DefaultOutput)
	g := New(&fakeRenderer{}, out, quietLog())

	res := g.Generate(context.Background(), form("https://example.com"))
	require.ErrorIs(t, res.Err, ErrRenderFailure)
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
	assert.Contains(t, res.Notice.Message, "QR generation failed:\nsave ")
}

func TestGenerateOverwrites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, DefaultOutput)
	g := New(&fakeRenderer{}, out, quietLog())

	first := form("https://first.example")
	require.NoError(t, g.Generate(context.Background(), first).Err)

	second := form("https://second.example")
	second.Eye = "circle"
	second.Body = "lines"
	second.Foreground = "#FF0000"
	require.NoError(t, g.Generate(context.Background(), second).Err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "https://second.example|circle|lines|#ff0000", string(data))
}

func TestGenerateRealRendererOverwrites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, DefaultOutput)
	r, err := render.NewStyledRenderer(render.DefaultOptions())
	require.NoError(t, err)
	g := New(r, out, quietLog())

	require.NoError(t, g.Generate(context.Background(), form("https://example.com")).Err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	f := form("https://example.com")
	f.Eye = "circle"
	f.Body = "dotted"
	require.NoError(t, g.Generate(context.Background(), f).Err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateConcurrentCallsSerialize(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutput)
	fr := &fakeRenderer{}
	g := New(fr, out, quietLog())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Generate(context.Background(), form("https://example.com")).Err)
		}()
	}
	wg.Wait()
	assert.Len(t, fr.calls, 8)
}

func TestNewDefaults(t *testing.T) {
	g := New(&fakeRenderer{}, "", nil)
	assert.Equal(t, DefaultOutput, g.Output())
}

func TestNotifyUnknownError(t *testing.T) {
	n := Notify(errors.New("boom"), DefaultOutput)
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "QR generation failed:\nboom", n.Message)
}
