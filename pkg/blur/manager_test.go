package blur

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-drift/effectview/pkg/bitmap"
	"github.com/go-drift/effectview/pkg/logging"
	"github.com/go-drift/effectview/pkg/state"
)

var errSimulated = errors.New("simulated failure")

// countingAlgorithm records calls and returns a solid bitmap of the source
// size, or err when set.
type countingAlgorithm struct {
	calls atomic.Int32
	err   error
	fill  color.RGBA
}

func (a *countingAlgorithm) Blur(src *image.RGBA, req Request) (*image.RGBA, error) {
	a.calls.Add(1)
	if a.err != nil {
		return nil, a.err
	}
	dst := image.NewRGBA(src.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = a.fill.R, a.fill.G, a.fill.B, a.fill.A
	}
	return dst, nil
}

func newTestManager(t *testing.T, mode Mode, radius int, reg *Registry) *DrawerManager {
	t.Helper()
	m := NewDrawerManager(NewOptions(), mode, radius,
		WithRegistry(reg), WithPool(bitmap.NewPool(0)))
	t.Cleanup(m.Close)
	return m
}

func redDrawable() *bitmap.ColorDrawable {
	return &bitmap.ColorDrawable{Color: color.RGBA{R: 255, A: 255}, Width: 40, Height: 20}
}

// captureDebug routes the package logger into a buffer for one test.
func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := logging.Logger()
	t.Cleanup(func() { logging.SetLogger(orig) })
	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestBlurFallsBackOnFailure(t *testing.T) {
	failing := &countingAlgorithm{err: errSimulated}
	fallback := &countingAlgorithm{fill: color.RGBA{G: 255, A: 255}}
	reg := NewRegistry()
	reg.Register(Gaussian, failing)
	reg.Register(Stack, fallback)

	m := newTestManager(t, Gaussian, 5, reg)
	m.ChangeDrawable(redDrawable())

	out := m.Blur(5)
	if out == nil {
		t.Fatal("Blur returned nil")
	}
	if failing.calls.Load() != 1 || fallback.calls.Load() != 1 {
		t.Fatalf("calls: primary %d fallback %d", failing.calls.Load(), fallback.calls.Load())
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("result pixel = %v, want fallback output", got)
	}
}

func TestBlurWithoutSoftwareFallback(t *testing.T) {
	failing := &countingAlgorithm{err: errSimulated}
	fallback := &countingAlgorithm{}
	reg := NewRegistry()
	reg.Register(Gaussian, failing)
	reg.Register(Stack, fallback)

	m := newTestManager(t, Gaussian, 5, reg)
	m.Options().SetSoftwareFallback(false)
	m.ChangeDrawable(redDrawable())

	out := m.Blur(5)
	if fallback.calls.Load() != 0 {
		t.Error("fallback ran with software fallback disabled")
	}
	if out != m.Original() {
		t.Error("failed blur did not return the original")
	}
}

func TestBlurRecoversAlgorithmPanic(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Box, AlgorithmFunc(func(*image.RGBA, Request) (*image.RGBA, error) {
		panic("kernel exploded")
	}))
	reg.Register(Stack, StackAlgorithm{})

	m := newTestManager(t, Box, 2, reg)
	m.ChangeDrawable(redDrawable())
	if out := m.Blur(2); out == nil || out == m.Original() {
		t.Fatalf("Blur = %p, want the stack fallback result", out)
	}
}

func TestChangeDrawableSameReferenceReusesOriginal(t *testing.T) {
	m := newTestManager(t, Stack, 3, DefaultRegistry())
	m.SetSize(100, 100)
	d := redDrawable()

	m.ChangeDrawable(d)
	first := m.Original()
	if first == nil {
		t.Fatal("no original after ChangeDrawable")
	}
	m.ChangeDrawable(d)
	if m.Original() != first {
		t.Error("same drawable reallocated the original")
	}

	m.ChangeDrawable(&bitmap.ColorDrawable{Color: color.White, Width: 30, Height: 30})
	if b := m.Original().Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("new drawable original = %v", b)
	}
}

func TestChangeDrawableWhileDisabledStoresOnly(t *testing.T) {
	m := newTestManager(t, Disabled, 0, DefaultRegistry())
	d := redDrawable()
	m.ChangeDrawable(d)
	if m.Drawable() != d {
		t.Error("drawable not stored")
	}
	if m.Original() != nil {
		t.Error("disabled manager rasterised the drawable")
	}
}

func TestShouldBlur(t *testing.T) {
	tests := []struct {
		mode   Mode
		radius int
		want   bool
	}{
		{Disabled, 50, false},
		{Disabled, 0, false},
		{Gaussian, 0, false},
		{Gaussian, 5, true},
		{Stack, 1, true},
	}
	for _, tt := range tests {
		m := newTestManager(t, tt.mode, tt.radius, DefaultRegistry())
		if got := m.ShouldBlur(); got != tt.want {
			t.Errorf("ShouldBlur(%v, %d) = %v, want %v", tt.mode, tt.radius, got, tt.want)
		}
	}
}

func TestBlurredBitmapNeverNilOnFailure(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Mean, &countingAlgorithm{err: errSimulated})
	reg.Register(Stack, &countingAlgorithm{err: errSimulated})

	m := newTestManager(t, Mean, 4, reg)
	m.ChangeDrawable(redDrawable())

	out := m.BlurredBitmap()
	if out == nil {
		t.Fatal("BlurredBitmap returned nil")
	}
	if out != m.Original() {
		t.Error("BlurredBitmap did not return the original")
	}
}

func TestBlurUnavailableAlgorithm(t *testing.T) {
	m := newTestManager(t, Gaussian, 3, NewRegistry())
	m.ChangeDrawable(redDrawable())
	if out := m.Blur(3); out == nil || out != m.Original() {
		t.Error("unavailable algorithm did not degrade to the original")
	}
}

func TestStaticBlurCaches(t *testing.T) {
	alg := &countingAlgorithm{fill: color.RGBA{B: 255, A: 255}}
	reg := NewRegistry()
	reg.Register(Stack, alg)

	m := newTestManager(t, Stack, 4, reg)
	m.Options().SetStaticBlur(true)
	m.ChangeDrawable(redDrawable())

	first := m.Blur(4)
	if m.Original() != nil {
		t.Error("static blur kept the original")
	}
	if second := m.Blur(4); second != first {
		t.Error("static blur with the same radius recomputed")
	}
	if alg.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", alg.calls.Load())
	}

	if third := m.Blur(6); third == nil || third == first {
		t.Error("radius change did not produce a new blur")
	}
	if alg.calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", alg.calls.Load())
	}
}

func TestDynamicBlurRecomputes(t *testing.T) {
	alg := &countingAlgorithm{}
	reg := NewRegistry()
	reg.Register(Stack, alg)

	m := newTestManager(t, Stack, 2, reg)
	m.ChangeDrawable(redDrawable())
	m.Blur(2)
	m.BlurredBitmap()
	if alg.calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", alg.calls.Load())
	}
	if m.Radius() != 2 || m.LastRadius() != 2 {
		t.Errorf("radius = %d, last = %d", m.Radius(), m.LastRadius())
	}
}

func TestChangeModeDisabledReleases(t *testing.T) {
	m := newTestManager(t, Stack, 2, DefaultRegistry())
	m.ChangeDrawable(redDrawable())
	m.Blur(2)
	m.ChangeMode(Disabled, 2)
	if m.Original() != nil {
		t.Error("original kept after disabling")
	}
	if m.ShouldBlur() {
		t.Error("ShouldBlur after disabling")
	}
	m.ChangeMode(Mode(99), 1)
	if m.Mode() != DefaultMode {
		t.Errorf("unknown mode resolved to %v", m.Mode())
	}
}

func TestDownSamplingRateShrinksOriginal(t *testing.T) {
	m := newTestManager(t, Stack, 2, DefaultRegistry())
	m.SetSize(40, 20)
	m.ChangeDrawable(redDrawable())
	if b := m.Original().Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("original = %v", b)
	}
	m.Options().SetDownSamplingRate(4)
	if b := m.Original().Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("down-sampled original = %v", b)
	}
}

func TestCloseDetaches(t *testing.T) {
	opts := NewOptions()
	m := NewDrawerManager(opts, Stack, 2)
	m.ChangeDrawable(redDrawable())
	m.Close()
	if opts.notifier.Listener() != nil {
		t.Error("manager still attached after Close")
	}
	if m.Blur(2) != nil {
		t.Error("closed manager blurred")
	}
	opts.SetStaticBlur(true)
}

func TestManagerStateRoundTrip(t *testing.T) {
	src := newTestManager(t, Mean, 7, DefaultRegistry())
	src.Options().SetDownSamplingRate(2.5)
	src.Options().SetNumThreads(2)
	b := state.NewBundle()
	src.SaveState(b)

	dst := newTestManager(t, Disabled, 0, DefaultRegistry())
	dst.RestoreState(b)
	if dst.Mode() != Mean || dst.Radius() != 7 {
		t.Errorf("restored mode %v radius %d", dst.Mode(), dst.Radius())
	}
	if dst.Options().DownSamplingRate() != 2.5 || dst.Options().NumThreads() != 2 {
		t.Errorf("restored options rate %v threads %d",
			dst.Options().DownSamplingRate(), dst.Options().NumThreads())
	}

	b.PutInt(keyMode, 77)
	dst.RestoreState(b)
	if dst.Mode() != DefaultMode {
		t.Errorf("unknown persisted mode restored as %v", dst.Mode())
	}
}

func TestStackBlurHugeRadiusKeepsColor(t *testing.T) {
	m := newTestManager(t, Stack, 1, DefaultRegistry())
	m.ChangeDrawable(redDrawable())

	out := m.Blur(5000)
	if out == nil || out == m.Original() {
		t.Fatal("Blur(5000) did not produce a blurred bitmap")
	}
	want := color.RGBA{R: 255, A: 255}
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := out.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestChangeDrawableSameKeepsStaticResult(t *testing.T) {
	alg := &countingAlgorithm{fill: color.RGBA{B: 255, A: 255}}
	reg := NewRegistry()
	reg.Register(Stack, alg)

	m := newTestManager(t, Stack, 3, reg)
	m.Options().SetStaticBlur(true)
	d := redDrawable()
	m.ChangeDrawable(d)

	first := m.Blur(3)
	if first == nil || m.Original() != nil {
		t.Fatal("static blur did not release the original")
	}

	m.ChangeDrawable(d)
	if m.Original() == nil {
		t.Error("original not rebuilt")
	}
	if got := m.BlurredBitmap(); got != first {
		t.Error("cached blur discarded after ChangeDrawable with the same drawable")
	}
	if alg.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", alg.calls.Load())
	}
}

func TestBlurLogsReuseAndCacheHits(t *testing.T) {
	buf := captureDebug(t)
	alg := &countingAlgorithm{fill: color.RGBA{B: 255, A: 255}}
	reg := NewRegistry()
	reg.Register(Stack, alg)

	m := newTestManager(t, Stack, 2, reg)
	d := redDrawable()
	m.ChangeDrawable(d)
	m.ChangeDrawable(d)
	if !strings.Contains(buf.String(), "blur original reused") {
		t.Errorf("no reuse log in %q", buf.String())
	}

	m.Options().SetStaticBlur(true)
	m.Blur(2)
	m.Blur(2)
	if !strings.Contains(buf.String(), "blur cache hit") {
		t.Errorf("no cache hit log in %q", buf.String())
	}
}
