package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/effectview/pkg/rendering"
)

func boxPainter(color rendering.Color, width float64) Painter {
	return PainterFunc(func(c rendering.Canvas) {
		c.Save()
		c.ClipRect(rendering.RectFromLTWH(0, 0, width, 50))
		c.DrawRect(rendering.RectFromLTWH(0, 0, width, 50), rendering.FillPaint(color))
		c.Restore()
	})
}

func TestRecordSerializesOps(t *testing.T) {
	ops := Record(rendering.Size{Width: 10, Height: 10}, func(c rendering.Canvas) {
		c.DrawRRect(
			rendering.RRectFromRectAndRadius(rendering.RectFromLTWH(1, 1, 8, 8), rendering.CircularRadius(2)),
			rendering.StrokePaint(rendering.ColorRed, 1.25),
		)
		c.DrawArc(rendering.RectFromLTWH(0, 0, 10, 10), -90, 120, rendering.StrokePaint(rendering.ColorBlue, 2))
	})
	if got := strings.Join(OpNames(ops), ","); got != "drawRRect,drawArc" {
		t.Fatalf("ops = %s", got)
	}
	rr := ops[0].Params
	if rr["color"] != "0xFFFF0000" || rr["style"] != "stroke" || rr["strokeWidth"] != 1.25 {
		t.Errorf("drawRRect params = %s", FormatOp(ops[0]))
	}
	if ops[1].Params["sweep"] != 120.0 || ops[1].Params["start"] != -90.0 {
		t.Errorf("drawArc params = %s", FormatOp(ops[1]))
	}
}

func TestFilterOps(t *testing.T) {
	ops := Record(rendering.Size{}, boxPainter(rendering.ColorRed, 50).Draw)
	if n := len(FilterOps(ops, "drawRect")); n != 1 {
		t.Errorf("drawRect count = %d", n)
	}
	if n := len(FilterOps(ops, "drawCircle")); n != 0 {
		t.Errorf("drawCircle count = %d", n)
	}
}

func TestCaptureSnapshot_ReplaysDisplayList(t *testing.T) {
	snap := CaptureSnapshot(rendering.Size{Width: 50, Height: 50}, boxPainter(rendering.ColorGreen, 50))
	if got := strings.Join(OpNames(snap.DisplayOps), ","); got != "save,clipRect,drawRect,restore" {
		t.Errorf("ops = %s", got)
	}
	if snap.Size != [2]float64{50, 50} {
		t.Errorf("size = %v", snap.Size)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	size := rendering.Size{Width: 50, Height: 50}
	a := CaptureSnapshot(size, boxPainter(rendering.ColorRed, 50))
	b := CaptureSnapshot(size, boxPainter(rendering.ColorRed, 50))
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}

	c := CaptureSnapshot(size, boxPainter(rendering.ColorBlue, 30))
	if diff := a.Diff(c); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := CaptureSnapshot(rendering.Size{Width: 80, Height: 40}, boxPainter(rendering.ColorWhite, 80))
	snap.State = map[string]string{"shape.mode": "3"}

	path := filepath.Join(t.TempDir(), "testdata", "box.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := CaptureSnapshot(rendering.Size{Width: 50, Height: 50}, boxPainter(rendering.ColorRed, 50))

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	size := rendering.Size{Width: 50, Height: 50}
	first := CaptureSnapshot(size, boxPainter(rendering.ColorRed, 50))

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	second := CaptureSnapshot(size, boxPainter(rendering.ColorBlue, 20))
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := CaptureSnapshot(rendering.Size{Width: 60, Height: 30}, boxPainter(rendering.ColorBlack, 60))
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
