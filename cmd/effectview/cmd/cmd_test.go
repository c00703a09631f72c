package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/effectview/pkg/state"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for y := range 24 {
		for x := range 32 {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseRenderArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    renderOptions
		wantErr string
	}{
		{
			name: "separate values",
			args: []string{"--in", "a.png", "--out", "b.png", "--width", "10"},
			want: renderOptions{in: "a.png", out: "b.png", width: 10},
		},
		{
			name: "equals and single dash",
			args: []string{"-in=a.png", "-out=b.png", "-height=7", "-state=s.yaml", "-config=c.yaml"},
			want: renderOptions{in: "a.png", out: "b.png", height: 7, statePath: "s.yaml", configPath: "c.yaml"},
		},
		{name: "missing out", args: []string{"--in", "a.png"}, wantErr: "required"},
		{name: "bad width", args: []string{"--in", "a", "--out", "b", "--width", "0"}, wantErr: "positive integer"},
		{name: "dangling", args: []string{"--in"}, wantErr: "requires a value"},
		{name: "unknown flag", args: []string{"--in", "a", "--out", "b", "--fast"}, wantErr: "requires a value"},
		{name: "unknown flag with value", args: []string{"--fast=1"}, wantErr: "unknown flag --fast"},
		{name: "positional", args: []string{"a.png"}, wantErr: "unexpected argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRenderArgs(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderWritesPNGAndState(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	in := writeInput(t, dir)
	cfgPath := filepath.Join(dir, "effectview.yaml")
	cfg := "version: 1.0.0\nshape:\n  mode: solid-circle\n  solid_color: \"#ff000000\"\nblur:\n  mode: stack\n  radius: 2\nprogress:\n  mode: horizontal\n  value: 50\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	statePath := filepath.Join(dir, "state.yaml")

	err := run([]string{"render", "--in", in, "--out", out, "--config", cfgPath, "--width", "40", "--height", "40", "--state", statePath})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 40) {
		t.Errorf("output bounds = %v", img.Bounds())
	}
	if r, g, b, a := img.At(0, 0).RGBA(); r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("corner = %v, want opaque black", img.At(0, 0))
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := state.DecodeBundle(data)
	if err != nil {
		t.Fatal(err)
	}
	if bundle.Int("shape.mode", -1) != 6 || bundle.Int("blur.mode", -1) != 4 || bundle.Float32("progress.value", 0) != 50 {
		t.Errorf("state = %v", bundle.Keys())
	}
}

func TestRenderMissingInput(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	err := run([]string{"render", "--in", filepath.Join(dir, "nope.png"), "--out", filepath.Join(dir, "out.png"), "--config", filepath.Join(dir, "none.yaml")})
	if err == nil {
		t.Fatal("render of missing files succeeded")
	}
}

func TestModesListsEveryEnumeration(t *testing.T) {
	out := captureStdout(t)
	if err := run([]string{"modes"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"gaussian", "stack", "solid_oval", "center_crop", "vertical", "FALLBACK"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("modes output missing %q", want)
		}
	}
}

func TestRunDispatch(t *testing.T) {
	out := captureStdout(t)
	if err := run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out.String())
	}

	out.Reset()
	if err := run(nil); err != nil || !strings.Contains(out.String(), "Commands:") {
		t.Errorf("no-arg run: err %v output %q", err, out.String())
	}

	out.Reset()
	if err := run([]string{"render", "--help"}); err != nil || !strings.Contains(out.String(), "--state PATH") {
		t.Errorf("render help: err %v output %q", err, out.String())
	}

	if err := run([]string{"frobnicate"}); err == nil {
		t.Error("unknown command succeeded")
	}
}
