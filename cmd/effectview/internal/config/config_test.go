package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/effectview/pkg/blur"
	efxerrors "github.com/go-drift/effectview/pkg/errors"
	"github.com/go-drift/effectview/pkg/imageview"
	"github.com/go-drift/effectview/pkg/progress"
	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/shape"
)

const sample = `version: 1.0.0
shape:
  mode: circle
  padding: 4
  border_width: 2
  border_color: "#ffffffff"
  scale_type: center-crop
blur:
  mode: 1
  radius: 8
  down_sampling_rate: 2
  static: true
progress:
  mode: Circular
  value: 40
  thickness: 6
  color: "#ff2196f3"
`

type configHandler struct{ errs []*efxerrors.EffectError }

func (h *configHandler) HandleError(err *efxerrors.EffectError) { h.errs = append(h.errs, err) }
func (h *configHandler) HandlePanic(*efxerrors.PanicError)      {}

func captureReports(t *testing.T) *configHandler {
	t.Helper()
	h := &configHandler{}
	old := efxerrors.DefaultHandler
	efxerrors.SetHandler(h)
	t.Cleanup(func() { efxerrors.SetHandler(old) })
	return h
}

func TestParseAppliesEverySection(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v := imageview.New(cfg.ViewOptions()...)
	defer v.Close()

	if got := v.Shape().Mode(); got != shape.Circle {
		t.Errorf("shape mode = %v", got)
	}
	so := v.Shape().Options()
	if so.InnerPadding() != 4 || so.BorderWidth() != 2 || so.BorderColor() != rendering.ColorWhite || so.ScaleType() != shape.CenterCrop {
		t.Errorf("shape options = %v %v %v %v", so.InnerPadding(), so.BorderWidth(), so.BorderColor(), so.ScaleType())
	}
	if so.Ratio() != 1 || so.SolidColor() != rendering.ColorWhite {
		t.Errorf("unset shape fields changed: ratio %v solid %v", so.Ratio(), so.SolidColor())
	}

	if v.Blur().Mode() != blur.Gaussian || v.Blur().Radius() != 8 {
		t.Errorf("blur = %v radius %v", v.Blur().Mode(), v.Blur().Radius())
	}
	bo := v.Blur().Options()
	if bo.DownSamplingRate() != 2 || !bo.StaticBlur() || !bo.SoftwareFallback() {
		t.Errorf("blur options = %v %v %v", bo.DownSamplingRate(), bo.StaticBlur(), bo.SoftwareFallback())
	}

	if v.Progress().Mode() != progress.Circular {
		t.Errorf("progress mode = %v", v.Progress().Mode())
	}
	if po := v.Progress().Options(); po.Thickness() != 6 || po.Max() != progress.DefaultMax {
		t.Errorf("progress options = %v %v", po.Thickness(), po.Max())
	}
	if cfg.Progress.Value != 40 {
		t.Errorf("progress value = %v", cfg.Progress.Value)
	}
}

func TestUnknownModeDefaultsAndReports(t *testing.T) {
	h := captureReports(t)
	cfg, err := Parse([]byte("shape:\n  mode: hexagon\nblur:\n  mode: 42\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := imageview.New(cfg.ViewOptions()...)
	defer v.Close()

	if v.Shape().Mode() != shape.DefaultMode {
		t.Errorf("shape mode = %v", v.Shape().Mode())
	}
	if v.Blur().Mode() != blur.DefaultMode {
		t.Errorf("blur mode = %v", v.Blur().Mode())
	}
	if len(h.errs) != 1 || h.errs[0].Kind != efxerrors.KindConfig || !strings.Contains(h.errs[0].Error(), "hexagon") {
		t.Errorf("reports = %v", h.errs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty", "", ""},
		{"bare major", "version: 1", ""},
		{"prefixed", "version: v1.2.3", ""},
		{"major two", "version: 2.0.0", "unsupported config version v2"},
		{"garbage", "version: one", "invalid version"},
		{"bad color", "progress:\n  color: blue", "progress.color"},
		{"mode mapping", "blur:\n  mode: {name: box}", "mode must be a name or an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Shape.Mode.Set || cfg.Version != "" {
		t.Errorf("missing file gave %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Shape.Mode.Name != "circle" || !cfg.Blur.Mode.IsInt || cfg.Blur.Mode.Value != 1 {
		t.Errorf("modes = %+v %+v", cfg.Shape.Mode, cfg.Blur.Mode)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("version: 3.0.0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(dir); err == nil || !strings.Contains(err.Error(), FileName) {
		t.Errorf("bad version error = %v", err)
	}
}
