package progress

import (
	"math"
	"strings"
	"testing"

	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/state"
	efxtest "github.com/go-drift/effectview/pkg/testing"
)

func record(m *DrawerManager, view rendering.Rect) []efxtest.DisplayOp {
	return efxtest.Record(view.Size(), func(c rendering.Canvas) {
		m.Draw(c, view)
	})
}

func TestModeFromValue(t *testing.T) {
	for _, m := range Modes() {
		if FromValue(m.Value()) != m || ParseMode(m.String()) != m {
			t.Errorf("round trip of %v failed", m)
		}
	}
	for _, v := range []int{-1, 4, math.MaxInt32} {
		if FromValue(v) != Disabled {
			t.Errorf("FromValue(%d) = %v", v, FromValue(v))
		}
	}
	if ParseMode("  Circular ") != Circular || ParseMode("ring") != Disabled {
		t.Error("ParseMode normalisation")
	}
}

func TestSetProgressClamps(t *testing.T) {
	m := NewDrawerManager(nil, Horizontal)
	defer m.Close()

	tests := []struct {
		in, want float32
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 100},
	}
	for _, tt := range tests {
		m.SetProgress(tt.in)
		if got := m.Progress(); got != tt.want {
			t.Errorf("SetProgress(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	m.SetProgress(80)
	m.Options().SetMax(40)
	if m.Progress() != 40 || m.Fraction() != 1 {
		t.Errorf("after lowering max: progress %v fraction %v", m.Progress(), m.Fraction())
	}
	m.Options().SetMax(-1)
	if m.Options().Max() != DefaultMax || m.Fraction() != 0.4 {
		t.Errorf("max %v fraction %v", m.Options().Max(), m.Fraction())
	}
}

type countingListener struct{ aspects []Aspect }

func (l *countingListener) OptionsChanged(a Aspect) { l.aspects = append(l.aspects, a) }

func TestOptionsNotifyOncePerSetter(t *testing.T) {
	o := NewOptions()
	l := &countingListener{}
	o.SetListener(l)

	o.SetMax(100)
	o.SetThickness(-3)
	o.SetStartAngle(0)
	o.SetColor(rendering.ColorRed)
	o.SetTrackColor(rendering.ColorBlack)
	o.SetPadding(-1)

	want := []Aspect{AspectMax, AspectThickness, AspectStartAngle, AspectColor, AspectTrackColor, AspectPadding}
	if len(l.aspects) != len(want) {
		t.Fatalf("notifications = %v", l.aspects)
	}
	for i := range want {
		if l.aspects[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, l.aspects[i], want[i])
		}
	}
	if o.Thickness() != 0 || o.Padding() != 0 {
		t.Errorf("negatives stored: thickness %v padding %v", o.Thickness(), o.Padding())
	}
}

func TestCircularDrawer(t *testing.T) {
	m := NewDrawerManager(nil, Circular)
	defer m.Close()
	m.SetProgress(25)

	ops := record(m, rendering.RectFromLTWH(0, 0, 100, 80))
	if got := strings.Join(efxtest.OpNames(ops), ","); got != "drawCircle,drawArc" {
		t.Fatalf("ops = %s", got)
	}
	circle := ops[0].Params
	if circle["cx"] != 50.0 || circle["cy"] != 40.0 || circle["radius"] != 38.0 || circle["style"] != "stroke" {
		t.Errorf("track = %s", efxtest.FormatOp(ops[0]))
	}
	arc := ops[1].Params
	if arc["start"] != -90.0 || arc["sweep"] != 90.0 {
		t.Errorf("arc = %s", efxtest.FormatOp(ops[1]))
	}
	oval := arc["oval"].(map[string]any)
	if oval["left"] != 12.0 || oval["top"] != 2.0 || oval["right"] != 88.0 || oval["bottom"] != 78.0 {
		t.Errorf("oval = %v", oval)
	}

	m.SetProgress(0)
	if got := strings.Join(efxtest.OpNames(record(m, rendering.RectFromLTWH(0, 0, 100, 80))), ","); got != "drawCircle" {
		t.Errorf("empty progress ops = %s", got)
	}
}

func TestBarDrawers(t *testing.T) {
	view := rendering.RectFromLTWH(0, 0, 100, 50)
	tests := []struct {
		mode  Mode
		track rendering.Rect
		fill  rendering.Rect
	}{
		{Horizontal, rendering.Rect{Left: 5, Top: 41, Right: 95, Bottom: 45}, rendering.Rect{Left: 5, Top: 41, Right: 50, Bottom: 45}},
		{Vertical, rendering.Rect{Left: 5, Top: 5, Right: 9, Bottom: 45}, rendering.Rect{Left: 5, Top: 25, Right: 9, Bottom: 45}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			o := NewOptions()
			o.SetPadding(5)
			m := NewDrawerManager(o, tt.mode)
			defer m.Close()
			m.SetProgress(50)

			ops := efxtest.FilterOps(record(m, view), "drawRect")
			if len(ops) != 2 {
				t.Fatalf("drawRect count = %d", len(ops))
			}
			for i, want := range []rendering.Rect{tt.track, tt.fill} {
				r := ops[i].Params["rect"].(map[string]any)
				if r["left"] != want.Left || r["top"] != want.Top || r["right"] != want.Right || r["bottom"] != want.Bottom {
					t.Errorf("rect %d = %v, want %+v", i, r, want)
				}
			}
			if ops[1].Params["color"] != "0xFF2196F3" {
				t.Errorf("fill = %s", efxtest.FormatOp(ops[1]))
			}
		})
	}
}

func TestDisabledAndClosedDrawNothing(t *testing.T) {
	view := rendering.RectFromLTWH(0, 0, 40, 40)
	m := NewDrawerManager(nil, Disabled)
	m.SetProgress(50)
	if ops := record(m, view); len(ops) != 0 {
		t.Errorf("disabled drew %d ops", len(ops))
	}

	m.SetMode(Vertical)
	if ops := record(m, view); len(ops) == 0 {
		t.Error("vertical drew nothing")
	}
	m.Close()
	m.SetMode(Circular)
	if m.Mode() != Vertical {
		t.Errorf("closed manager changed mode to %v", m.Mode())
	}
	if ops := record(m, view); len(ops) != 0 {
		t.Errorf("closed manager drew %d ops", len(ops))
	}
}

func TestZeroThicknessDrawsNothing(t *testing.T) {
	o := NewOptions()
	o.SetThickness(0)
	for _, mode := range []Mode{Circular, Horizontal, Vertical} {
		m := NewDrawerManager(o, mode)
		m.SetProgress(50)
		if ops := record(m, rendering.RectFromLTWH(0, 0, 40, 40)); len(ops) != 0 {
			t.Errorf("%v drew %d ops", mode, len(ops))
		}
		m.Close()
	}
}

func TestStateRoundTrip(t *testing.T) {
	src := NewDrawerManager(nil, Vertical)
	defer src.Close()
	src.Options().SetMax(200)
	src.Options().SetThickness(6)
	src.Options().SetStartAngle(45)
	src.Options().SetTrackColor(rendering.RGBA(1, 2, 3, 4))
	src.SetProgress(150)

	b := state.NewBundle()
	src.SaveState(b)

	dst := NewDrawerManager(nil, Disabled)
	defer dst.Close()
	dst.RestoreState(b)

	if dst.Mode() != Vertical || dst.Progress() != 150 {
		t.Errorf("mode %v progress %v", dst.Mode(), dst.Progress())
	}
	o := dst.Options()
	if o.Max() != 200 || o.Thickness() != 6 || o.StartAngle() != 45 || o.TrackColor() != rendering.RGBA(1, 2, 3, 4) {
		t.Errorf("options = %v %v %v %v", o.Max(), o.Thickness(), o.StartAngle(), o.TrackColor())
	}
}

func TestOptionsBinary(t *testing.T) {
	o := NewOptions()
	o.SetMax(10)
	o.SetPadding(3)
	o.SetColor(rendering.ColorGreen)

	data, err := o.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != optionsSize {
		t.Fatalf("len = %d", len(data))
	}

	var got Options
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if got.Max() != 10 || got.Padding() != 3 || got.Color() != rendering.ColorGreen || got.StartAngle() != -90 {
		t.Errorf("decoded = %+v", &got)
	}
	if err := got.UnmarshalBinary(data[:5]); err == nil {
		t.Error("short input decoded")
	}
}
