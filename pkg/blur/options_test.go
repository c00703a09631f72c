package blur

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/go-drift/effectview/pkg/options"
)

func TestDownSamplingRateClamp(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 1},
		{-3, 1},
		{0.5, 1},
		{1, 1},
		{1.5, 1.5},
		{8, 8},
		{float32(math.NaN()), 1},
	}
	o := NewOptions()
	for _, tt := range tests {
		o.SetDownSamplingRate(tt.in)
		if got := o.DownSamplingRate(); got != tt.want {
			t.Errorf("SetDownSamplingRate(%v) stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettersNotifyOnce(t *testing.T) {
	o := NewOptions()
	var got []Aspect
	o.SetListener(options.ListenerFunc[Aspect](func(a Aspect) {
		got = append(got, a)
	}))

	o.SetDownSamplingRate(2)
	o.SetStaticBlur(true)
	o.SetSoftwareFallback(false)
	o.SetNumThreads(3)
	// Unchanged values still notify.
	o.SetNumThreads(3)

	want := []Aspect{
		AspectDownSamplingRate,
		AspectStaticBlur,
		AspectSoftwareFallback,
		AspectNumThreads,
		AspectNumThreads,
	}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSettersWithoutListener(t *testing.T) {
	o := NewOptions()
	o.SetStaticBlur(true)
	if !o.StaticBlur() {
		t.Error("StaticBlur not stored")
	}
}

func TestOptionsBinaryRoundTrip(t *testing.T) {
	o := NewOptions()
	o.SetDownSamplingRate(2.5)
	o.SetStaticBlur(true)
	o.SetSoftwareFallback(false)
	o.SetNumThreads(4)

	data, err := o.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != optionsSize {
		t.Fatalf("len = %d, want %d", len(data), optionsSize)
	}

	got := NewOptions()
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if math.Float32bits(got.DownSamplingRate()) != math.Float32bits(2.5) {
		t.Errorf("rate = %v", got.DownSamplingRate())
	}
	if !got.StaticBlur() || got.SoftwareFallback() || got.NumThreads() != 4 {
		t.Errorf("decoded = static %v fallback %v threads %d",
			got.StaticBlur(), got.SoftwareFallback(), got.NumThreads())
	}
}

func TestOptionsUnmarshalShort(t *testing.T) {
	o := NewOptions()
	err := o.UnmarshalBinary([]byte{0, 0, 0x20, 0x40, 1})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want ErrUnexpectedEOF", err)
	}
	if o.DownSamplingRate() != 1 || o.StaticBlur() {
		t.Error("short input modified options")
	}
}
