package blur

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// StackAlgorithm is a portable stack blur. Each pass splits the image into
// bands of rows (then columns) processed by up to Request.NumThreads
// goroutines; Blur returns only after every band is done.
//
// The kernel is triangular: a pixel at distance d from the centre weighs
// radius+1-d, which approximates a Gaussian at box-blur cost.
type StackAlgorithm struct{}

// Blur implements Algorithm.
func (StackAlgorithm) Blur(src *image.RGBA, req Request) (*image.RGBA, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(b)
	if w == 0 || h == 0 {
		return dst, nil
	}
	// A window wider than the image only repeats edge pixels.
	r := min(req.Radius, max(w, h))
	if r < 1 {
		copy(dst.Pix, src.Pix)
		return dst, nil
	}
	threads := req.NumThreads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	tmp := image.NewRGBA(b)
	err := forBands(h, threads, func(from, to int) {
		s := newStack(r)
		for y := from; y < to; y++ {
			s.line(src.Pix[y*src.Stride:], 4, tmp.Pix[y*tmp.Stride:], 4, w)
		}
	})
	if err != nil {
		return nil, err
	}
	err = forBands(w, threads, func(from, to int) {
		s := newStack(r)
		for x := from; x < to; x++ {
			s.line(tmp.Pix[x*4:], tmp.Stride, dst.Pix[x*4:], dst.Stride, h)
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// forBands splits [0, n) into at most threads contiguous bands and runs fn
// on each concurrently, waiting for all of them.
func forBands(n, threads int, fn func(from, to int)) error {
	threads = min(threads, n)
	if threads <= 1 {
		fn(0, n)
		return nil
	}
	var g errgroup.Group
	g.SetLimit(threads)
	band := (n + threads - 1) / threads
	for from := 0; from < n; from += band {
		to := min(from+band, n)
		g.Go(func() error {
			fn(from, to)
			return nil
		})
	}
	return g.Wait()
}

// stack is the per-goroutine ring buffer of one pass.
type stack struct {
	radius int
	ring   [][4]uint64
}

func newStack(radius int) *stack {
	return &stack{radius: radius, ring: make([][4]uint64, 2*radius+1)}
}

// line blurs n pixels read from in (step bytes apart) into out (outStep
// bytes apart). Reads beyond either end clamp to the edge pixel.
func (s *stack) line(in []uint8, step int, out []uint8, outStep int, n int) {
	r := s.radius
	div := 2*r + 1
	weight := uint64(r+1) * uint64(r+1)
	ring := s.ring

	px := func(i int) [4]uint64 {
		i = min(max(i, 0), n-1) * step
		return [4]uint64{uint64(in[i]), uint64(in[i+1]), uint64(in[i+2]), uint64(in[i+3])}
	}

	var sum, sumIn, sumOut [4]uint64
	first := px(0)
	for i := 0; i <= r; i++ {
		ring[i] = first
		for c := range 4 {
			sum[c] += first[c] * uint64(i+1)
			sumOut[c] += first[c]
		}
	}
	for i := 1; i <= r; i++ {
		v := px(i)
		ring[i+r] = v
		for c := range 4 {
			sum[c] += v[c] * uint64(r+1-i)
			sumIn[c] += v[c]
		}
	}

	sp := r
	for x := 0; x < n; x++ {
		o := x * outStep
		for c := range 4 {
			out[o+c] = uint8(sum[c] / weight)
			sum[c] -= sumOut[c]
		}

		start := sp + div - r
		if start >= div {
			start -= div
		}
		old := ring[start]
		v := px(x + r + 1)
		ring[start] = v
		for c := range 4 {
			sumOut[c] -= old[c]
			sumIn[c] += v[c]
			sum[c] += sumIn[c]
		}

		sp++
		if sp >= div {
			sp = 0
		}
		mid := ring[sp]
		for c := range 4 {
			sumOut[c] += mid[c]
			sumIn[c] -= mid[c]
		}
	}
}
