package graph_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/vsariola/hotpluck"
	"github.com/vsariola/hotpluck/graph"
)

// tagUnit emits (v, 2*v) every tick, so a torn frame mixing two units is
// detectable from the frame alone.
type tagUnit struct {
	v float32
}

func (u *tagUnit) NextSample() (left, right float32) { return u.v, 2 * u.v }

func TestHostEmptySlotIsSilent(t *testing.T) {
	h := graph.NewHost(0)
	for i := 0; i < 16; i++ {
		l, r := h.PullFrame()
		if l != 0 || r != 0 {
			t.Fatalf("empty host rendered (%v, %v), expected silence", l, r)
		}
	}
}

func TestHostInstallReturnsDisplacedUnit(t *testing.T) {
	h := graph.NewHost(0)
	a, b := &tagUnit{v: 1}, &tagUnit{v: 2}
	if old := h.Install(a); old != nil {
		t.Fatalf("first install returned %v, expected nil", old)
	}
	if old := h.Install(b); old != hotpluck.Unit(a) {
		t.Fatalf("second install returned %v, expected the first unit", old)
	}
	if old := h.Install(nil); old != hotpluck.Unit(b) {
		t.Fatalf("emptying install returned %v, expected the second unit", old)
	}
	if l, r := h.PullFrame(); l != 0 || r != 0 {
		t.Fatalf("emptied host rendered (%v, %v), expected silence", l, r)
	}
}

func TestHostPansInstalledUnit(t *testing.T) {
	h := graph.NewHost(0)
	h.Install(&tagUnit{v: 1})
	l, r := h.PullFrame()
	c := float32(math.Sqrt2 / 2)
	if math.Abs(float64(l-c)) > 1e-6 || math.Abs(float64(r-2*c)) > 1e-6 {
		t.Fatalf("center pan rendered (%v, %v), expected (%v, %v)", l, r, c, 2*c)
	}
}

// TestHostSwapAtomicity checks that under concurrent installs and pulls
// every frame comes from exactly one unit: with tagUnits, right must always
// be exactly twice left, and the center panner scales both channels by the
// same gain so the invariant survives it. The race detector is an additional
// oracle here; run with go test -race.
func TestHostSwapAtomicity(t *testing.T) {
	h := graph.NewHost(0)
	h.Install(&tagUnit{v: 1})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		v := float32(2)
		for {
			select {
			case <-stop:
				return
			default:
			}
			h.Install(&tagUnit{v: v})
			v++
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			l, r := h.PullFrame()
			if r != 2*l {
				t.Errorf("torn frame (%v, %v): right is not twice left", l, r)
				return
			}
		}
	}()

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()
}

// seqUnit reports the order in which it was installed.
type seqUnit struct {
	seq int32
}

func (u *seqUnit) NextSample() (left, right float32) { return float32(u.seq), float32(u.seq) }

// TestHostInstallOrdering checks the visibility guarantee: once Install(Y)
// has returned, no pull observes a unit installed before Y. The puller
// asserts that the sequence numbers it sees never decrease; the fixed pan
// gain scales them but keeps their order.
func TestHostInstallOrdering(t *testing.T) {
	h := graph.NewHost(0)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for seq := int32(0); ; seq++ {
			select {
			case <-stop:
				return
			default:
			}
			h.Install(&seqUnit{seq: seq})
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		last := float32(-1)
		for {
			select {
			case <-stop:
				return
			default:
			}
			l, _ := h.PullFrame()
			if l < last {
				t.Errorf("pull observed unit %v after unit %v", l, last)
				return
			}
			last = l
		}
	}()

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()
}

// TestHostPullFrameAllocations is the allocation guard for the real-time
// path: pulling frames must not allocate, with or without a concurrent
// installer running.
func TestHostPullFrameAllocations(t *testing.T) {
	h := graph.NewHost(0)
	h.Install(&tagUnit{v: 1})
	allocs := testing.AllocsPerRun(100, func() {
		for i := 0; i < 4096; i++ {
			h.PullFrame()
		}
	})
	if allocs != 0 {
		t.Errorf("PullFrame allocated %v times per 4096 frames, expected 0", allocs)
	}
}

func TestPannerEqualPower(t *testing.T) {
	for _, pan := range []float32{-1, -0.5, 0, 0.5, 1} {
		p := graph.NewPanner(pan)
		l, r := p.Process(1, 1)
		power := float64(l*l + r*r)
		if math.Abs(power-1) > 1e-5 {
			t.Errorf("pan %v: total power %v, expected 1", pan, power)
		}
	}
}

func TestPannerExtremes(t *testing.T) {
	l, r := graph.NewPanner(-1).Process(1, 1)
	if math.Abs(float64(l-1)) > 1e-6 || math.Abs(float64(r)) > 1e-6 {
		t.Errorf("hard left rendered (%v, %v), expected (1, 0)", l, r)
	}
	l, r = graph.NewPanner(1).Process(1, 1)
	if math.Abs(float64(l)) > 1e-6 || math.Abs(float64(r-1)) > 1e-6 {
		t.Errorf("hard right rendered (%v, %v), expected (0, 1)", l, r)
	}
	// out-of-range positions clamp
	l, _ = graph.NewPanner(-7).Process(1, 1)
	if math.Abs(float64(l-1)) > 1e-6 {
		t.Errorf("clamped pan rendered left %v, expected 1", l)
	}
}
