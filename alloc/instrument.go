package alloc

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/layout"
)

// Instrumented wraps an Allocator and records its traffic as Prometheus
// metrics under the given namespace and subsystem "allocator".
type Instrumented struct {
	next     slicedst.Allocator
	allocs   prometheus.Counter
	frees    prometheus.Counter
	failures prometheus.Counter
	bytes    prometheus.Counter
	inUse    prometheus.Gauge
}

// Instrument registers the metrics with reg and returns the wrapper.
// A nil reg uses prometheus.DefaultRegisterer.
func Instrument(next slicedst.Allocator, reg prometheus.Registerer, namespace string) (*Instrumented, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	opts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      name,
			Help:      help,
		}
	}
	in := &Instrumented{
		next:     next,
		allocs:   prometheus.NewCounter(opts("allocations_total", "Blocks handed out.")),
		frees:    prometheus.NewCounter(opts("frees_total", "Blocks given back.")),
		failures: prometheus.NewCounter(opts("failures_total", "Allocation requests that failed.")),
		bytes:    prometheus.NewCounter(opts("allocated_bytes_total", "Bytes handed out.")),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "in_use_bytes",
			Help:      "Bytes handed out and not yet freed.",
		}),
	}
	for _, c := range []prometheus.Collector{in.allocs, in.frees, in.failures, in.bytes, in.inUse} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Alloc implements slicedst.Allocator.
func (in *Instrumented) Alloc(req slicedst.Request) (unsafe.Pointer, error) {
	ptr, err := in.next.Alloc(req)
	if err != nil {
		in.failures.Inc()
		return nil, err
	}
	size := float64(req.Layout().Size)
	in.allocs.Inc()
	in.bytes.Add(size)
	in.inUse.Add(size)
	return ptr, nil
}

// Free implements slicedst.Allocator.
func (in *Instrumented) Free(ptr unsafe.Pointer, l layout.Layout) {
	if ptr == nil {
		return
	}
	in.next.Free(ptr, l)
	in.frees.Inc()
	in.inUse.Sub(float64(l.Size))
}
