package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/wippyai/slicedst/alloc"
	"github.com/wippyai/slicedst/headerslice"
)

type demoConfig struct {
	arena   alloc.ArenaConfig
	metrics bool
}

// runDemo walks through the construction paths and prints what each one
// produced.
func runDemo(w io.Writer, r renderer, cfg demoConfig) error {
	step := func(title string) {
		fmt.Fprintf(w, "\n%s\n", r.style(titleStyle, title))
	}

	step("New(7, [10 20 30])")
	s := headerslice.New(uint32(7), 3, slices.Values([]uint32{10, 20, 30}))
	fmt.Fprintf(w, "stored len %d, header %d, payload %v\n", s.StoredLen(), *s.Header(), s.Slice())

	step("TryNew(7, 3, [10 20])")
	_, err := headerslice.TryNew(uint32(7), 3, slices.Values([]uint32{10, 20}))
	var te *headerslice.TryNewError[uint32]
	if !stderrors.As(err, &te) {
		return fmt.Errorf("expected a TryNewError, got %v", err)
	}
	fmt.Fprintf(w, "%s\nheader %d handed back\n", r.style(errorStyle, err.Error()), te.Header)

	step(`NewStr((), "héllo")`)
	str := headerslice.NewStr(struct{}{}, "héllo")
	fmt.Fprintf(w, "stored len %d, bytes % x, text %q\n", str.StoredLen(), str.Bytes(), str.String())

	step("Erase / Unerase")
	thin := headerslice.Erase(s)
	back := headerslice.Unerase(thin)
	fmt.Fprintf(w, "thin %p -> len %d, header %d, equal %v\n", thin.Addr(), back.Len(), *back.Header(), headerslice.Equal(s, back))

	step("Arena")
	reg := prometheus.NewRegistry()
	if err := arenaDemo(w, reg, cfg.arena); err != nil {
		return err
	}
	if cfg.metrics {
		step("Metrics")
		return writeMetrics(w, reg)
	}
	return nil
}

func arenaDemo(w io.Writer, reg *prometheus.Registry, cfg alloc.ArenaConfig) error {
	arena, err := alloc.NewArena(&cfg)
	if err != nil {
		return err
	}
	defer arena.Release()

	a, err := alloc.Instrument(arena, reg, "slicedst")
	if err != nil {
		return err
	}

	for n := range 4 {
		req, err := headerslice.RequestFor[uint16, uint64](n)
		if err != nil {
			return err
		}
		ptr, err := a.Alloc(req)
		if err != nil {
			return err
		}
		vals := make([]uint16, n)
		for i := range vals {
			vals[i] = uint16(i + 1)
		}
		hs := headerslice.CopyFromInto(ptr, uint64(n), vals)
		fmt.Fprintf(w, "block %p  %-24s header %d payload %v\n", ptr, req.Layout(), *hs.Header(), hs.Slice())
	}

	// a short source leaves the block to its owner; hand it back
	req, err := headerslice.RequestFor[uint16, uint64](3)
	if err != nil {
		return err
	}
	ptr, err := a.Alloc(req)
	if err != nil {
		return err
	}
	if _, ierr := headerslice.NewInto(ptr, 3, uint64(9), slices.Values([]uint16{1})); ierr != nil {
		fmt.Fprintf(w, "NewInto wrote %d of %d, header %d\n", ierr.WrittenLen, ierr.ExpectedLen, ierr.DropInPlace())
		a.Free(ptr, req.Layout())
	}

	fmt.Fprintf(w, "arena len %d, cap %d, peak %d\n", arena.Len(), arena.Cap(), arena.Peak())
	return nil
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%-45s %g\n", mf.GetName(), metricValue(mf.GetType(), m))
		}
	}
	return nil
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return 0
	}
}
