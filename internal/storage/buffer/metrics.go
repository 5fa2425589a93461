package buffer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	freeFrames prometheus.Gauge
	usedFrames prometheus.Gauge

	acquired  prometheus.Counter
	released  prometheus.Counter
	exhausted prometheus.Counter
	evicted   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		freeFrames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "memphy",
			Name:      "free_frames",
			Help:      "number of frames in the free pool",
		}),
		usedFrames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "memphy",
			Name:      "used_frames",
			Help:      "number of records in the used pool",
		}),
		acquired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memphy",
			Name:      "frames_acquired",
			Help:      "number of frames taken from the free pool",
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memphy",
			Name:      "frames_released",
			Help:      "number of frames returned to the free pool",
		}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memphy",
			Name:      "pool_exhausted",
			Help:      "number of acquire calls that found the free pool empty",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memphy",
			Name:      "used_records_removed",
			Help:      "number of used records removed by take-any or by number",
		}),
	}
	if reg == nil {
		return m, nil
	}

	errs := errors.Join(
		reg.Register(m.freeFrames),
		reg.Register(m.usedFrames),
		reg.Register(m.acquired),
		reg.Register(m.released),
		reg.Register(m.exhausted),
		reg.Register(m.evicted),
	)
	return m, errs
}
