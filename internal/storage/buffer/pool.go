package buffer

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/memphy/internal/storage/page"
	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

// UsedFrame ties a frame to the owner currently holding it.
// The pool stores Owner as-is and never manages its lifetime.
type UsedFrame[O any] struct {
	Frame page.Frame
	Owner O
}

type poolConfig struct {
	log         *zap.Logger
	reg         prometheus.Registerer
	recordLimit int
}

type Option func(*poolConfig)

// WithLogger sets the logger used for frame lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(c *poolConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRegisterer registers the pool metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *poolConfig) {
		c.reg = reg
	}
}

// WithRecordLimit bounds the used record storage. Zero means no bound.
func WithRecordLimit(limit int) Option {
	return func(c *poolConfig) {
		c.recordLimit = limit
	}
}

/**
* FramePool tracks which frames are free and which owner holds each used one.
* Free frames are handed out most-recently-freed first. Used records are kept
* in insertion order and TakeAnyUsed returns the oldest.
* Every method is atomic with respect to the others.
**/
type FramePool[O any] struct {
	mu          sync.Mutex
	free        freeStack
	used        usedQueue[O]
	recordLimit int

	log     *zap.Logger
	metrics *metrics
}

func NewFramePool[O any](frames []page.Frame, opts ...Option) (*FramePool[O], error) {
	cfg := poolConfig{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.recordLimit < 0 {
		return nil, util.ErrInvalidRecordLimit
	}

	m, err := newMetrics(cfg.reg)
	if err != nil {
		return nil, fmt.Errorf("[NewFramePool] register metrics: %w", err)
	}

	fp := &FramePool[O]{
		free:        newFreeStack(len(frames)),
		used:        newUsedQueue[O](len(frames)),
		recordLimit: cfg.recordLimit,
		log:         cfg.log,
		metrics:     m,
	}
	if err := fp.Initialize(frames); err != nil {
		return nil, err
	}

	return fp, nil
}

// Initialize pushes frames onto the free pool in the given order. Both pools
// must be empty.
func (fp *FramePool[O]) Initialize(frames []page.Frame) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if fp.free.len() != 0 || fp.used.len() != 0 {
		return util.ErrPoolInitialized
	}
	for _, f := range frames {
		fp.free.push(f)
	}

	fp.updateGauges()
	fp.log.Debug("frame pool initialized",
		zap.Int("frames", len(frames)),
		zap.Int("recordLimit", fp.recordLimit),
	)
	return nil
}

/* FREE POOL */
func (fp *FramePool[O]) AcquireFreeFrame() (page.Frame, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	frame, ok := fp.free.pop()
	if !ok {
		fp.metrics.exhausted.Inc()
		fp.log.Debug("free pool exhausted", zap.Int("used", fp.used.len()))
		return page.InvalidFrame, util.ErrPoolExhausted
	}

	fp.metrics.acquired.Inc()
	fp.updateGauges()
	fp.log.Debug("acquired frame", zap.Stringer("frame", frame), zap.Int("free", fp.free.len()))
	return frame, nil
}

// ReleaseFrame puts frame back on top of the free pool. It neither checks that
// frame was in use nor touches the used pool; see Reclaim for the checked move.
func (fp *FramePool[O]) ReleaseFrame(frame page.Frame) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	fp.free.push(frame)
	fp.metrics.released.Inc()
	fp.updateGauges()
	fp.log.Debug("released frame", zap.Stringer("frame", frame), zap.Int("free", fp.free.len()))
}

/* USED POOL */
func (fp *FramePool[O]) RecordUsed(frame page.Frame, owner O) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if fp.recordLimit > 0 && fp.used.len() >= fp.recordLimit {
		fp.log.Error("used record storage exhausted",
			zap.Stringer("frame", frame),
			zap.Int("recordLimit", fp.recordLimit),
		)
		return fmt.Errorf("[RecordUsed] %w: limit %d", util.ErrAllocationFailure, fp.recordLimit)
	}

	fp.used.pushBack(UsedFrame[O]{Frame: frame, Owner: owner})
	fp.updateGauges()
	return nil
}

func (fp *FramePool[O]) TakeAnyUsed() (UsedFrame[O], bool) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	rec, ok := fp.used.popFront()
	if !ok {
		return rec, false
	}

	fp.metrics.evicted.Inc()
	fp.updateGauges()
	fp.log.Debug("took used frame", zap.Stringer("frame", rec.Frame))
	return rec, true
}

func (fp *FramePool[O]) RemoveUsedByNumber(frame page.Frame) bool {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if !fp.used.remove(frame) {
		return false
	}

	fp.metrics.evicted.Inc()
	fp.updateGauges()
	return true
}

// Reclaim moves frame from the used pool to the free pool in one step.
// It fails with util.ErrFrameNotUsed when no record for frame exists.
func (fp *FramePool[O]) Reclaim(frame page.Frame) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if !fp.used.remove(frame) {
		return fmt.Errorf("[Reclaim] %w: %s", util.ErrFrameNotUsed, frame)
	}
	fp.free.push(frame)

	fp.metrics.evicted.Inc()
	fp.metrics.released.Inc()
	fp.updateGauges()
	return nil
}

// FreeFrames lists free frames in the order they would be acquired.
func (fp *FramePool[O]) FreeFrames() []page.Frame {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.free.snapshot()
}

// UsedFrames lists used records oldest first.
func (fp *FramePool[O]) UsedFrames() []UsedFrame[O] {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.used.snapshot()
}

func (fp *FramePool[O]) FreeCount() int {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.free.len()
}

func (fp *FramePool[O]) UsedCount() int {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.used.len()
}

// ===================== HELPER FUNCTION =====================
// updateGauges must be called with fp.mu held.
func (fp *FramePool[O]) updateGauges() {
	fp.metrics.freeFrames.Set(float64(fp.free.len()))
	fp.metrics.usedFrames.Set(float64(fp.used.len()))
}
