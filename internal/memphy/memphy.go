// Package memphy assembles a formatted storage device and the frame pool that
// tracks its frames. It is the physical memory handed to the virtual memory
// manager.
package memphy

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/memphy/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/memphy/internal/storage/device"
	"github.com/bietkhonhungvandi212/memphy/internal/storage/page"
	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

type settings struct {
	log *zap.Logger
	reg prometheus.Registerer
}

type Option func(*settings)

func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.reg = reg
	}
}

// Memory is a formatted device plus its frame pool. O is the owner handle type
// of the virtual memory manager.
type Memory[O any] struct {
	dev  *device.Device
	pool *buffer.FramePool[O]
	log  *zap.Logger
}

func New[O any](opts util.Options, options ...Option) (*Memory[O], error) {
	s := settings{log: zap.NewNop()}
	for _, opt := range options {
		opt(&s)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("[memphy] %w", err)
	}

	dev, err := device.NewDevice(opts.Capacity, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("[memphy] create device: %w", err)
	}
	n, err := dev.Format(opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("[memphy] %w", err)
	}

	pool, err := buffer.NewFramePool[O](dev.FrameNumbers(),
		buffer.WithLogger(s.log.Named("pool")),
		buffer.WithRegisterer(s.reg),
		buffer.WithRecordLimit(opts.RecordLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("[memphy] create frame pool: %w", err)
	}

	s.log.Info("physical memory ready",
		zap.Int("capacity", opts.Capacity),
		zap.Int("pageSize", opts.PageSize),
		zap.Int("frames", n),
		zap.Stringer("mode", opts.Mode),
	)
	return &Memory[O]{dev: dev, pool: pool, log: s.log}, nil
}

func (m *Memory[O]) Device() *device.Device {
	return m.dev
}

func (m *Memory[O]) Pool() *buffer.FramePool[O] {
	return m.pool
}

// Allocate takes a free frame and records owner as its holder.
func (m *Memory[O]) Allocate(owner O) (page.Frame, error) {
	frame, err := m.pool.AcquireFreeFrame()
	if err != nil {
		return page.InvalidFrame, err
	}
	if err := m.pool.RecordUsed(frame, owner); err != nil {
		m.pool.ReleaseFrame(frame)
		return page.InvalidFrame, err
	}
	return frame, nil
}

// Free drops the ownership record of frame and returns it to the free pool.
func (m *Memory[O]) Free(frame page.Frame) error {
	return m.pool.Reclaim(frame)
}

/* FRAME RELATIVE ACCESS */
func (m *Memory[O]) ReadFrame(frame page.Frame, offset int) (byte, error) {
	addr, err := m.address(frame, offset)
	if err != nil {
		return 0, fmt.Errorf("[ReadFrame] %w", err)
	}
	return m.dev.Read(addr)
}

func (m *Memory[O]) WriteFrame(frame page.Frame, offset int, value byte) error {
	addr, err := m.address(frame, offset)
	if err != nil {
		return fmt.Errorf("[WriteFrame] %w", err)
	}
	return m.dev.Write(addr, value)
}

func (m *Memory[O]) Dump(w io.Writer) error {
	return m.dev.Dump(w)
}

func (m *Memory[O]) address(frame page.Frame, offset int) (int, error) {
	pageSize := m.dev.PageSize()
	if !frame.Valid() || int(frame) >= m.dev.FrameCount() {
		return 0, fmt.Errorf("%w: %s", util.ErrAddressOutOfBounds, frame)
	}
	if offset < 0 || offset >= pageSize {
		return 0, fmt.Errorf("%w: offset %d in %s", util.ErrAddressOutOfBounds, offset, frame)
	}
	return frame.Address(pageSize, offset), nil
}
