package device

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/bietkhonhungvandi212/memphy/internal/storage/page"
	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

/**
* Device is the physical byte store that backs page frames.
* A random access device is addressed directly. A sequential device can only
* seek forward one byte at a time from position 0, wrapping at capacity.
**/
type Device struct {
	data     []byte
	capacity int
	mode     util.AccessMode

	// mu serializes cursor repositioning with the access that follows it.
	// Random access reads and writes do not take it.
	mu       sync.Mutex
	cursor   int
	pageSize int
	frames   int
}

func NewDevice(capacity int, mode util.AccessMode) (*Device, error) {
	if capacity <= 0 {
		return nil, util.ErrInvalidCapacity
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("[NewDevice] %w: %s", util.ErrUnsupportedMode, mode)
	}

	return &Device{
		data:     make([]byte, capacity),
		capacity: capacity,
		mode:     mode,
		cursor:   0,
	}, nil
}

func (d *Device) Capacity() int {
	return d.capacity
}

func (d *Device) Mode() util.AccessMode {
	return d.mode
}

func (d *Device) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// MoveCursor repositions the cursor of a sequential device to offset.
func (d *Device) MoveCursor(offset int) error {
	if d.mode != util.SequentialAccess {
		return fmt.Errorf("[MoveCursor] %w: %s", util.ErrUnsupportedMode, d.mode)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveCursor(offset)
	return nil
}

// moveCursor walks from 0 one step at a time, min(offset, capacity) steps.
// Caller must hold d.mu.
func (d *Device) moveCursor(offset int) {
	d.cursor = 0
	if d.capacity == 0 {
		return
	}
	for step := 0; step < offset && step < d.capacity; step++ {
		d.cursor = (d.cursor + 1) % d.capacity
	}
}

/* READ */
func (d *Device) Read(addr int) (byte, error) {
	if d.mode == util.SequentialAccess {
		return d.SequentialRead(addr)
	}
	if addr < 0 || addr >= d.capacity {
		return 0, fmt.Errorf("[Read] %w: %d", util.ErrAddressOutOfBounds, addr)
	}

	return d.data[addr], nil
}

func (d *Device) SequentialRead(addr int) (byte, error) {
	if d.mode != util.SequentialAccess {
		return 0, fmt.Errorf("[SequentialRead] %w: %s", util.ErrUnsupportedMode, d.mode)
	}
	if addr < 0 {
		return 0, fmt.Errorf("[SequentialRead] %w: %d", util.ErrAddressOutOfBounds, addr)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveCursor(addr)
	return d.data[d.cursor], nil
}

/* WRITE */
func (d *Device) Write(addr int, value byte) error {
	if d.mode == util.SequentialAccess {
		return d.SequentialWrite(addr, value)
	}
	if addr < 0 || addr >= d.capacity {
		return fmt.Errorf("[Write] %w: %d", util.ErrAddressOutOfBounds, addr)
	}

	d.data[addr] = value
	return nil
}

func (d *Device) SequentialWrite(addr int, value byte) error {
	if d.mode != util.SequentialAccess {
		return fmt.Errorf("[SequentialWrite] %w: %s", util.ErrUnsupportedMode, d.mode)
	}
	if addr < 0 {
		return fmt.Errorf("[SequentialWrite] %w: %d", util.ErrAddressOutOfBounds, addr)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveCursor(addr)
	d.data[d.cursor] = value
	return nil
}

/**
* FORMAT
* Splits the device into capacity/pageSize frames. Remainder bytes at the end
* belong to no frame. The frame numbers are handed to the allocator by the
* caller through FrameNumbers.
**/
func (d *Device) Format(pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, fmt.Errorf("[Format] %w: %d", util.ErrInvalidPageSize, pageSize)
	}
	n := page.Count(d.capacity, pageSize)
	if n <= 0 {
		return 0, fmt.Errorf("[Format] %w: %d bytes cannot hold a %d byte frame", util.ErrInvalidPageSize, d.capacity, pageSize)
	}

	d.mu.Lock()
	d.pageSize = pageSize
	d.frames = n
	d.mu.Unlock()

	return n, nil
}

// PageSize returns the frame size set by the last Format, or 0.
func (d *Device) PageSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pageSize
}

// FrameCount returns the number of frames set by the last Format, or 0.
func (d *Device) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// FrameNumbers lists every frame of the formatted device in ascending order.
func (d *Device) FrameNumbers() []page.Frame {
	return page.Sequence(d.FrameCount())
}

// Snapshot returns a copy of the device contents. Random-access writes take no
// lock, so on a random-access device Snapshot must not run concurrently with them.
func (d *Device) Snapshot() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]byte, len(d.data))
	copy(out, d.data)
	return out
}

/**
* DUMP
* Lists every non-zero byte in ascending address order.
* On a random-access device Dump must not run concurrently with writes.
**/
func (d *Device) Dump(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "================MEMORY CONTENT===============")
	fmt.Fprintln(bw, "Address:    Content ")
	for addr, b := range d.data {
		if b != 0 {
			fmt.Fprintf(bw, "0x%08x: %08x\n", addr, b)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("[Dump] flush: %w", err)
	}
	return nil
}
