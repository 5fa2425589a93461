package buffer

import (
	"slices"

	"github.com/bietkhonhungvandi212/memphy/internal/storage/page"
)

// freeStack holds free frames. The last pushed frame is the first popped.
type freeStack struct {
	frames []page.Frame
}

func newFreeStack(size int) freeStack {
	return freeStack{frames: make([]page.Frame, 0, size)}
}

// push returns a frame to the top of the stack.
func (fs *freeStack) push(frame page.Frame) {
	fs.frames = append(fs.frames, frame)
}

// pop takes the frame on top of the stack.
func (fs *freeStack) pop() (page.Frame, bool) {
	n := len(fs.frames)
	if n == 0 {
		return page.InvalidFrame, false
	}
	frame := fs.frames[n-1]
	fs.frames = fs.frames[:n-1]
	return frame, true
}

func (fs *freeStack) len() int {
	return len(fs.frames)
}

// snapshot lists frames in the order pop would return them.
func (fs *freeStack) snapshot() []page.Frame {
	out := slices.Clone(fs.frames)
	slices.Reverse(out)
	return out
}

// usedQueue holds used frame records in insertion order.
type usedQueue[O any] struct {
	records []UsedFrame[O]
}

func newUsedQueue[O any](size int) usedQueue[O] {
	return usedQueue[O]{records: make([]UsedFrame[O], 0, size)}
}

func (uq *usedQueue[O]) pushBack(rec UsedFrame[O]) {
	uq.records = append(uq.records, rec)
}

func (uq *usedQueue[O]) popFront() (UsedFrame[O], bool) {
	if len(uq.records) == 0 {
		return UsedFrame[O]{Frame: page.InvalidFrame}, false
	}
	rec := uq.records[0]
	uq.records = slices.Delete(uq.records, 0, 1)
	return rec, true
}

// remove drops the first record for frame.
func (uq *usedQueue[O]) remove(frame page.Frame) bool {
	idx := slices.IndexFunc(uq.records, func(rec UsedFrame[O]) bool {
		return rec.Frame == frame
	})
	if idx == -1 {
		return false
	}
	uq.records = slices.Delete(uq.records, idx, idx+1)
	return true
}

func (uq *usedQueue[O]) len() int {
	return len(uq.records)
}

func (uq *usedQueue[O]) snapshot() []UsedFrame[O] {
	return slices.Clone(uq.records)
}
