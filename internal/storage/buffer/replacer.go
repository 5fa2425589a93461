package buffer

import "github.com/bietkhonhungvandi212/memphy/internal/storage/page"

// Allocator defines the frame lifecycle contract used by the virtual memory manager.
type Allocator[O any] interface {
	// Take a free frame. Returns util.ErrPoolExhausted when the caller has to evict first.
	AcquireFreeFrame() (page.Frame, error)
	ReleaseFrame(frame page.Frame)
	RecordUsed(frame page.Frame, owner O) error
	// Remove the oldest used record, for global victim selection.
	TakeAnyUsed() (UsedFrame[O], bool)
	RemoveUsedByNumber(frame page.Frame) bool
}

var _ Allocator[any] = (*FramePool[any])(nil)
