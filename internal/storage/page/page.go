package page

import "fmt"

// Frame is the index of a fixed-size page frame on a storage device.
type Frame int

// InvalidFrame is returned alongside an error when no frame could be produced.
const InvalidFrame = Frame(-1)

// Valid returns true if this is a valid frame.
func (f Frame) Valid() bool {
	return f >= 0
}

func (f Frame) String() string {
	return fmt.Sprintf("frame#%d", int(f))
}

// Address returns the absolute byte address of offset inside this frame.
func (f Frame) Address(pageSize, offset int) int {
	return int(f)*pageSize + offset
}

// Of returns the frame holding addr and the offset of addr inside it.
func Of(addr, pageSize int) (Frame, int) {
	return Frame(addr / pageSize), addr % pageSize
}

// Count returns how many whole frames of pageSize fit in capacity.
// Remainder bytes are not addressed by any frame.
func Count(capacity, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return capacity / pageSize
}

// Sequence returns frames 0..n-1 in ascending order.
func Sequence(n int) []Frame {
	if n <= 0 {
		return nil
	}
	frames := make([]Frame, n)
	for i := range n {
		frames[i] = Frame(i)
	}
	return frames
}
