package device

import "io"

// Storage is the byte-level view of a device used by address translation.
type Storage interface {
	Read(addr int) (byte, error)
	Write(addr int, value byte) error
	Capacity() int
}

// Formatter splits a storage device into page frames.
type Formatter interface {
	Format(pageSize int) (int, error)
	Dump(w io.Writer) error
}

var (
	_ Storage   = (*Device)(nil)
	_ Formatter = (*Device)(nil)
)
