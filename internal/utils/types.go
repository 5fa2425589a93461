package util

import (
	"fmt"
	"strings"
)

// PageSize is the default frame size of the paging simulator.
const PageSize = 256

// AccessMode selects how a storage device is addressed.
type AccessMode int

const (
	RandomAccess AccessMode = iota
	SequentialAccess
)

func (m AccessMode) String() string {
	switch m {
	case RandomAccess:
		return "random"
	case SequentialAccess:
		return "sequential"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known modes.
func (m AccessMode) Valid() bool {
	return m == RandomAccess || m == SequentialAccess
}

// ParseAccessMode accepts "random" or "sequential" (case insensitive).
func ParseAccessMode(s string) (AccessMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "rdm", "":
		return RandomAccess, nil
	case "sequential", "seq":
		return SequentialAccess, nil
	default:
		return RandomAccess, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

// MarshalText lets AccessMode round-trip through config files.
func (m AccessMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *AccessMode) UnmarshalText(text []byte) error {
	mode, err := ParseAccessMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Options represents physical memory configuration options
type Options struct {
	Capacity        int        `yaml:"capacity"`
	PageSize        int        `yaml:"page_size"`
	Mode            AccessMode `yaml:"mode"`
	RecordLimit     int        `yaml:"record_limit"` // 0 means no limit
	LogLevel        string     `yaml:"log_level"`
	LogFile         string     `yaml:"log_file"`
	Workers         int        `yaml:"workers"`
	FramesPerWorker int        `yaml:"frames_per_worker"`
}

// DefaultOptions returns default options
func DefaultOptions() Options {
	return Options{
		Capacity:        64 * PageSize, // 16KB, 64 frames
		PageSize:        PageSize,
		Mode:            RandomAccess,
		RecordLimit:     0,
		LogLevel:        "info",
		Workers:         4,
		FramesPerWorker: 8,
	}
}

// Validate checks the options for static misconfiguration.
func (o Options) Validate() error {
	if o.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if o.PageSize <= 0 || o.Capacity/o.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if !o.Mode.Valid() {
		return ErrUnsupportedMode
	}
	if o.RecordLimit < 0 {
		return ErrInvalidRecordLimit
	}
	return nil
}
