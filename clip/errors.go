package clip

import (
	"errors"
	"fmt"
	"time"
)

// ErrClipboard is matched by every error this package returns:
//
//	errors.Is(err, clip.ErrClipboard)
var ErrClipboard = errors.New("clipboard error")

// AccessError reports that the clipboard could not be opened, locked or
// written, or that a required native dependency is missing.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	if e.Err == nil {
		return "clipboard access: " + e.Op
	}
	return fmt.Sprintf("clipboard access: %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error        { return e.Err }
func (e *AccessError) Is(target error) bool { return target == ErrClipboard }

// TimeoutError reports that a bounded external operation exceeded its
// deadline. Callers may retry.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("clipboard %s timed out after %s", e.Op, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrClipboard }

// Temporary mirrors net.Error so generic retry helpers recognise it.
func (e *TimeoutError) Temporary() bool { return true }

// FormatError reports a format tag outside the supported set.
type FormatError struct {
	Format Format
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported clipboard format: %s", e.Format)
}

func (e *FormatError) Is(target error) bool { return target == ErrClipboard }

// PlatformError reports that no backend exists for the named platform, or
// that the named Backend was not compiled into this binary.
type PlatformError struct {
	Platform string
	Backend  string
}

func (e *PlatformError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("clipboard backend %s is not available on %s", e.Backend, e.Platform)
	}
	return fmt.Sprintf("unsupported platform: %s", e.Platform)
}

func (e *PlatformError) Is(target error) bool { return target == ErrClipboard }

func accessErr(op string, err error) error {
	return &AccessError{Op: op, Err: err}
}
