package clip

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorsMatchSentinel(t *testing.T) {
	errs := []error{
		&AccessError{Op: "open", Err: io.EOF},
		&TimeoutError{Op: "read TARGETS", Timeout: time.Second},
		&FormatError{Format: Format(9)},
		&PlatformError{Platform: "plan9"},
	}
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrClipboard, err.Error())
	}
}

func TestAccessErrorUnwrap(t *testing.T) {
	err := accessErr("lock", io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "clipboard access: lock: unexpected EOF", err.Error())

	var ae *AccessError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "lock", ae.Op)

	assert.Equal(t, "clipboard access: open", (&AccessError{Op: "open"}).Error())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "clipboard read text/html timed out after 5s",
		(&TimeoutError{Op: "read text/html", Timeout: 5 * time.Second}).Error())
	assert.True(t, (&TimeoutError{}).Temporary())
	assert.Equal(t, "unsupported clipboard format: format(7)", (&FormatError{Format: 7}).Error())
	assert.Equal(t, "unsupported platform: plan9", (&PlatformError{Platform: "plan9"}).Error())
	assert.Equal(t, "clipboard backend win32 is not available on linux",
		(&PlatformError{Platform: "linux", Backend: BackendWin32}).Error())
}
